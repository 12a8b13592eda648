package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"voice-journal-be/internal/entity"
	"voice-journal-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const conversationKeyPrefix = "conversation:"

type RedisConversationRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisConversationRepository(rdb *redis.Client, ttl time.Duration) contract.ConversationRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisConversationRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisConversationRepository) Save(ctx context.Context, conversation *entity.Conversation) error {
	payload, err := json.Marshal(conversation)
	if err != nil {
		return fmt.Errorf("marshal conversation: %w", err)
	}
	return r.rdb.Set(ctx, conversationKeyPrefix+conversation.Id, payload, r.ttl).Err()
}

func (r *RedisConversationRepository) Get(ctx context.Context, id string) (*entity.Conversation, error) {
	payload, err := r.rdb.Get(ctx, conversationKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var conversation entity.Conversation
	if err := json.Unmarshal(payload, &conversation); err != nil {
		return nil, fmt.Errorf("unmarshal conversation: %w", err)
	}
	return &conversation, nil
}

func (r *RedisConversationRepository) Delete(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, conversationKeyPrefix+id).Err()
}
