package memory

import (
	"context"
	"time"

	"voice-journal-be/internal/entity"
	"voice-journal-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type ConversationRepository struct {
	cache *cache.Cache
}

func NewConversationRepository(ttl time.Duration) contract.ConversationRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ConversationRepository{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (r *ConversationRepository) Save(ctx context.Context, conversation *entity.Conversation) error {
	stored := *conversation
	r.cache.Set(conversation.Id, &stored, cache.DefaultExpiration)
	return nil
}

func (r *ConversationRepository) Get(ctx context.Context, id string) (*entity.Conversation, error) {
	if x, found := r.cache.Get(id); found {
		c := *x.(*entity.Conversation)
		return &c, nil
	}
	return nil, nil
}

func (r *ConversationRepository) Delete(ctx context.Context, id string) error {
	r.cache.Delete(id)
	return nil
}
