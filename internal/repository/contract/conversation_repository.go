package contract

import (
	"context"

	"voice-journal-be/internal/entity"
)

// ConversationRepository keeps the last turn per conversation. Get returns
// nil, nil when the conversation is unknown or expired.
type ConversationRepository interface {
	Save(ctx context.Context, conversation *entity.Conversation) error
	Get(ctx context.Context, id string) (*entity.Conversation, error)
	Delete(ctx context.Context, id string) error
}
