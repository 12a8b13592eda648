package contract

import (
	"context"

	"voice-journal-be/internal/entity"
	"voice-journal-be/internal/repository/specification"
)

// NoteRepository is the note store. FindByIds silently omits unknown ids.
type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
	FindByIds(ctx context.Context, ids []string) ([]*entity.Note, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
