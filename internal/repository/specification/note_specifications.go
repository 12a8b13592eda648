package specification

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// ByTag keeps notes whose jsonb tag array contains Tag.
type ByTag struct {
	Tag string
}

func (s ByTag) Apply(db *gorm.DB) *gorm.DB {
	needle, _ := json.Marshal([]string{s.Tag})
	return db.Where("tags @> ?::jsonb", string(needle))
}

// NoteCreatedBetween filters on the recording datetime. From is inclusive,
// To exclusive; a nil bound is open.
type NoteCreatedBetween struct {
	From, To *time.Time
}

func (s NoteCreatedBetween) Apply(db *gorm.DB) *gorm.DB {
	if s.From != nil {
		db = db.Where("datetime >= ?", *s.From)
	}
	if s.To != nil {
		db = db.Where("datetime < ?", *s.To)
	}
	return db
}
