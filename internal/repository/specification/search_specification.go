package specification

import "gorm.io/gorm"

// NoteSearchQuery is a case-insensitive keyword match over title, summary
// and transcription. Semantic search goes through the retriever instead.
type NoteSearchQuery struct {
	Query string
}

func (s NoteSearchQuery) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("title ILIKE ? OR summary ILIKE ? OR transcription ILIKE ?", pattern, pattern, pattern)
}
