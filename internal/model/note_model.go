package model

import (
	"time"

	"gorm.io/datatypes"
)

type Note struct {
	Id            string                      `gorm:"type:varchar(64);primaryKey"`
	Title         string                      `gorm:"type:varchar(255);not null;default:''"`
	Summary       string                      `gorm:"type:text"`
	Tags          datatypes.JSONSlice[string] `gorm:"type:jsonb;not null;default:'[]'"`
	Transcription string                      `gorm:"type:text"`
	Datetime      time.Time                   `gorm:"type:timestamptz;not null;index"`
	CreatedAt     time.Time                   `gorm:"autoCreateTime"`
}

func (Note) TableName() string {
	return "notes"
}
