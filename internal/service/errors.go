package service

import "errors"

var (
	ErrEmptyQuery         = errors.New("question is empty")
	ErrEmptyTranscription = errors.New("transcription is empty")
	ErrNoteNotFound       = errors.New("note not found")
)
