package controller

import (
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// formAudio opens the multipart "audio" field.
func formAudio(ctx *fiber.Ctx) (multipart.File, string, error) {
	header, err := ctx.FormFile("audio")
	if err != nil {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "No audio file provided")
	}
	if header.Size == 0 {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "Empty audio file")
	}

	file, err := header.Open()
	if err != nil {
		return nil, "", err
	}

	filename := header.Filename
	if filename == "" {
		filename = "audio.webm"
	}
	return file, filename, nil
}

// rawAudioFilename names a raw request body so the transcriber can tell its
// container format. Only audio/* and application/octet-stream are accepted.
func rawAudioFilename(contentType string) (string, bool) {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	switch {
	case ct == "application/octet-stream":
		return "input.webm", true
	case strings.HasPrefix(ct, "audio/"):
		ext := strings.TrimPrefix(ct, "audio/")
		switch ext {
		case "mpeg":
			ext = "mp3"
		case "x-wav", "wave":
			ext = "wav"
		case "":
			ext = "webm"
		}
		return "input." + ext, true
	}
	return "", false
}
