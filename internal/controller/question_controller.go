package controller

import (
	"bytes"
	"errors"

	"voice-journal-be/internal/dto"
	"voice-journal-be/internal/pkg/serverutils"
	"voice-journal-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IQuestionController interface {
	RegisterRoutes(api fiber.Router, live fiber.Router)
	Ask(ctx *fiber.Ctx) error
	AskAudio(ctx *fiber.Ctx) error
	LiveChat(ctx *fiber.Ctx) error
}

type questionController struct {
	questionService service.IQuestionService
}

func NewQuestionController(questionService service.IQuestionService) IQuestionController {
	return &questionController{
		questionService: questionService,
	}
}

// RegisterRoutes mounts the JSON question API under api and the raw audio
// endpoint under live.
func (c *questionController) RegisterRoutes(api fiber.Router, live fiber.Router) {
	api.Post("/questions", c.Ask)
	api.Post("/ask_question", c.AskAudio)
	live.Post("/response", c.LiveChat)
}

func (c *questionController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskQuestionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.questionService.Ask(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success answer question", res))
}

// AskAudio replies with a bare {question, answer} object.
func (c *questionController) AskAudio(ctx *fiber.Ctx) error {
	audio, filename, err := formAudio(ctx)
	if err != nil {
		return err
	}
	defer audio.Close()

	res, err := c.questionService.AskAudio(ctx.UserContext(), audio, filename)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *questionController) LiveChat(ctx *fiber.Ctx) error {
	filename, ok := rawAudioFilename(ctx.Get(fiber.HeaderContentType))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest,
			"Send raw audio blob in the request body with Content-Type audio/* or application/octet-stream.")
	}

	body := ctx.Body()
	if len(body) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Empty audio payload.")
	}

	wav, err := c.questionService.LiveChat(ctx.UserContext(), bytes.NewReader(body), filename, ctx.Get("X-Conversation-Id"))
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			return ctx.SendStatus(fiber.StatusNoContent)
		}
		return err
	}

	ctx.Set(fiber.HeaderContentType, "audio/wav")
	return ctx.Send(wav)
}
