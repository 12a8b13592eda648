package controller

import (
	"voice-journal-be/internal/pkg/serverutils"
	"voice-journal-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IKnowledgeController interface {
	RegisterRoutes(r fiber.Router)
	Tags(ctx *fiber.Ctx) error
	NotesByTag(ctx *fiber.Ctx) error
	KnowledgeMap(ctx *fiber.Ctx) error
}

type knowledgeController struct {
	knowledgeService service.IKnowledgeService
}

func NewKnowledgeController(knowledgeService service.IKnowledgeService) IKnowledgeController {
	return &knowledgeController{
		knowledgeService: knowledgeService,
	}
}

func (c *knowledgeController) RegisterRoutes(r fiber.Router) {
	r.Get("/tags", c.Tags)
	r.Get("/tags/:tag/notes", c.NotesByTag)
	r.Get("/knowledge-map", c.KnowledgeMap)
}

func (c *knowledgeController) Tags(ctx *fiber.Ctx) error {
	res, err := c.knowledgeService.TagCounts(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list tags", res))
}

func (c *knowledgeController) NotesByTag(ctx *fiber.Ctx) error {
	res, err := c.knowledgeService.NotesByTag(ctx.UserContext(), ctx.Params("tag"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list notes by tag", res))
}

// KnowledgeMap returns the bare {nodes, edges} graph the map view renders.
func (c *knowledgeController) KnowledgeMap(ctx *fiber.Ctx) error {
	res, err := c.knowledgeService.KnowledgeMap(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
