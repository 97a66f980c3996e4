package controller

import (
	"grant-assistant-be/internal/dto"
	"grant-assistant-be/internal/pkg/serverutils"
	"grant-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Query(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	ClearHistory(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type assistantController struct {
	assistantService service.IAssistantService
}

func NewAssistantController(assistantService service.IAssistantService) IAssistantController {
	return &assistantController{assistantService: assistantService}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant")
	h.Post("/query", c.Query)
	h.Get("/health", c.Health)
	h.Get("/history/:session_id", c.History)
	h.Delete("/history/:session_id", c.ClearHistory)
}

func (c *assistantController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("ok", nil))
}

func (c *assistantController) Query(ctx *fiber.Ctx) error {
	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.assistantService.Ask(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success answer query", res))
}

func (c *assistantController) History(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	if sessionID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "session_id is required")
	}

	res, err := c.assistantService.History(ctx.Context(), sessionID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get history", res))
}

func (c *assistantController) ClearHistory(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	if sessionID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "session_id is required")
	}

	if err := c.assistantService.ClearHistory(ctx.Context(), sessionID); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success clear history", nil))
}
