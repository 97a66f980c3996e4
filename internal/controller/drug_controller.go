package controller

import (
	"grant-assistant-be/internal/dto"
	"grant-assistant-be/internal/pkg/serverutils"
	"grant-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDrugController interface {
	RegisterRoutes(r fiber.Router)
	Query(ctx *fiber.Ctx) error
}

type drugController struct {
	drugService service.IDrugService
}

func NewDrugController(drugService service.IDrugService) IDrugController {
	return &drugController{drugService: drugService}
}

func (c *drugController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/drugbot")
	h.Post("/query", c.Query)
}

func (c *drugController) Query(ctx *fiber.Ctx) error {
	var req dto.DrugQueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.drugService.Advise(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success answer drug query", res))
}
