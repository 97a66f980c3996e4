package controller

import (
	"grant-assistant-be/internal/dto"
	"grant-assistant-be/internal/pkg/serverutils"
	"grant-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IIngestController interface {
	RegisterRoutes(r fiber.Router)
	Ingest(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
}

type ingestController struct {
	ingestService service.IIngestService
}

func NewIngestController(ingestService service.IIngestService) IIngestController {
	return &ingestController{ingestService: ingestService}
}

func (c *ingestController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/documents")
	h.Post("/ingest", c.Ingest)
	h.Get("/stats", c.Stats)
}

func (c *ingestController) Ingest(ctx *fiber.Ctx) error {
	var req dto.IngestRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.ingestService.Enqueue(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Document queued for ingestion", nil))
}

func (c *ingestController) Stats(ctx *fiber.Ctx) error {
	counts, err := c.ingestService.ChunkCounts(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get document stats", counts))
}
