package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/imtti/imtti-api/internal/dto"
	"github.com/imtti/imtti-api/internal/service"
	"github.com/imtti/imtti-api/internal/utils"
)

// MarkHandler wires mark endpoints. Marks are entered and removed, never edited.
type MarkHandler struct {
	service service.MarkService
	logger  zerolog.Logger
}

// NewMarkHandler constructs the handler.
func NewMarkHandler(service service.MarkService, logger zerolog.Logger) *MarkHandler {
	return &MarkHandler{
		service: service,
		logger:  logger.With().Str("component", "mark_handler").Logger(),
	}
}

// Register attaches mark routes to the router group.
func (h *MarkHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Delete("/:id", h.delete)
}

func (h *MarkHandler) list(c *fiber.Ctx) error {
	marks, err := h.service.List(withRequestContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "list marks")
	}
	return utils.SendJSON(c, fiber.StatusOK, marks)
}

func (h *MarkHandler) create(c *fiber.Ctx) error {
	var payload dto.MarkCreateRequest
	if err := decodeBody(c, &payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	mark, err := h.service.Create(withRequestContext(c), payload)
	if err != nil {
		return respondError(c, h.logger, err, "create mark")
	}
	return utils.SendJSON(c, fiber.StatusOK, mark)
}

func (h *MarkHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.service.Delete(withRequestContext(c), id); err != nil {
		return respondError(c, h.logger, err, "delete mark")
	}
	return utils.SendAck(c)
}
