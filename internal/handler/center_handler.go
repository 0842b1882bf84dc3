package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/imtti/imtti-api/internal/dto"
	"github.com/imtti/imtti-api/internal/service"
	"github.com/imtti/imtti-api/internal/utils"
)

// CenterHandler wires center endpoints.
type CenterHandler struct {
	service service.CenterService
	logger  zerolog.Logger
}

// NewCenterHandler constructs the handler.
func NewCenterHandler(service service.CenterService, logger zerolog.Logger) *CenterHandler {
	return &CenterHandler{
		service: service,
		logger:  logger.With().Str("component", "center_handler").Logger(),
	}
}

// Register attaches center routes to the router group.
func (h *CenterHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *CenterHandler) list(c *fiber.Ctx) error {
	centers, err := h.service.List(withRequestContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "list centers")
	}
	return utils.SendJSON(c, fiber.StatusOK, centers)
}

func (h *CenterHandler) create(c *fiber.Ctx) error {
	var payload dto.CenterCreateRequest
	if err := decodeBody(c, &payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	created, err := h.service.Create(withRequestContext(c), payload)
	if err != nil {
		return respondError(c, h.logger, err, "create center")
	}
	return utils.SendJSON(c, fiber.StatusOK, created)
}

func (h *CenterHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.CenterUpdateRequest
	if err := decodeBody(c, &payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.service.Update(withRequestContext(c), id, payload); err != nil {
		return respondError(c, h.logger, err, "update center")
	}
	return utils.SendAck(c)
}

func (h *CenterHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.service.Delete(withRequestContext(c), id); err != nil {
		return respondError(c, h.logger, err, "delete center")
	}
	return utils.SendAck(c)
}
