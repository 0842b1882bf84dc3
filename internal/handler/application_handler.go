package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/imtti/imtti-api/internal/dto"
	"github.com/imtti/imtti-api/internal/service"
	"github.com/imtti/imtti-api/internal/utils"
)

// ApplicationHandler wires application endpoints.
type ApplicationHandler struct {
	service service.ApplicationService
	logger  zerolog.Logger
}

// NewApplicationHandler constructs the handler.
func NewApplicationHandler(service service.ApplicationService, logger zerolog.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		service: service,
		logger:  logger.With().Str("component", "application_handler").Logger(),
	}
}

// Register attaches application routes to the router group.
func (h *ApplicationHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *ApplicationHandler) list(c *fiber.Ctx) error {
	applications, err := h.service.List(withRequestContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "list applications")
	}
	return utils.SendJSON(c, fiber.StatusOK, applications)
}

func (h *ApplicationHandler) create(c *fiber.Ctx) error {
	var payload dto.ApplicationCreateRequest
	if err := decodeBody(c, &payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	created, err := h.service.Create(withRequestContext(c), payload)
	if err != nil {
		return respondError(c, h.logger, err, "create application")
	}
	return utils.SendJSON(c, fiber.StatusOK, created)
}

func (h *ApplicationHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.ApplicationUpdateRequest
	if err := decodeBody(c, &payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.service.Update(withRequestContext(c), id, payload); err != nil {
		return respondError(c, h.logger, err, "update application")
	}
	return utils.SendAck(c)
}

func (h *ApplicationHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.service.Delete(withRequestContext(c), id); err != nil {
		return respondError(c, h.logger, err, "delete application")
	}
	return utils.SendAck(c)
}
