package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/imtti/imtti-api/internal/dto"
	"github.com/imtti/imtti-api/internal/service"
	"github.com/imtti/imtti-api/internal/utils"
)

// AdminHandler wires administrator account endpoints.
type AdminHandler struct {
	service service.AdminService
	logger  zerolog.Logger
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(service service.AdminService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_handler").Logger(),
	}
}

// Register attaches admin routes to the router group.
func (h *AdminHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Delete("/:id", h.delete)
}

func (h *AdminHandler) list(c *fiber.Ctx) error {
	admins, err := h.service.List(withRequestContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "list admins")
	}
	return utils.SendJSON(c, fiber.StatusOK, admins)
}

func (h *AdminHandler) create(c *fiber.Ctx) error {
	var payload dto.AdminCreateRequest
	if err := decodeBody(c, &payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	created, err := h.service.Create(withRequestContext(c), payload)
	if err != nil {
		return respondError(c, h.logger, err, "create admin")
	}
	return utils.SendJSON(c, fiber.StatusOK, created)
}

func (h *AdminHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.service.Delete(withRequestContext(c), id); err != nil {
		return respondError(c, h.logger, err, "delete admin")
	}
	return utils.SendAck(c)
}
