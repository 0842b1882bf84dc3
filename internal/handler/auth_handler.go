package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/imtti/imtti-api/internal/dto"
	"github.com/imtti/imtti-api/internal/service"
	"github.com/imtti/imtti-api/internal/utils"
)

// AuthHandler exposes the three login checks. A successful login returns the matched row; the
// caller keeps it, the server keeps nothing.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register attaches login routes to the router group.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/admin", h.admin)
	router.Post("/center", h.center)
	router.Post("/student", h.student)
}

func (h *AuthHandler) admin(c *fiber.Ctx) error {
	var payload dto.CredentialsRequest
	if err := decodeBody(c, &payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	admin, err := h.service.AuthenticateAdmin(withRequestContext(c), payload.Email, payload.Password)
	if err != nil {
		return respondError(c, h.logger, err, "authenticate admin")
	}
	return utils.SendPrincipal(c, admin)
}

func (h *AuthHandler) center(c *fiber.Ctx) error {
	var payload dto.CredentialsRequest
	if err := decodeBody(c, &payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	center, err := h.service.AuthenticateCenter(withRequestContext(c), payload.Email, payload.Password)
	if err != nil {
		return respondError(c, h.logger, err, "authenticate center")
	}
	return utils.SendPrincipal(c, center)
}

func (h *AuthHandler) student(c *fiber.Ctx) error {
	var payload dto.StudentCredentialsRequest
	if err := decodeBody(c, &payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	student, err := h.service.AuthenticateStudent(withRequestContext(c), payload.RegistrationID, payload.DateOfBirth)
	if err != nil {
		return respondError(c, h.logger, err, "authenticate student")
	}
	return utils.SendPrincipal(c, student)
}
