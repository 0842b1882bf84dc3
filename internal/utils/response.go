package utils

import "github.com/gofiber/fiber/v2"

// APIResponse describes the envelope used for acknowledgements, logins and errors. List and
// create endpoints return the bare rows instead.
type APIResponse struct {
	Success bool        `json:"success"`
	User    interface{} `json:"user,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// SendJSON writes payload unwrapped with the given status.
func SendJSON(c *fiber.Ctx, status int, payload interface{}) error {
	if status == 0 {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(payload)
}

// SendAck acknowledges a mutation without returning the row.
func SendAck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(APIResponse{Success: true})
}

// SendPrincipal returns the authenticated row to the caller.
func SendPrincipal(c *fiber.Ctx, user interface{}) error {
	return c.Status(fiber.StatusOK).JSON(APIResponse{Success: true, User: user})
}

// SendError sends an error JSON response with the given status code. The message is mirrored in
// the error field for clients that read either key.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}

	return c.Status(status).JSON(APIResponse{
		Success: false,
		Message: message,
		Error:   message,
	})
}
