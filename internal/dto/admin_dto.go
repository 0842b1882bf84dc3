package dto

// AdminCreateRequest captures the payload for adding an administrator.
type AdminCreateRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminCreatedResponse echoes the accepted administrator fields.
type AdminCreatedResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
