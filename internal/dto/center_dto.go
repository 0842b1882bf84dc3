package dto

import "github.com/imtti/imtti-api/internal/patch"

// CenterCreateRequest captures the payload for registering a center.
type CenterCreateRequest struct {
	Name          string  `json:"name" validate:"required"`
	Email         string  `json:"email" validate:"required,contains=@"`
	Password      string  `json:"password" validate:"required"`
	Location      *string `json:"location"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone" validate:"omitempty,max=20"`
}

// CenterUpdateRequest captures a partial center update.
type CenterUpdateRequest struct {
	Name          patch.Field[string] `json:"name"`
	Email         patch.Field[string] `json:"email"`
	Location      patch.Field[string] `json:"location"`
	ContactPerson patch.Field[string] `json:"contact_person"`
	Phone         patch.Field[string] `json:"phone"`
	IsActive      patch.Field[bool]   `json:"is_active"`
}

// CenterCreatedResponse echoes the accepted center fields.
type CenterCreatedResponse struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Location *string `json:"location"`
	IsActive bool    `json:"is_active"`
}
