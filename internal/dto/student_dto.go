package dto

import "github.com/imtti/imtti-api/internal/patch"

// StudentCreateRequest captures the payload for registering a student.
type StudentCreateRequest struct {
	Name           string  `json:"name" validate:"required"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Phone          *string `json:"phone" validate:"omitempty,max=20"`
	DateOfBirth    *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	CenterID       *uint   `json:"center_id"`
	Photo          *string `json:"photo"`
	RegistrationID *string `json:"registration_id" validate:"omitempty,max=50"`
	Course         *string `json:"course"`
	Address        *string `json:"address"`
	Status         *string `json:"status"`
	Password       *string `json:"password"`
}

// StudentUpdateRequest captures a partial student update.
type StudentUpdateRequest struct {
	Name        patch.Field[string] `json:"name"`
	Email       patch.Field[string] `json:"email"`
	Phone       patch.Field[string] `json:"phone"`
	DateOfBirth patch.Field[string] `json:"date_of_birth"`
	Photo       patch.Field[string] `json:"photo"`
	Course      patch.Field[string] `json:"course"`
	Status      patch.Field[string] `json:"status"`
}

// StudentCreatedResponse echoes the accepted student fields.
type StudentCreatedResponse struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Email          *string `json:"email"`
	RegistrationID *string `json:"registration_id"`
	CenterID       *uint   `json:"center_id"`
	Course         string  `json:"course"`
	Status         string  `json:"status"`
}
