package dto

import (
	"encoding/json"

	"github.com/imtti/imtti-api/internal/patch"
)

// ApplicationData is the applicant document stored with every application.
type ApplicationData struct {
	FullName          *string       `json:"full_name"`
	Email             *string       `json:"email"`
	Phone             *string       `json:"phone"`
	DateOfBirth       *string       `json:"date_of_birth"`
	Age               interface{}   `json:"age"`
	Sex               *string       `json:"sex"`
	MotherTongue      *string       `json:"mother_tongue"`
	MaritalStatus     *string       `json:"marital_status"`
	Community         *string       `json:"community"`
	FatherHusbandName *string       `json:"father_husband_name"`
	LocalAddress      *string       `json:"local_address"`
	PermanentAddress  *string       `json:"permanent_address"`
	PlaceOfBirth      *string       `json:"place_of_birth"`
	Course            *string       `json:"course"`
	Photo             *string       `json:"photo"`
	Education         []interface{} `json:"education"`
	CenterEmail       *string       `json:"center_email"`
}

// ApplicationCreateRequest captures an application submission. The applicant fields arrive flat
// alongside the application metadata.
type ApplicationCreateRequest struct {
	ApplicationNumber string  `json:"application_number" validate:"required,max=50"`
	StudentID         *uint   `json:"student_id"`
	CenterID          *uint   `json:"center_id"`
	Status            *string `json:"status"`
	ApplicationData
}

// ApplicationUpdateRequest captures a partial application update.
type ApplicationUpdateRequest struct {
	Status patch.Field[string]          `json:"status"`
	Data   patch.Field[json.RawMessage] `json:"data"`
}

// ApplicationCreatedResponse echoes the accepted application fields.
type ApplicationCreatedResponse struct {
	ID                uint   `json:"id"`
	ApplicationNumber string `json:"application_number"`
	StudentID         *uint  `json:"student_id"`
	CenterID          *uint  `json:"center_id"`
	Status            string `json:"status"`
}
