package models

import (
	"time"

	"gorm.io/datatypes"
)

// ApplicationStatusPending is the status of a freshly submitted application.
const ApplicationStatusPending = "pending"

// Application is an enrollment document submitted by a center. Data is kept as an opaque JSON
// document and never queried by sub-field.
type Application struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	ApplicationNumber string         `gorm:"size:50;uniqueIndex;not null" json:"application_number"`
	StudentID         *uint          `gorm:"index" json:"student_id"`
	CenterID          *uint          `gorm:"index" json:"center_id"`
	Data              datatypes.JSON `json:"data"`
	Status            string         `gorm:"size:50" json:"status"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// ApplicationRow attaches student and center display names to an application.
type ApplicationRow struct {
	Application
	StudentName *string `json:"student_name"`
	CenterName  *string `json:"center_name"`
}
