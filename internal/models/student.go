package models

import "time"

const (
	// DefaultCourse is stored when a student or application omits the course.
	DefaultCourse = "Diploma Program"
	// StudentStatusRegistered is the initial status of a student.
	StudentStatusRegistered = "registered"
)

// Student represents a learner registered by a center. Its login password is derived from the
// date of birth.
type Student struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	Email          *string   `gorm:"size:255" json:"email"`
	Phone          *string   `gorm:"size:20" json:"phone"`
	DateOfBirth    *string   `gorm:"size:10" json:"date_of_birth"`
	CenterID       *uint     `gorm:"index" json:"center_id"`
	Photo          *string   `gorm:"type:text" json:"photo"`
	RegistrationID *string   `gorm:"size:50;uniqueIndex" json:"registration_id"`
	Course         string    `gorm:"size:100" json:"course"`
	Address        *string   `gorm:"type:text" json:"address"`
	Status         string    `gorm:"size:50" json:"status"`
	Password       *string   `gorm:"size:255" json:"password"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// StudentRow is a student joined with the owning center's display name.
type StudentRow struct {
	Student
	CenterName *string `json:"center_name"`
}
