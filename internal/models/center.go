package models

import "time"

// Center is a training institute location that registers students.
type Center struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Email         string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password      string    `gorm:"size:255;not null" json:"password"`
	Location      *string   `gorm:"size:255" json:"location"`
	ContactPerson *string   `gorm:"size:255" json:"contact_person"`
	Phone         *string   `gorm:"size:20" json:"phone"`
	IsActive      bool      `gorm:"not null" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
