package models

import "time"

// Mark records a student's result in one subject.
type Mark struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID *uint     `gorm:"index" json:"student_id"`
	Subject   string    `gorm:"size:255;not null" json:"subject"`
	Marks     *float64  `json:"marks"`
	Grade     *string   `gorm:"size:10" json:"grade"`
	CenterID  *uint     `gorm:"index" json:"center_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MarkRow attaches student and center display names to a mark.
type MarkRow struct {
	Mark
	StudentName *string `json:"student_name"`
	CenterName  *string `json:"center_name"`
}
