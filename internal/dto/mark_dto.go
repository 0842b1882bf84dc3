package dto

// MarkCreateRequest captures a subject mark entry.
type MarkCreateRequest struct {
	StudentID *uint    `json:"student_id"`
	Subject   string   `json:"subject" validate:"required"`
	Marks     *float64 `json:"marks" validate:"omitempty,gte=0"`
	Grade     *string  `json:"grade" validate:"omitempty,max=10"`
	CenterID  *uint    `json:"center_id"`
}
