package client

import (
	"encoding/json"
	"strconv"
	"time"
)

// ID identifies a record. Rows read from the server carry numeric ids; rows created while the
// session is degraded carry generated string ids.
type ID string

// Numeric reports the server id when the value is one.
func (id ID) Numeric() (uint64, bool) {
	n, err := strconv.ParseUint(string(id), 10, 64)
	return n, err == nil
}

// MarshalJSON writes numeric ids as JSON numbers and generated ids as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if _, ok := id.Numeric(); ok {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts numbers, strings and null.
func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// Center is a training center as seen by clients.
type Center struct {
	ID            ID         `json:"id,omitempty"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Password      string     `json:"password,omitempty"`
	Location      *string    `json:"location,omitempty"`
	ContactPerson *string    `json:"contact_person,omitempty"`
	Phone         *string    `json:"phone,omitempty"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
}

// Student is a registered learner.
type Student struct {
	ID             ID         `json:"id,omitempty"`
	Name           string     `json:"name"`
	Email          *string    `json:"email,omitempty"`
	Phone          *string    `json:"phone,omitempty"`
	DateOfBirth    *string    `json:"date_of_birth,omitempty"`
	CenterID       *ID        `json:"center_id,omitempty"`
	Photo          *string    `json:"photo,omitempty"`
	RegistrationID *string    `json:"registration_id,omitempty"`
	Course         string     `json:"course,omitempty"`
	Address        *string    `json:"address,omitempty"`
	Status         string     `json:"status,omitempty"`
	Password       *string    `json:"password,omitempty"`
	CenterName     *string    `json:"center_name,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
}

// Application is an enrollment submission with its applicant document.
type Application struct {
	ID                ID              `json:"id,omitempty"`
	ApplicationNumber string          `json:"application_number"`
	StudentID         *ID             `json:"student_id,omitempty"`
	CenterID          *ID             `json:"center_id,omitempty"`
	Data              json.RawMessage `json:"data,omitempty"`
	Status            string          `json:"status,omitempty"`
	StudentName       *string         `json:"student_name,omitempty"`
	CenterName        *string         `json:"center_name,omitempty"`
	CreatedAt         *time.Time      `json:"created_at,omitempty"`
}

// ApplicationForm is the submission payload. Applicant fields are sent flat next to the
// application metadata.
type ApplicationForm struct {
	ApplicationNumber string
	StudentID         *ID
	CenterID          *ID
	Applicant         map[string]interface{}
}

// MarshalJSON flattens the applicant fields into the request body.
func (f ApplicationForm) MarshalJSON() ([]byte, error) {
	body := make(map[string]interface{}, len(f.Applicant)+3)
	for key, value := range f.Applicant {
		body[key] = value
	}
	body["application_number"] = f.ApplicationNumber
	if f.StudentID != nil {
		body["student_id"] = *f.StudentID
	}
	if f.CenterID != nil {
		body["center_id"] = *f.CenterID
	}
	return json.Marshal(body)
}

// Mark is a subject result.
type Mark struct {
	ID          ID       `json:"id,omitempty"`
	StudentID   *ID      `json:"student_id,omitempty"`
	Subject     string   `json:"subject"`
	Marks       *float64 `json:"marks,omitempty"`
	Grade       *string  `json:"grade,omitempty"`
	CenterID    *ID      `json:"center_id,omitempty"`
	StudentName *string  `json:"student_name,omitempty"`
	CenterName  *string  `json:"center_name,omitempty"`
}

// Admin is an administrator account.
type Admin struct {
	ID       ID     `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// Status is the payload of the diagnostic endpoints.
type Status struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Connected reports whether the server holds a store connection.
func (s Status) Connected() bool {
	return s.Database == "connected"
}
