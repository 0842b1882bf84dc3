package dto

// CredentialsRequest is the login payload for admins and centers.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// StudentCredentialsRequest is the student login payload. The date of birth acts as the secret.
type StudentCredentialsRequest struct {
	RegistrationID string `json:"registration_id"`
	DateOfBirth    string `json:"date_of_birth"`
}
