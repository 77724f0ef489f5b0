package api

import "github.com/varlopecar/react-form/shared/domain"

// Request DTOs

// RegisterRequest is the backend's view of a registration: snake_case names,
// birth date as a plain calendar date.
type RegisterRequest struct {
	FirstName  string      `json:"first_name" validate:"required,max=100"`
	LastName   string      `json:"last_name" validate:"required,max=100"`
	Email      string      `json:"email" validate:"required,email"`
	BirthDate  domain.Date `json:"birth_date" validate:"required"`
	City       string      `json:"city" validate:"required,max=100"`
	PostalCode string      `json:"postal_code" validate:"required,max=20"`
	Password   string      `json:"password" validate:"required,min=6,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Response DTOs
// Register and login answer with an envelope: success plus either the payload
// or an error message. Other endpoints use plain bodies and {"detail": ...} on failure.

type RegisterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	User    *User  `json:"user,omitempty"`
	Error   string `json:"error,omitempty"`
}

type LoginResponse struct {
	Success     bool   `json:"success"`
	AccessToken string `json:"access_token,omitempty"`
	TokenType   string `json:"token_type,omitempty"`
	User        *User  `json:"user,omitempty"`
	Error       string `json:"error,omitempty"`
}
