package domain

// RegistrationInput is the raw registration form as typed by the user.
// Field names follow the form (camelCase); nothing here is trusted.
type RegistrationInput struct {
	FirstName  string `json:"firstName" validate:"min=2,personname"`
	LastName   string `json:"lastName" validate:"min=2,personname"`
	Email      string `json:"email" validate:"email"`
	BirthDate  string `json:"birthDate" validate:"datetime=2006-01-02,adult"`
	City       string `json:"city" validate:"min=2,personname"`
	PostalCode string `json:"postalCode" validate:"postalcode"`
}

// RegistrationRecord is a RegistrationInput that passed validation.
type RegistrationRecord struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	BirthDate  Date   `json:"birthDate"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}
