package api

import (
	"time"

	"github.com/varlopecar/react-form/shared/domain"
)

// User is the public representation of domain.User.
type User struct {
	Id         domain.UserId `json:"id"`
	Email      string        `json:"email"`
	FirstName  string        `json:"first_name"`
	LastName   string        `json:"last_name"`
	BirthDate  domain.Date   `json:"birth_date"`
	City       string        `json:"city"`
	PostalCode string        `json:"postal_code"`
	IsAdmin    bool          `json:"is_admin"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

func NewUser(u domain.User) User {
	return User{
		Id:         u.Id,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		BirthDate:  u.BirthDate,
		City:       u.City,
		PostalCode: u.PostalCode,
		IsAdmin:    u.Admin,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func NewUsers(users []domain.User) []User {
	res := make([]User, len(users))
	for i, u := range users {
		res[i] = NewUser(u)
	}
	return res
}

// PublicUser is what anonymous callers may see.
type PublicUser struct {
	FirstName string `json:"first_name"`
}
