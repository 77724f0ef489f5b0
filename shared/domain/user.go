package domain

import "time"

type User struct {
	Id         UserId    `db:"id"`
	Email      Email     `db:"email"`
	PassHash   string    `db:"password_hash"`
	FirstName  string    `db:"first_name"`
	LastName   string    `db:"last_name"`
	BirthDate  Date      `db:"birth_date"`
	City       string    `db:"city"`
	PostalCode string    `db:"postal_code"`
	Admin      bool      `db:"is_admin"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type Credentials struct {
	Email    Email
	Password Password
}
