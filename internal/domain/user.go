package domain

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// User is a person who can be assigned to tasks. Email is unique across
// all users.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Validate checks the user's fields.
func (u *User) Validate() error {
	if u.ID < 0 {
		return ErrInvalidID
	}
	return ValidateEmail(u.Email)
}

// ValidateEmail checks that email is present and well formed.
func ValidateEmail(email string) error {
	if email == "" {
		return ErrEmptyEmail
	}
	if err := validate.Var(email, "email"); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

// Rename applies the optional first and last names. A field changes only
// when it is non-nil and differs from the current value. Reports whether
// anything changed.
func (u *User) Rename(firstName, lastName *string) bool {
	changed := false
	if firstName != nil && *firstName != u.FirstName {
		u.FirstName = *firstName
		changed = true
	}
	if lastName != nil && *lastName != u.LastName {
		u.LastName = *lastName
		changed = true
	}
	return changed
}
