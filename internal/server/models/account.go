// Package models holds the persisted entities of the player profile service
// and the input shapes accepted by the services.
package models

import "time"

// DateLayout is the ISO calendar date format used for birth dates.
const DateLayout = "2006-01-02"

// Account is a registered individual. Username is the natural key and never
// changes; ID is the surrogate identity sessions are bound to.
type Account struct {
	ID          string
	Username    string
	FirstName   string
	LastName    string
	DateOfBirth string
	Club        string
	School      string
	Address1    string
	Address2    string
	City        string
	Country     string
	Telephone   string
	Email       string
	SecretSalt  []byte `json:"-"`
	SecretHash  []byte `json:"-"`
	CreatedAt   time.Time
}

// Sanitized returns a copy without the secret material.
func (a *Account) Sanitized() *Account {
	if a == nil {
		return nil
	}
	c := *a
	c.SecretSalt = nil
	c.SecretHash = nil
	return &c
}

// AccountInput is what a caller submits to register.
type AccountInput struct {
	Username    string `validate:"required,max=64,username"`
	Secret      string `validate:"required,min=1,max=256"`
	FirstName   string `validate:"required,max=100"`
	LastName    string `validate:"required,max=100"`
	DateOfBirth string `validate:"required,datetime=2006-01-02"`
	Club        string `validate:"omitempty,max=100"`
	School      string `validate:"omitempty,max=100"`
	Address1    string `validate:"omitempty,max=200"`
	Address2    string `validate:"omitempty,max=200"`
	City        string `validate:"required,max=100"`
	Country     string `validate:"required,max=100"`
	Telephone   string `validate:"omitempty,max=32"`
	Email       string `validate:"required,email,max=254"`
}
