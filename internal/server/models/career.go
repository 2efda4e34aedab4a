package models

import "time"

// CareerEntry is one season/competition line of an account's history.
// Entries are append-only; ID grows with insertion order.
type CareerEntry struct {
	ID                    int64
	Username              string
	Season                string
	Team                  string
	Competition           string
	Appearances           int
	Starts                int
	SubstituteAppearances int
	YellowCards           int
	RedCards              int
	Assists               int
	Goals                 int
	Saves                 int
	CreatedAt             time.Time
}

// CareerEntryInput is what a caller submits for a new career entry.
// Every count is required; pointers distinguish "missing" from zero. Counts
// are capped well inside a 32-bit column.
type CareerEntryInput struct {
	Season                string `validate:"required,max=20"`
	Team                  string `validate:"required,max=100"`
	Competition           string `validate:"required,max=100"`
	Appearances           *int   `validate:"required,min=0,lte=100000"`
	Starts                *int   `validate:"required,min=0,lte=100000"`
	SubstituteAppearances *int   `validate:"required,min=0,lte=100000"`
	YellowCards           *int   `validate:"required,min=0,lte=100000"`
	RedCards              *int   `validate:"required,min=0,lte=100000"`
	Assists               *int   `validate:"required,min=0,lte=100000"`
	Goals                 *int   `validate:"required,min=0,lte=100000"`
	Saves                 *int   `validate:"required,min=0,lte=100000"`
}
