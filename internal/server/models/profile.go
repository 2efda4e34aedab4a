package models

import "time"

// Preferred foot values.
const (
	FootLeft  = "left"
	FootRight = "right"
	FootBoth  = "both"
)

// GeneralProfile is the single biographical record of an account.
// HeadshotRef is empty when no image has been stored.
type GeneralProfile struct {
	Username        string
	BirthCountry    string
	PassportCountry string
	HeightCm        int
	WeightKg        int
	PreferredFoot   string
	Position        string
	HeadshotRef     string
	UpdatedAt       time.Time
}

// GeneralProfileInput is what a caller submits for the general profile.
// Pointer fields distinguish "missing" from zero.
type GeneralProfileInput struct {
	BirthCountry    string `validate:"required,max=100"`
	PassportCountry string `validate:"required,max=100"`
	HeightCm        *int   `validate:"required,gt=0,lte=300"`
	WeightKg        *int   `validate:"required,gt=0,lte=300"`
	PreferredFoot   string `validate:"required,oneof=left right both"`
	Position        string `validate:"required,max=50"`
}
