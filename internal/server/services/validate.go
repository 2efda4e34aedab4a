package services

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/playerprofile/internal/common"
	"github.com/dmitrijs2005/playerprofile/internal/server/models"
	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// inputValidator returns the shared validator with the custom tags registered.
// Field names in errors are the lower snake case form of the Go field name.
func inputValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			return snakeCase(f.Name)
		})
		validate = v
	})
	return validate
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// checkStruct runs the tag rules on v and appends extra problems found by
// the caller. It returns nil or a *common.ValidationError.
func checkStruct(v any, extra ...common.FieldError) error {
	fields := append([]common.FieldError(nil), extra...)

	if err := inputValidator().Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
		}
		for _, fe := range verrs {
			fields = append(fields, common.FieldError{Field: fe.Field(), Reason: reason(fe)})
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return common.NewValidationError(fields...)
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "username":
		return "may contain only letters, digits, '.', '_' and '-'"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		if fe.Kind() == reflect.Int {
			return "must be at least " + fe.Param()
		}
		return "must be at least " + fe.Param() + " characters"
	case "gt":
		return "must be greater than " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}

func trimAccountInput(in *models.AccountInput) {
	for _, p := range []*string{
		&in.Username, &in.FirstName, &in.LastName, &in.DateOfBirth, &in.Club, &in.School,
		&in.Address1, &in.Address2, &in.City, &in.Country, &in.Telephone, &in.Email,
	} {
		*p = strings.TrimSpace(*p)
	}
}

// validateAccountInput normalizes in and checks it. now bounds the birth date.
func validateAccountInput(in *models.AccountInput, now time.Time) error {
	trimAccountInput(in)

	var extra []common.FieldError
	if dob, err := time.Parse(models.DateLayout, in.DateOfBirth); err == nil {
		today := now.UTC().Truncate(24 * time.Hour)
		if dob.After(today) {
			extra = append(extra, common.FieldError{Field: "date_of_birth", Reason: "must not be in the future"})
		}
	}
	return checkStruct(in, extra...)
}

func validateGeneralProfileInput(in *models.GeneralProfileInput) error {
	in.BirthCountry = strings.TrimSpace(in.BirthCountry)
	in.PassportCountry = strings.TrimSpace(in.PassportCountry)
	in.Position = strings.TrimSpace(in.Position)
	in.PreferredFoot = strings.ToLower(strings.TrimSpace(in.PreferredFoot))
	return checkStruct(in)
}

func validateCareerEntryInput(in *models.CareerEntryInput) error {
	in.Season = strings.TrimSpace(in.Season)
	in.Team = strings.TrimSpace(in.Team)
	in.Competition = strings.TrimSpace(in.Competition)

	var extra []common.FieldError
	if in.Appearances != nil {
		if in.Starts != nil && *in.Starts > *in.Appearances {
			extra = append(extra, common.FieldError{Field: "starts", Reason: "must not exceed appearances"})
		}
		if in.SubstituteAppearances != nil && *in.SubstituteAppearances > *in.Appearances {
			extra = append(extra, common.FieldError{Field: "substitute_appearances", Reason: "must not exceed appearances"})
		}
	}
	return checkStruct(in, extra...)
}
