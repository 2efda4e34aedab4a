package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnakeCase(t *testing.T) {
	cases := map[string]string{
		"Username":              "username",
		"DateOfBirth":           "date_of_birth",
		"HeightCm":              "height_cm",
		"Address1":              "address1",
		"SubstituteAppearances": "substitute_appearances",
	}
	for in, want := range cases {
		assert.Equal(t, want, snakeCase(in))
	}
}

func TestUsernamePattern(t *testing.T) {
	for _, ok := range []string{"alice", "a.b-c_d", "Player99"} {
		assert.True(t, usernamePattern.MatchString(ok), ok)
	}
	for _, bad := range []string{"", "a b", "a/b", "ä"} {
		assert.False(t, usernamePattern.MatchString(bad), bad)
	}
}
