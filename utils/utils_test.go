package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"player@example.com",
		"first.last+tag@sub.domain.org",
		"x_1%@chess-tour.my",
	}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}

	invalid := []string{
		"",
		"plain-text",
		"@example.com",
		"player@",
		"player@example",
		"player example@domain.com",
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}
