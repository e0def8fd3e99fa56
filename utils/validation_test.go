package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("jane_doe42"))
	assert.Error(t, ValidateUsername("ab"))
	assert.Error(t, ValidateUsername("has spaces"))
	assert.Error(t, ValidateUsername("way_too_long_username_over_twenty"))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("jane@example.com"))
	assert.Error(t, ValidateEmail("jane@"))
	assert.Error(t, ValidateEmail("not-an-email"))
}

func TestValidateCard(t *testing.T) {
	year := time.Now().Year() + 1

	// Standard test card numbers pass the Luhn check
	assert.Empty(t, ValidateCard("4242424242424242", 12, year))
	assert.Empty(t, ValidateCard("4242 4242 4242 4242", 12, year))

	errs := ValidateCard("4242424242424241", 12, year)
	assert.NotEmpty(t, errs, "bad checksum must be rejected")

	errs = ValidateCard("4242424242424242", 13, year)
	assert.NotEmpty(t, errs, "month out of range")

	errs = ValidateCard("4242424242424242", 1, time.Now().Year()-1)
	assert.NotEmpty(t, errs, "expired card")
}

func TestCardLastFour(t *testing.T) {
	assert.Equal(t, "4242", CardLastFour("4242 4242 4242 4242"))
	assert.Equal(t, "123", CardLastFour("123"))
}

func TestGenerateVoucherCode(t *testing.T) {
	code, err := GenerateVoucherCode()
	assert.NoError(t, err)
	assert.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'), "unexpected character %q", r)
	}
}
