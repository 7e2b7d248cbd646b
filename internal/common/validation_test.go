package common

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateGuestName(t *testing.T) {
	assert.NoError(t, ValidateGuestName("Priya"))
	assert.ErrorIs(t, ValidateGuestName(""), ErrGuestNameRequired)
	assert.ErrorIs(t, ValidateGuestName("   "), ErrGuestNameRequired)
	assert.ErrorIs(t, ValidateGuestName(strings.Repeat("x", 101)), ErrGuestNameTooLong)
	assert.NoError(t, ValidateGuestName(strings.Repeat("x", 100)))
}

func TestValidateMessage(t *testing.T) {
	assert.NoError(t, ValidateMessage("congrats!"))
	assert.ErrorIs(t, ValidateMessage(""), ErrMessageRequired)
	assert.ErrorIs(t, ValidateMessage(strings.Repeat("x", 4001)), ErrMessageTooLong)
	assert.NoError(t, ValidateMessage(strings.Repeat("x", 4000)))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("host@example.com"))
	assert.NoError(t, ValidateEmail("  Host@Example.COM "))
	assert.ErrorIs(t, ValidateEmail(""), ErrEmailRequired)
	assert.ErrorIs(t, ValidateEmail("not-an-email"), ErrEmailInvalid)
}

func TestIsValidationErr(t *testing.T) {
	assert.True(t, IsValidationErr(ErrGuestNameRequired))
	assert.True(t, IsValidationErr(ErrMessageTooLong))
	assert.True(t, IsValidationErr(ErrEmailInvalid))

	// wrapping survives errors.Is
	assert.True(t, IsValidationErr(fmt.Errorf("submit: %w", ErrMessageRequired)))

	assert.False(t, IsValidationErr(errors.New("db down")))
	assert.False(t, IsValidationErr(nil))
}
