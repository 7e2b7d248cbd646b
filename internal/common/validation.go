package common

import (
	"errors"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

const (
	maxGuestNameLen = 100
	maxMessageLen   = 4000
)

// Validation sentinels, matched with errors.Is so handlers can map them to
// 400s without string sniffing.
var (
	ErrGuestNameRequired = errors.New("guest name is required")
	ErrGuestNameTooLong  = errors.New("guest name is too long")
	ErrMessageRequired   = errors.New("message is required")
	ErrMessageTooLong    = errors.New("message is too long")
	ErrEmailRequired     = errors.New("email is required")
	ErrEmailInvalid      = errors.New("invalid email format")
)

// IsValidationErr reports whether err is one of the input validation
// sentinels, i.e. the caller's fault rather than the service's.
func IsValidationErr(err error) bool {
	for _, sentinel := range []error{
		ErrGuestNameRequired, ErrGuestNameTooLong,
		ErrMessageRequired, ErrMessageTooLong,
		ErrEmailRequired, ErrEmailInvalid,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func ValidateGuestName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrGuestNameRequired
	}
	if len(name) > maxGuestNameLen {
		return ErrGuestNameTooLong
	}
	return nil
}

func ValidateMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return ErrMessageRequired
	}
	if len(message) > maxMessageLen {
		return ErrMessageTooLong
	}
	return nil
}

func ValidateEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ErrEmailRequired
	}
	if !emailRegex.MatchString(email) {
		return ErrEmailInvalid
	}
	return nil
}
