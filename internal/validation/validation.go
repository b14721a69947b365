package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	colorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

// DreamDateLayout is the format of the optional target date on a dream
const DreamDateLayout = "2006-01-02"

// ValidationError represents a validation error that is safe to show to the user
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidationError reports whether err is (or wraps) a ValidationError
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// UserMessage returns the user-facing message of a ValidationError, or "" for other errors
func UserMessage(err error) string {
	var ve ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return ""
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ValidateName checks if a name is valid
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) < 2 {
		return ValidationError{Field: "name", Message: "name must be at least 2 characters"}
	}
	return nil
}

// ValidateDreamText checks the text of a new dream
func ValidateDreamText(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ValidationError{Field: "text", Message: "impian tidak boleh kosong"}
	}
	if len([]rune(text)) > 280 {
		return ValidationError{Field: "text", Message: "impian maksimal 280 karakter"}
	}
	return nil
}

// ValidateDream checks a new dream. Date and color are optional; when set the
// date is YYYY-MM-DD and the color a #rgb or #rrggbb hex value.
func ValidateDream(text, date, color string) error {
	if err := ValidateDreamText(text); err != nil {
		return err
	}
	if date != "" {
		if _, err := time.Parse(DreamDateLayout, date); err != nil {
			return ValidationError{Field: "date", Message: "tanggal harus berformat YYYY-MM-DD"}
		}
	}
	if color != "" && !colorRegex.MatchString(color) {
		return ValidationError{Field: "color", Message: "warna harus kode hex, misalnya #fbbf24"}
	}
	return nil
}
