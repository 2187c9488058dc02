package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"pokemedquest/internal/models"
)

var (
	usernameRegex  = regexp.MustCompile(`^[a-zA-Z0-9_.\-]{3,32}$`)
	accessoryRegex = regexp.MustCompile(`^[a-z0-9_-]{1,32}$`)
)

// maxPasswordBytes is the longest input bcrypt accepts
const maxPasswordBytes = 72

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateUsername checks if a username is valid
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return ValidationError{Field: "username", Message: "username is required"}
	}
	if !usernameRegex.MatchString(username) {
		return ValidationError{Field: "username", Message: "username must be 3-32 letters, digits, '.', '_' or '-'"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if utf8.RuneCountInString(password) < 4 {
		return ValidationError{Field: "password", Message: "password must be at least 4 characters"}
	}
	if len(password) > maxPasswordBytes {
		return ValidationError{Field: "password", Message: "password must be at most 72 bytes"}
	}
	return nil
}

// ValidateRole checks that role names a known account role
func ValidateRole(role string) (models.Role, error) {
	r, ok := models.ParseRole(role)
	if !ok {
		return "", ValidationError{Field: "role", Message: "role must be child or admin"}
	}
	return r, nil
}

// ValidateAvatarName checks if an avatar name is valid
func ValidateAvatarName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "avatar name is required"}
	}
	if utf8.RuneCountInString(name) > 30 {
		return ValidationError{Field: "name", Message: "avatar name must be at most 30 characters"}
	}
	return nil
}

// ValidateColor checks that color is in the avatar palette
func ValidateColor(color string) error {
	if !models.IsValidColor(color) {
		return ValidationError{
			Field:   "color",
			Message: "color must be one of " + strings.Join(models.Colors, ", "),
		}
	}
	return nil
}

// ValidateAccessory checks an accessory after normalization. It becomes part
// of an asset file name, so only lowercase letters, digits, '_' and '-' are allowed.
func ValidateAccessory(accessory string) error {
	accessory = models.NormalizeAccessory(accessory)
	if accessory == models.DefaultAccessory || accessoryRegex.MatchString(accessory) {
		return nil
	}
	return ValidationError{
		Field:   "accessory",
		Message: "accessory must be 1-32 lowercase letters, digits, '_' or '-'",
	}
}
