package verification

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// MinTextLength is the shortest resume text, in characters, worth analysing.
	MinTextLength = 100

	maxUsernameLength = 39
)

type usernameInput struct {
	Username string `validate:"required,github_username"`
}

type textInput struct {
	Text string `validate:"min=100"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("github_username", func(fl validator.FieldLevel) bool {
		return ValidUsername(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register github_username validation: %v", err))
	}
	return v
}

// ValidUsername reports whether name is a well-formed GitHub login: 1 to 39
// letters, digits or single hyphens, not starting or ending with a hyphen.
func ValidUsername(name string) bool {
	if name == "" || len(name) > maxUsernameLength {
		return false
	}
	if strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-") || strings.Contains(name, "--") {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
		default:
			return false
		}
	}
	return true
}

func (s *Service) validateUsername(username string) error {
	if err := s.validate.Struct(usernameInput{Username: username}); err != nil {
		return toValidationError(err, "github_username", "invalid GitHub username format")
	}
	return nil
}

func (s *Service) validateText(text string) error {
	if err := s.validate.Struct(textInput{Text: strings.TrimSpace(text)}); err != nil {
		return toValidationError(err, "text", "insufficient text extracted from resume")
	}
	return nil
}

func toValidationError(err error, field, message string) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return &ValidationError{Field: field, Message: message}
	}
	return &InternalError{Err: err}
}
