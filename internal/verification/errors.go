package verification

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports malformed input such as a bad username or a resume
// that is too short to analyse.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports that the requested profile does not exist.
type NotFoundError struct {
	Username string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("github user %q not found", e.Username)
}

// ExtractionError reports that a document produced no usable text or no
// recognizable skills.
type ExtractionError struct {
	Message string
	Err     error
}

func (e *ExtractionError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// UpstreamError reports a profile provider failure other than not-found.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("github request failed: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// InternalError wraps anything unexpected. Its message never reaches clients.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error: %v", e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }

// Classify returns err unchanged when it already belongs to the taxonomy and
// wraps it into an InternalError otherwise.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var (
		validationErr *ValidationError
		notFoundErr   *NotFoundError
		extractionErr *ExtractionError
		upstreamErr   *UpstreamError
		internalErr   *InternalError
	)

	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &notFoundErr),
		errors.As(err, &extractionErr),
		errors.As(err, &upstreamErr),
		errors.As(err, &internalErr):
		return err
	default:
		return &InternalError{Err: err}
	}
}

// HTTPStatus maps an error to the status code returned by the API.
func HTTPStatus(err error) int {
	var (
		validationErr *ValidationError
		notFoundErr   *NotFoundError
		extractionErr *ExtractionError
		upstreamErr   *UpstreamError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &extractionErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &upstreamErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message that is safe to show to a client.
func PublicMessage(err error) string {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
