package verification

import (
	"errors"

	"github.com/spigell/trusthire/internal/document"
)

// FromDocument classifies an error returned by the document store.
func FromDocument(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, document.ErrUnsupportedType), errors.Is(err, document.ErrTooLarge):
		return &ValidationError{Field: "resume", Message: err.Error()}
	case errors.Is(err, document.ErrExtraction):
		return &ExtractionError{Message: "failed to extract text from resume", Err: err}
	default:
		return Classify(err)
	}
}
