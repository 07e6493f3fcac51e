package properties

import "errors"

// ErrValidation is wrapped by every CodedError.
var ErrValidation = errors.New("properties: validation failed")

const (
	CodeInvalidID       = "INVALID_ID"
	CodeNotFound        = "PROPERTY_NOT_FOUND"
	CodeInvalidName     = "INVALID_NAME"
	CodeInvalidCity     = "INVALID_CITY"
	CodeInvalidArea     = "INVALID_AREA"
	CodeInvalidType     = "INVALID_TYPE"
	CodeInvalidImageURL = "INVALID_IMAGE_URL"
	CodeMissingPrice    = "MISSING_PRICE"
	CodeInvalidPrice    = "INVALID_PRICE"
	CodeMissingRating   = "MISSING_RATING"
	CodeInvalidRating   = "INVALID_RATING"
	CodeInvalidNights   = "INVALID_NIGHTS"
)

// CodedError is a validation failure with a stable machine-readable code.
type CodedError struct {
	Code    string
	Message string
}

func Invalid(code, message string) *CodedError {
	return &CodedError{Code: code, Message: message}
}

func (e *CodedError) Error() string { return e.Message }

func (e *CodedError) Unwrap() error { return ErrValidation }
