package survey

import (
	"errors"

	"github.com/hashicorp/go-multierror"
)

// ErrSurveyUnavailable is returned when a read or submission targets a
// survey that is not active.
var ErrSurveyUnavailable = errors.New("survey is not available")

// FieldError is one definition violation, tagged with the payload path it
// was found at (e.g. "fields.2.options").
type FieldError struct {
	Path    string
	Message string
}

func (e *FieldError) Error() string {
	return e.Path + ": " + e.Message
}

// DefinitionErrors extracts the individual violations from an error
// returned by ValidateDefinition.
func DefinitionErrors(err error) ([]*FieldError, bool) {
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		return nil, false
	}

	violations := make([]*FieldError, 0, len(merr.Errors))
	for _, err := range merr.Errors {
		var fieldErr *FieldError
		if errors.As(err, &fieldErr) {
			violations = append(violations, fieldErr)
		}
	}
	return violations, len(violations) > 0
}

type Kind string

const (
	RequiredFieldMissing Kind = "required_field_missing"
	InvalidShape         Kind = "invalid_shape"
	MisconfiguredField   Kind = "misconfigured_field"
	InvalidOption        Kind = "invalid_option"
)

// SubmissionError is the first violation found while validating an answer
// set against a survey's fields.
type SubmissionError struct {
	Kind     Kind
	FieldKey string
	Message  string
}

func (e *SubmissionError) Error() string {
	return "answers." + e.FieldKey + ": " + e.Message
}
