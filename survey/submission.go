package survey

import (
	"fmt"

	"github.com/Devvify/dynamic-survey-management/model"
)

// ValidateSubmission checks a raw answer set against a survey's persisted
// fields. Fields must be given in ascending order; validation stops at the
// first violation (unlike definition validation, which aggregates —
// definition errors are for survey authors, submission errors for the
// person filling the form).
//
// Optional fields absent from the answer set are skipped entirely: no
// checks, no stored answer.
func ValidateSubmission(fields []model.Field, answers model.AnswerSet) error {
	for _, f := range fields {
		value, present := answers[f.Key]
		if !present {
			if f.Required {
				return &SubmissionError{RequiredFieldMissing, f.Key, "This field is required."}
			}
			continue
		}

		switch f.Type {
		case model.TypeCheckbox:
			if !value.IsList() {
				return &SubmissionError{InvalidShape, f.Key, "Must be an array."}
			}
			if f.Required && len(value.List()) == 0 {
				return &SubmissionError{RequiredFieldMissing, f.Key, "Please select at least one option."}
			}
		case model.TypeText, model.TypeTextarea, model.TypeNumber, model.TypeDate,
			model.TypeRadio, model.TypeSelect:
			if value.IsList() {
				return &SubmissionError{InvalidShape, f.Key, "Must be a single value."}
			}
		default:
			// a type this validator does not know cannot have come from a
			// validated definition
			return &SubmissionError{MisconfiguredField, f.Key, fmt.Sprintf("Unknown field type %q.", f.Type)}
		}

		if !f.Type.SupportsOptions() {
			continue
		}

		allowed := f.AllowedValues()
		if len(allowed) == 0 {
			return &SubmissionError{MisconfiguredField, f.Key, "No options configured for this field."}
		}

		submitted := value.List()
		if !value.IsList() {
			submitted = []string{value.Scalar()}
		}
		for _, v := range submitted {
			if !containsValue(allowed, v) {
				return &SubmissionError{InvalidOption, f.Key, "Invalid option selected."}
			}
		}
	}
	return nil
}

func containsValue(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
