package survey

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/Devvify/dynamic-survey-management/model"
)

var reFieldKey = regexp.MustCompile(`^[a-z0-9_]+$`)

// ValidateDefinition checks a candidate survey payload for internal
// consistency before anything is persisted. Unlike submission validation it
// aggregates: every violation in the payload is reported, each as a
// path-tagged FieldError.
func ValidateDefinition(def model.SurveyInput) error {
	var errs *multierror.Error

	if strings.TrimSpace(def.Title) == "" {
		errs = multierror.Append(errs, &FieldError{"title", "Title is required."})
	}
	if def.Status != "" && def.Status != model.StatusActive && def.Status != model.StatusInactive {
		errs = multierror.Append(errs, &FieldError{"status", "Status must be active or inactive."})
	}
	if len(def.Fields) == 0 {
		errs = multierror.Append(errs, &FieldError{"fields", "At least one field is required."})
	}

	seenKeys := make(map[string]bool, len(def.Fields))
	for i, f := range def.Fields {
		path := fmt.Sprintf("fields.%d", i)

		switch {
		case f.Key == "":
			errs = multierror.Append(errs, &FieldError{path + ".key", "Field key is required."})
		case !reFieldKey.MatchString(f.Key):
			errs = multierror.Append(errs, &FieldError{path + ".key", "Field key may only contain lowercase letters, digits and underscores."})
		case len(f.Key) > 64:
			errs = multierror.Append(errs, &FieldError{path + ".key", "Field key may not be longer than 64 characters."})
		case seenKeys[f.Key]:
			errs = multierror.Append(errs, &FieldError{path + ".key", fmt.Sprintf("Field key %q must be unique.", f.Key)})
		default:
			seenKeys[f.Key] = true
		}

		if strings.TrimSpace(f.Label) == "" {
			errs = multierror.Append(errs, &FieldError{path + ".label", "Field label is required."})
		}
		if !f.Type.Known() {
			errs = multierror.Append(errs, &FieldError{path + ".type", fmt.Sprintf("Unknown field type %q.", f.Type)})
			continue
		}

		needsOptions := f.Type.SupportsOptions()
		hasOptions := len(f.Options) > 0

		if needsOptions && !hasOptions {
			errs = multierror.Append(errs, &FieldError{path + ".options", "Options are required for this field type."})
			continue
		}
		if !needsOptions && hasOptions {
			errs = multierror.Append(errs, &FieldError{path + ".options", "Options are not allowed for this field type."})
			continue
		}

		if !needsOptions {
			continue
		}

		seenValues := make(map[string]bool, len(f.Options))
		duplicateValues := false
		for j, opt := range f.Options {
			optPath := fmt.Sprintf("%s.options.%d", path, j)
			if strings.TrimSpace(opt.Label) == "" {
				errs = multierror.Append(errs, &FieldError{optPath + ".label", "Option label is required."})
			}
			if opt.Value == "" {
				errs = multierror.Append(errs, &FieldError{optPath + ".value", "Option value is required."})
				continue
			}
			if seenValues[opt.Value] {
				duplicateValues = true
			}
			seenValues[opt.Value] = true
		}
		if duplicateValues {
			errs = multierror.Append(errs, &FieldError{path + ".options", "Option values must be unique per field."})
		}
	}

	return errs.ErrorOrNil()
}
