package model

import "time"

type FieldType string

const (
	TypeText     FieldType = "text"
	TypeTextarea FieldType = "textarea"
	TypeNumber   FieldType = "number"
	TypeDate     FieldType = "date"
	TypeRadio    FieldType = "radio"
	TypeSelect   FieldType = "select"
	TypeCheckbox FieldType = "checkbox"
)

var FieldTypes = []FieldType{
	TypeText, TypeTextarea, TypeNumber, TypeDate,
	TypeRadio, TypeSelect, TypeCheckbox,
}

// SupportsOptions reports whether fields of this type carry a predefined
// option set the submitted values are checked against.
func (t FieldType) SupportsOptions() bool {
	switch t {
	case TypeRadio, TypeSelect, TypeCheckbox:
		return true
	}
	return false
}

func (t FieldType) Known() bool {
	for _, known := range FieldTypes {
		if t == known {
			return true
		}
	}
	return false
}

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

const (
	RoleAdmin   = "admin"
	RoleOfficer = "officer"
)

type Survey struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedBy   int       `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	Fields      []Field   `json:"fields,omitempty"`
}

type Field struct {
	ID       int       `json:"id"`
	SurveyID int       `json:"-"`
	Key      string    `json:"key"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"is_required"`
	HelpText string    `json:"help_text,omitempty"`
	Order    int       `json:"order"`
	Options  []Option  `json:"options,omitempty"`
}

// AllowedValues collects the machine tokens of the field's options, in
// option order.
func (f Field) AllowedValues() []string {
	if len(f.Options) == 0 {
		return nil
	}
	values := make([]string, len(f.Options))
	for i, opt := range f.Options {
		values[i] = opt.Value
	}
	return values
}

type Option struct {
	ID      int    `json:"id"`
	FieldID int    `json:"-"`
	Label   string `json:"label"`
	Value   string `json:"value"`
	Order   int    `json:"order"`
}

type Submission struct {
	ID          int       `json:"id"`
	SurveyID    int       `json:"survey_id"`
	SurveyTitle string    `json:"survey_title,omitempty"`
	SubmittedBy int       `json:"submitted_by"`
	Submitter   string    `json:"submitter,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Answers     []Answer  `json:"answers,omitempty"`
}

type Answer struct {
	ID         int    `json:"id"`
	FieldID    int    `json:"field_id"`
	FieldKey   string `json:"field_key"`
	FieldLabel string `json:"field_label"`
	Value      any    `json:"value"`
}

type User struct {
	ID           int
	Username     string
	PasswordHash []byte
	Role         string
}

// SurveyInput is the definition payload accepted from admins.
type SurveyInput struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
	Fields      []FieldInput `json:"fields"`
}

type FieldInput struct {
	Key      string        `json:"key"`
	Label    string        `json:"label"`
	Type     FieldType     `json:"type"`
	Required bool          `json:"is_required"`
	HelpText string        `json:"help_text"`
	Order    int           `json:"order"`
	Options  []OptionInput `json:"options"`
}

type OptionInput struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Order int    `json:"order"`
}

// SubmissionInput is the answer payload accepted from officers.
type SubmissionInput struct {
	Answers AnswerSet `json:"answers"`
}

// AnswerSet maps field keys to submitted values.
type AnswerSet map[string]AnswerValue
