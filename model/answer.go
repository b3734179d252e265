package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// AnswerValue is one submitted value: either a single scalar or a list of
// selected option values. Which shape is legal depends on the field type,
// so decoding keeps both and the submission validator decides.
type AnswerValue struct {
	scalar string
	list   []string
	isList bool
}

func ScalarAnswer(value string) AnswerValue {
	return AnswerValue{scalar: value}
}

func ListAnswer(values ...string) AnswerValue {
	if values == nil {
		values = []string{}
	}
	return AnswerValue{list: values, isList: true}
}

func (v AnswerValue) IsList() bool {
	return v.isList
}

func (v AnswerValue) Scalar() string {
	return v.scalar
}

func (v AnswerValue) List() []string {
	return v.list
}

var errBadAnswerValue = errors.New("answer value must be a string or an array of strings")

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	err := dec.Decode(&raw)
	if err != nil {
		return err
	}

	switch value := raw.(type) {
	case string:
		*v = ScalarAnswer(value)
	case json.Number:
		*v = ScalarAnswer(value.String())
	case bool:
		*v = ScalarAnswer(strconv.FormatBool(value))
	case []any:
		list := make([]string, 0, len(value))
		for _, item := range value {
			switch item := item.(type) {
			case string:
				list = append(list, item)
			case json.Number:
				list = append(list, item.String())
			case bool:
				list = append(list, strconv.FormatBool(item))
			default:
				return errBadAnswerValue
			}
		}
		*v = ListAnswer(list...)
	default:
		return errBadAnswerValue
	}
	return nil
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	if v.isList {
		return json.Marshal(v.list)
	}
	return json.Marshal(v.scalar)
}
