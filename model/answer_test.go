package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerValueUnmarshal(t *testing.T) {
	t.Run("string scalar", func(t *testing.T) {
		var v AnswerValue
		require.NoError(t, json.Unmarshal([]byte(`"Ann"`), &v))
		assert.False(t, v.IsList())
		assert.Equal(t, "Ann", v.Scalar())
	})

	t.Run("number keeps literal form", func(t *testing.T) {
		var v AnswerValue
		require.NoError(t, json.Unmarshal([]byte(`42.5`), &v))
		assert.False(t, v.IsList())
		assert.Equal(t, "42.5", v.Scalar())
	})

	t.Run("bool stringified", func(t *testing.T) {
		var v AnswerValue
		require.NoError(t, json.Unmarshal([]byte(`true`), &v))
		assert.Equal(t, "true", v.Scalar())
	})

	t.Run("string array", func(t *testing.T) {
		var v AnswerValue
		require.NoError(t, json.Unmarshal([]byte(`["a","b"]`), &v))
		assert.True(t, v.IsList())
		assert.Equal(t, []string{"a", "b"}, v.List())
	})

	t.Run("empty array stays a list", func(t *testing.T) {
		var v AnswerValue
		require.NoError(t, json.Unmarshal([]byte(`[]`), &v))
		assert.True(t, v.IsList())
		assert.Empty(t, v.List())
	})

	t.Run("object rejected", func(t *testing.T) {
		var v AnswerValue
		assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &v))
	})

	t.Run("nested array rejected", func(t *testing.T) {
		var v AnswerValue
		assert.Error(t, json.Unmarshal([]byte(`[["a"]]`), &v))
	})

	t.Run("null rejected", func(t *testing.T) {
		var v AnswerValue
		assert.Error(t, json.Unmarshal([]byte(`null`), &v))
	})
}

func TestAnswerSetDecode(t *testing.T) {
	var input SubmissionInput
	payload := `{"answers": {"name": "Ann", "tags": ["a", "b"], "age": 30}}`
	require.NoError(t, json.Unmarshal([]byte(payload), &input))

	assert.Equal(t, "Ann", input.Answers["name"].Scalar())
	assert.Equal(t, []string{"a", "b"}, input.Answers["tags"].List())
	assert.Equal(t, "30", input.Answers["age"].Scalar())
}

func TestAnswerValueMarshalRoundTrip(t *testing.T) {
	scalar, err := json.Marshal(ScalarAnswer("red"))
	require.NoError(t, err)
	assert.JSONEq(t, `"red"`, string(scalar))

	list, err := json.Marshal(ListAnswer("a", "b"))
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(list))

	empty, err := json.Marshal(ListAnswer())
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(empty))
}

func TestFieldTypeSupportsOptions(t *testing.T) {
	assert.True(t, TypeRadio.SupportsOptions())
	assert.True(t, TypeSelect.SupportsOptions())
	assert.True(t, TypeCheckbox.SupportsOptions())

	assert.False(t, TypeText.SupportsOptions())
	assert.False(t, TypeTextarea.SupportsOptions())
	assert.False(t, TypeNumber.SupportsOptions())
	assert.False(t, TypeDate.SupportsOptions())
}

func TestFieldAllowedValues(t *testing.T) {
	f := Field{Options: []Option{
		{Value: "red", Order: 1},
		{Value: "blue", Order: 2},
	}}
	assert.Equal(t, []string{"red", "blue"}, f.AllowedValues())

	assert.Nil(t, Field{}.AllowedValues())
}
