package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Devvify/dynamic-survey-management/model"
)

func TestCreateSurveyEndpoint(t *testing.T) {
	app := newTestApp(t)
	admin := seedUser(t, app, "admin", model.RoleAdmin)
	router := testRouter(app, admin, model.RoleAdmin)

	t.Run("valid definition created and hydrated", func(t *testing.T) {
		resp := doJSON(t, router, "POST", "/admin/surveys", colorSurveyPayload())
		require.Equal(t, http.StatusCreated, resp.Code)

		var created model.Survey
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
		assert.NotZero(t, created.ID)
		assert.Equal(t, admin, created.CreatedBy)
		require.Len(t, created.Fields, 2)
		assert.Equal(t, "name", created.Fields[0].Key)
		require.Len(t, created.Fields[1].Options, 2)
		assert.Equal(t, "red", created.Fields[1].Options[0].Value)
	})

	t.Run("invalid definition reports every violation", func(t *testing.T) {
		payload := model.SurveyInput{
			Fields: []model.FieldInput{
				{Key: "a", Label: "A", Type: model.TypeText},
				{Key: "a", Label: "A again", Type: model.TypeText},
				{Key: "b", Label: "B", Type: model.TypeSelect},
			},
		}
		resp := doJSON(t, router, "POST", "/admin/surveys", payload)
		require.Equal(t, http.StatusUnprocessableEntity, resp.Code)

		body := decodeErrors(t, resp)
		assert.Contains(t, body.Errors, "title")
		assert.Contains(t, body.Errors, "fields.1.key")
		assert.Contains(t, body.Errors, "fields.2.options")
	})

	t.Run("malformed body", func(t *testing.T) {
		resp := doJSON(t, router, "POST", "/admin/surveys", "not an object")
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestGetSurveyEndpointNotFound(t *testing.T) {
	app := newTestApp(t)
	admin := seedUser(t, app, "admin", model.RoleAdmin)
	router := testRouter(app, admin, model.RoleAdmin)

	resp := doJSON(t, router, "GET", "/admin/surveys/41", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteSurveyEndpoint(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	admin := seedUser(t, app, "admin", model.RoleAdmin)
	officer := seedUser(t, app, "officer", model.RoleOfficer)
	router := testRouter(app, admin, model.RoleAdmin)

	id, err := app.CreateSurvey(ctx, colorSurveyPayload(), admin)
	require.NoError(t, err)

	t.Run("conflict when submissions exist", func(t *testing.T) {
		sv, err := app.GetSurvey(ctx, id)
		require.NoError(t, err)
		_, err = app.CreateSubmission(ctx, sv, officer, model.AnswerSet{
			"name":  model.ScalarAnswer("Ann"),
			"color": model.ScalarAnswer("red"),
		})
		require.NoError(t, err)

		resp := doJSON(t, router, "DELETE", "/admin/surveys/"+strconv.Itoa(id), nil)
		assert.Equal(t, http.StatusConflict, resp.Code)
	})

	t.Run("no content when unreferenced", func(t *testing.T) {
		otherId, err := app.CreateSurvey(ctx, colorSurveyPayload(), admin)
		require.NoError(t, err)

		resp := doJSON(t, router, "DELETE", "/admin/surveys/"+strconv.Itoa(otherId), nil)
		assert.Equal(t, http.StatusNoContent, resp.Code)
	})
}

func TestSubmissionReviewEndpoints(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	admin := seedUser(t, app, "admin", model.RoleAdmin)
	officer := seedUser(t, app, "officer", model.RoleOfficer)
	router := testRouter(app, admin, model.RoleAdmin)

	id, err := app.CreateSurvey(ctx, colorSurveyPayload(), admin)
	require.NoError(t, err)
	sv, err := app.GetSurvey(ctx, id)
	require.NoError(t, err)
	submissionId, err := app.CreateSubmission(ctx, sv, officer, model.AnswerSet{
		"name":  model.ScalarAnswer("Ann"),
		"color": model.ScalarAnswer("blue"),
	})
	require.NoError(t, err)

	t.Run("listing", func(t *testing.T) {
		resp := doJSON(t, router, "GET", "/admin/surveys/"+strconv.Itoa(id)+"/submissions", nil)
		require.Equal(t, http.StatusOK, resp.Code)

		var body struct {
			Submissions []model.Submission `json:"submissions"`
		}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		require.Len(t, body.Submissions, 1)
		assert.Equal(t, "officer", body.Submissions[0].Submitter)
	})

	t.Run("listing of unknown survey is 404", func(t *testing.T) {
		resp := doJSON(t, router, "GET", "/admin/surveys/999/submissions", nil)
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("detail hydrates answers", func(t *testing.T) {
		resp := doJSON(t, router, "GET", "/admin/submissions/"+strconv.Itoa(submissionId), nil)
		require.Equal(t, http.StatusOK, resp.Code)

		var sub model.Submission
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &sub))
		require.Len(t, sub.Answers, 2)
		assert.Equal(t, "name", sub.Answers[0].FieldKey)
		assert.Equal(t, "Ann", sub.Answers[0].Value)
	})
}
