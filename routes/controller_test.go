package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/oauth"
	"github.com/stretchr/testify/require"

	"github.com/Devvify/dynamic-survey-management/app"
	"github.com/Devvify/dynamic-survey-management/config"
	"github.com/Devvify/dynamic-survey-management/database"
	"github.com/Devvify/dynamic-survey-management/model"
	"github.com/Devvify/dynamic-survey-management/store"
)

func newTestApp(t *testing.T) app.App {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	cfg := config.Config{DBUrl: "file:" + name + "?mode=memory&cache=shared"}
	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return app.App{
		Store:  store.New(db),
		Config: cfg,
	}
}

func seedUser(t *testing.T, app app.App, username, role string) int {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, app.UpsertUser(ctx, username, []byte("irrelevant"), role))
	u, err := app.UserByUsername(ctx, username)
	require.NoError(t, err)
	return u.ID
}

// claimsFrom stands in for the oauth middleware: it stamps the request with
// the claims a verified token would carry.
func claimsFrom(userID int, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), oauth.ClaimsContext, map[string]string{
				"user_id": strconv.Itoa(userID),
				"roles":   role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func testRouter(app app.App, userID int, role string) http.Handler {
	r := chi.NewRouter()
	r.Use(claimsFrom(userID, role))

	r.Post("/admin/surveys", CreateSurvey(app))
	r.Get("/admin/surveys/{id}", GetSurveyById(app))
	r.Delete("/admin/surveys/{id}", DeleteSurvey(app))
	r.Get("/admin/surveys/{id}/submissions", GetSurveySubmissions(app))
	r.Get("/admin/submissions/{id}", GetSubmissionById(app))

	r.Get("/officer/surveys/{id}", OfficerGetSurveyById(app))
	r.Post("/officer/surveys/{id}/submit", SubmitSurvey(app))

	return r
}

func doJSON(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("content-type", "application/json")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

type errorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func decodeErrors(t *testing.T, resp *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body
}

func colorSurveyPayload() model.SurveyInput {
	return model.SurveyInput{
		Title: "T",
		Fields: []model.FieldInput{
			{Key: "name", Label: "Name", Type: model.TypeText, Required: true, Order: 1},
			{Key: "color", Label: "Color", Type: model.TypeSelect, Required: true, Order: 2, Options: []model.OptionInput{
				{Label: "Red", Value: "red", Order: 1},
				{Label: "Blue", Value: "blue", Order: 2},
			}},
		},
	}
}
