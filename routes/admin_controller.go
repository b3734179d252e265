package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/Devvify/dynamic-survey-management/app"
	"github.com/Devvify/dynamic-survey-management/httpx"
	"github.com/Devvify/dynamic-survey-management/log"
	"github.com/Devvify/dynamic-survey-management/model"
	"github.com/Devvify/dynamic-survey-management/routes/middlewares"
	"github.com/Devvify/dynamic-survey-management/store"
	"github.com/Devvify/dynamic-survey-management/survey"
)

func urlId(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

func pageParam(r *http.Request) (page store.Page) {
	query := r.URL.Query()
	page.Number, _ = strconv.Atoi(query.Get("page"))
	page.Size, _ = strconv.Atoi(query.Get("per_page"))
	return
}

func CreateSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		def := model.SurveyInput{}
		err := render.DecodeJSON(r.Body, &def)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		err = survey.ValidateDefinition(def)
		if err != nil {
			violations, ok := survey.DefinitionErrors(err)
			if !ok {
				httpx.LogInternalError(w, "survey.validate_definition", err)
				return
			}

			fieldErrors := map[string][]string{}
			for _, v := range violations {
				fieldErrors[v.Path] = append(fieldErrors[v.Path], v.Message)
			}
			httpx.Unprocessable(w, r, "The survey definition is invalid.", fieldErrors)
			return
		}

		createdBy, ok := middlewares.UserID(r)
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "request.user_id")
			return
		}

		surveyId, err := app.CreateSurvey(r.Context(), def, createdBy)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_survey", err)
			return
		}

		created, err := app.GetSurvey(r.Context(), surveyId)
		if err != nil {
			httpx.LogInternalError(w, "db.get_survey", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, created)
	}
}

func ListSurveys(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveys, err := app.ListSurveys(r.Context(), pageParam(r))
		if err != nil {
			httpx.LogInternalError(w, "db.get_surveys", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"surveys": surveys,
		})
	}
}

func GetSurveyById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId, err := urlId(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		sv, err := app.GetSurvey(r.Context(), surveyId)
		if errors.Is(err, store.ErrNotFound) {
			httpx.LogNotFound(w, "get_survey", surveyId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_survey", err)
			return
		}

		render.JSON(w, r, sv)
	}
}

func DeleteSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId, err := urlId(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		err = app.DeleteSurvey(r.Context(), surveyId)
		switch {
		case errors.Is(err, store.ErrSurveyHasSubmissions):
			httpx.LogStatusMsg(w, http.StatusConflict, log.DebugLevel, "db.delete_survey.referenced",
				"survey %d has submissions and cannot be deleted", surveyId)
			return
		case errors.Is(err, store.ErrNotFound):
			httpx.LogNotFound(w, "delete_survey", surveyId)
			return
		case err != nil:
			httpx.LogInternalError(w, "db.delete_survey", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func GetSurveySubmissions(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId, err := urlId(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		// 404 before an empty listing for a survey that never existed
		_, err = app.GetSurvey(r.Context(), surveyId)
		if errors.Is(err, store.ErrNotFound) {
			httpx.LogNotFound(w, "get_submissions", surveyId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_survey", err)
			return
		}

		submissions, err := app.ListSubmissions(r.Context(), surveyId, pageParam(r))
		if err != nil {
			httpx.LogInternalError(w, "db.get_submissions", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"submissions": submissions,
		})
	}
}

func GetSubmissionById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submissionId, err := urlId(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		submission, err := app.GetSubmission(r.Context(), submissionId)
		if errors.Is(err, store.ErrNotFound) {
			httpx.LogNotFound(w, "get_submission", submissionId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_submission", err)
			return
		}

		render.JSON(w, r, submission)
	}
}
