package routes

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/Devvify/dynamic-survey-management/app"
	"github.com/Devvify/dynamic-survey-management/httpx"
	"github.com/Devvify/dynamic-survey-management/log"
	"github.com/Devvify/dynamic-survey-management/model"
	"github.com/Devvify/dynamic-survey-management/routes/middlewares"
	"github.com/Devvify/dynamic-survey-management/store"
	"github.com/Devvify/dynamic-survey-management/survey"
)

func OfficerListSurveys(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveys, err := app.ListActiveSurveys(r.Context(), pageParam(r))
		if err != nil {
			httpx.LogInternalError(w, "db.get_surveys", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"surveys": surveys,
		})
	}
}

func OfficerGetSurveyById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId, err := urlId(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		sv, err := app.GetActiveSurvey(r.Context(), surveyId)
		// inactive surveys are indistinguishable from absent ones here
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, survey.ErrSurveyUnavailable) {
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

func SubmitSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId, err := urlId(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		input := model.SubmissionInput{}
		err = render.DecodeJSON(r.Body, &input)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		sv, err := app.GetActiveSurvey(r.Context(), surveyId)
		switch {
		case errors.Is(err, store.ErrNotFound):
			httpx.LogNotFound(w, "get_survey", surveyId)
			return
		case errors.Is(err, survey.ErrSurveyUnavailable):
			httpx.Unprocessable(w, r, "Survey is not available", nil)
			return
		case err != nil:
			httpx.LogInternalError(w, "db.get_survey", err)
			return
		}

		err = survey.ValidateSubmission(sv.Fields, input.Answers)
		if err != nil {
			var subErr *survey.SubmissionError
			if !errors.As(err, &subErr) {
				httpx.LogInternalError(w, "survey.validate_submission", err)
				return
			}
			if subErr.Kind == survey.MisconfiguredField {
				// schema integrity problem, not the caller's mistake
				httpx.LogInternalError(w, "survey.validate_submission.misconfigured", subErr)
				return
			}
			httpx.Unprocessable(w, r, "The given data was invalid.", map[string][]string{
				"answers." + subErr.FieldKey: {subErr.Message},
			})
			return
		}

		submittedBy, ok := middlewares.UserID(r)
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "request.user_id")
			return
		}

		submissionId, err := app.CreateSubmission(r.Context(), sv, submittedBy, input.Answers)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_submission", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"message":       "Submitted",
			"submission_id": submissionId,
		})
	}
}
