package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Devvify/dynamic-survey-management/app"
	"github.com/Devvify/dynamic-survey-management/model"
	"github.com/Devvify/dynamic-survey-management/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))

	root.
		With(middlewares.CookieAuth(app.BearerServer), middlewares.Role(app.TokenSecret, model.RoleAdmin)).
		Mount("/admin", servePrivateFiles("/admin"))
	root.Mount("/", servePublicFiles())

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	api.Route("/admin", func(r chi.Router) {
		r.Use(middlewares.Role(app.TokenSecret, model.RoleAdmin))

		r.Post("/surveys", CreateSurvey(app))
		r.Get("/surveys", ListSurveys(app))
		r.Get(`/surveys/{id:^\d+$}`, GetSurveyById(app))
		r.Delete(`/surveys/{id:^\d+$}`, DeleteSurvey(app))

		r.Get(`/surveys/{id:^\d+$}/submissions`, GetSurveySubmissions(app))
		r.Get(`/submissions/{id:^\d+$}`, GetSubmissionById(app))
	})

	api.Route("/officer", func(r chi.Router) {
		r.Use(middlewares.Role(app.TokenSecret, model.RoleOfficer))

		r.Get("/surveys", OfficerListSurveys(app))
		r.Get(`/surveys/{id:^\d+$}`, OfficerGetSurveyById(app))
		r.Post(`/surveys/{id:^\d+$}/submit`, SubmitSurvey(app))
	})

	api.Post("/login", Login(app))
	api.Post("/refresh", Refresh(app))

	return api
}

func servePublicFiles() http.Handler {
	return http.FileServer(http.Dir("public"))
}

func servePrivateFiles(path string) http.Handler {
	return http.StripPrefix(path, http.FileServer(http.Dir("private")))
}
