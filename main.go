package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Devvify/dynamic-survey-management/app"
	"github.com/Devvify/dynamic-survey-management/config"
	"github.com/Devvify/dynamic-survey-management/database"
	"github.com/Devvify/dynamic-survey-management/httpx"
	"github.com/Devvify/dynamic-survey-management/log"
	"github.com/Devvify/dynamic-survey-management/routes"
	"github.com/Devvify/dynamic-survey-management/store"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()

	surveyStore := store.New(db)
	err = database.BootstrapAdmin(context.Background(), surveyStore, cfg)
	if err != nil {
		log.Fatal("main.db.bootstrap_admin:", err)
	}

	app := app.App{
		Store:        surveyStore,
		BearerServer: httpx.NewBearerServer(surveyStore, cfg),
		Config:       cfg,
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
