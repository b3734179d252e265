package app

import (
	"github.com/go-chi/oauth"

	"github.com/Devvify/dynamic-survey-management/config"
	"github.com/Devvify/dynamic-survey-management/store"
)

// App bundles the collaborators every handler constructor needs.
type App struct {
	*store.Store
	*oauth.BearerServer
	config.Config
}
