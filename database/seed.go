package database

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/Devvify/dynamic-survey-management/config"
	"github.com/Devvify/dynamic-survey-management/model"
	"github.com/Devvify/dynamic-survey-management/store"
)

// BootstrapAdmin upserts the admin account named by the -admin-user and
// -admin-pass flags, so a fresh deployment has a way in. A no-op when the
// flags are not given.
func BootstrapAdmin(ctx context.Context, s *store.Store, cfg config.Config) error {
	if cfg.AdminUser == "" || cfg.AdminPass == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.UpsertUser(ctx, cfg.AdminUser, hash, model.RoleAdmin)
}
