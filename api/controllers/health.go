package controllers

import (
	"net/http"

	"github.com/ideabank/ideabank-backend/api/responses"
	"github.com/ideabank/ideabank-backend/internal/records"
	"github.com/ideabank/ideabank-backend/pkg/config"
	pkgerrors "github.com/ideabank/ideabank-backend/pkg/errors"
	"github.com/ideabank/ideabank-backend/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-IdeaBank-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady confirms the document store is readable before reporting ready.
func HealthReady(cfg *config.Config, recs *records.Records, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-IdeaBank-Env", cfg.App.Env)
		if recs == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeStorageUnavailable, "record store not initialized"))
			return
		}
		err := recs.Users.View(r.Context(), func(doc *records.UsersDocument) error { return nil })
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
