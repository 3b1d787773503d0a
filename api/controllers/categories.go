package controllers

import (
	"net/http"

	"github.com/ideabank/ideabank-backend/api/responses"
	"github.com/ideabank/ideabank-backend/internal/categories"
	"github.com/ideabank/ideabank-backend/pkg/logger"
)

// CategoriesList serves the category registry.
func CategoriesList(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string][]string{"categories": names})
	}
}
