package controllers

import (
	"net/http"

	"github.com/ideabank/ideabank-backend/api/responses"
	"github.com/ideabank/ideabank-backend/api/validators"
	"github.com/ideabank/ideabank-backend/internal/categories"
	"github.com/ideabank/ideabank-backend/pkg/logger"
)

const maxCategoryNameLen = 100

// CategoryRequest names a category to create or delete.
type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// RenameCategoryRequest carries a registry rename.
type RenameCategoryRequest struct {
	OldName string `json:"old_name" validate:"required"`
	NewName string `json:"new_name" validate:"required"`
}

// AdminCategoryAdd appends a category to the registry.
func AdminCategoryAdd(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body CategoryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		name := validators.SanitizeString(body.Name, maxCategoryNameLen)
		if err := svc.Add(r.Context(), name); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"category": name})
	}
}

// AdminCategoryRename renames a category and cascades into existing ideas.
func AdminCategoryRename(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body RenameCategoryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		newName := validators.SanitizeString(body.NewName, maxCategoryNameLen)
		if err := svc.Rename(r.Context(), body.OldName, newName); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"old_name": body.OldName, "new_name": newName})
	}
}

// AdminCategoryDelete removes an unreferenced category.
func AdminCategoryDelete(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body CategoryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), body.Name); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"deleted": body.Name})
	}
}
