package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ideabank/ideabank-backend/api/responses"
	"github.com/ideabank/ideabank-backend/api/validators"
	"github.com/ideabank/ideabank-backend/internal/ideas"
	"github.com/ideabank/ideabank-backend/pkg/logger"
)

// AdminIdeasList serves the full ledger, hidden ideas included.
func AdminIdeasList(svc ideas.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"ideas": all})
	}
}

// AdminIdeasSearch filters the ledger by title substring.
func AdminIdeasSearch(svc ideas.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.SearchByTitle(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AdminIdeaApprove marks an idea approved.
func AdminIdeaApprove(svc ideas.Service, logg *logger.Logger) http.HandlerFunc {
	return ideaFlagHandler(svc.Approve, "approved", logg)
}

// AdminIdeaHide removes an idea from public view.
func AdminIdeaHide(svc ideas.Service, logg *logger.Logger) http.HandlerFunc {
	return ideaFlagHandler(svc.Hide, "hidden", logg)
}

// AdminIdeaUnhide restores a hidden idea.
func AdminIdeaUnhide(svc ideas.Service, logg *logger.Logger) http.HandlerFunc {
	return ideaFlagHandler(svc.Unhide, "visible", logg)
}

func ideaFlagHandler(apply func(ctx context.Context, ideaID int64) error, status string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ideaID, err := validators.ParseID(chi.URLParam(r, "ideaID"), "idea id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := apply(r.Context(), ideaID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"idea_id": ideaID, "status": status})
	}
}

// AdminDeleteComment removes one comment from an idea.
func AdminDeleteComment(svc ideas.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ideaID, err := validators.ParseID(chi.URLParam(r, "ideaID"), "idea id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		commentID, err := validators.ParseID(chi.URLParam(r, "commentID"), "comment id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteComment(r.Context(), ideaID, commentID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int64{"deleted_comment_id": commentID})
	}
}
