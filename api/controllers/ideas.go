package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ideabank/ideabank-backend/api/middleware"
	"github.com/ideabank/ideabank-backend/api/responses"
	"github.com/ideabank/ideabank-backend/api/validators"
	"github.com/ideabank/ideabank-backend/internal/ideas"
	"github.com/ideabank/ideabank-backend/pkg/enums"
	pkgerrors "github.com/ideabank/ideabank-backend/pkg/errors"
	"github.com/ideabank/ideabank-backend/pkg/logger"
)

// VoteRequest is the public vote body. The voter is the request identity.
type VoteRequest struct {
	Vote string `json:"vote" validate:"required,oneof=for against"`
}

// CommentRequest is the public comment body.
type CommentRequest struct {
	Text string `json:"text"`
}

// IdeasList serves the public views with pagination.
func IdeasList(svc ideas.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := enums.ParseIdeaView(r.URL.Query().Get("view"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown view"))
			return
		}
		page, err := validators.ParseQueryInt(r, "page", 1, 1, 1_000_000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), ideas.ListRequest{View: view, Page: page})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// IdeaGet serves one idea; hidden ideas are absent on this path.
func IdeaGet(svc ideas.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ideaID, err := validators.ParseID(chi.URLParam(r, "ideaID"), "idea id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		idea, err := svc.Get(r.Context(), ideaID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, idea)
	}
}

// IdeaCreate submits a new idea on behalf of the caller.
func IdeaCreate(svc ideas.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.IdentityFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		var body ideas.CreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		body.AuthorID = identity.UserID

		ideaID, err := svc.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]int64{"idea_id": ideaID})
	}
}

// IdeaVote casts the caller's single vote on an idea.
func IdeaVote(svc ideas.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.IdentityFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}
		ideaID, err := validators.ParseID(chi.URLParam(r, "ideaID"), "idea id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body VoteRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		direction, err := enums.ParseVoteDirection(body.Vote)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "bad vote direction"))
			return
		}

		result, err := svc.Vote(r.Context(), ideaID, identity.UserID, direction)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// IdeaComment appends a comment as the caller.
func IdeaComment(svc ideas.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.IdentityFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}
		ideaID, err := validators.ParseID(chi.URLParam(r, "ideaID"), "idea id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body CommentRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		commentID, err := svc.AddComment(r.Context(), ideaID, identity.UserID, body.Text)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]int64{"comment_id": commentID})
	}
}
