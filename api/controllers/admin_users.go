package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ideabank/ideabank-backend/api/responses"
	"github.com/ideabank/ideabank-backend/api/validators"
	"github.com/ideabank/ideabank-backend/internal/accounts"
	"github.com/ideabank/ideabank-backend/pkg/enums"
	pkgerrors "github.com/ideabank/ideabank-backend/pkg/errors"
	"github.com/ideabank/ideabank-backend/pkg/logger"
)

// RegisterUserRequest is the admin account-creation body. TempPassword keeps
// the plaintext on the record for later handout.
type RegisterUserRequest struct {
	Username     string `json:"username" validate:"required"`
	Password     string `json:"password" validate:"required"`
	Role         string `json:"role" validate:"omitempty,oneof=user admin"`
	TempPassword bool   `json:"temp_password"`
}

// GenerateUsersRequest is the bulk generation body.
type GenerateUsersRequest struct {
	Count         int  `json:"count" validate:"required,min=1,max=100"`
	WithPasswords bool `json:"with_passwords"`
}

// AdminUsersList serves all accounts with credentials stripped.
func AdminUsersList(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"users": list})
	}
}

// AdminUserRegister creates one account.
func AdminUserRegister(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body RegisterUserRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role := enums.RoleUser
		if body.Role != "" {
			parsed, err := enums.ParseRole(body.Role)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown role"))
				return
			}
			role = parsed
		}

		register := svc.Register
		if body.TempPassword {
			register = svc.RegisterWithTempPassword
		}
		userID, err := register(r.Context(), body.Username, body.Password, role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"user_id": userID, "username": body.Username})
	}
}

// AdminUsersGenerate bulk-creates random accounts.
func AdminUsersGenerate(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body GenerateUsersRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		generate := svc.Generate
		if body.WithPasswords {
			generate = svc.GenerateWithPasswords
		}
		result, err := generate(r.Context(), body.Count)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// AdminTempPasswordUsers lists accounts still carrying a plaintext password.
func AdminTempPasswordUsers(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roster, err := svc.TempPasswordUsers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"users": roster, "count": len(roster)})
	}
}

// AdminHashTempPasswords drops every retained plaintext.
func AdminHashTempPasswords(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cleared, err := svc.HashTempPasswords(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int{"hashed_count": cleared})
	}
}

// AdminUserBlock deactivates an account.
func AdminUserBlock(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return userActionHandler(svc.Block, "blocked", logg)
}

// AdminUserUnblock reactivates an account.
func AdminUserUnblock(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return userActionHandler(svc.Unblock, "active", logg)
}

// AdminUserDelete removes an account and its ideas.
func AdminUserDelete(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return userActionHandler(svc.Delete, "deleted", logg)
}

func userActionHandler(apply func(ctx context.Context, userID int64) error, status string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := validators.ParseID(chi.URLParam(r, "userID"), "user id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := apply(r.Context(), userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"user_id": userID, "status": status})
	}
}
