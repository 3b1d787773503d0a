// Package auth implements login, the first-login introduction step, the
// administrator password rotation, and logout. Login runs as one users
// transaction so the temporary-password handoff commits atomically with the
// credential check.
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/ideabank/ideabank-backend/internal/records"
	pkgauth "github.com/ideabank/ideabank-backend/pkg/auth"
	"github.com/ideabank/ideabank-backend/pkg/auth/session"
	"github.com/ideabank/ideabank-backend/pkg/config"
	"github.com/ideabank/ideabank-backend/pkg/docstore"
	"github.com/ideabank/ideabank-backend/pkg/enums"
	pkgerrors "github.com/ideabank/ideabank-backend/pkg/errors"
	"github.com/ideabank/ideabank-backend/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	CompleteIntroduction(ctx context.Context, userID int64, fullName string) (*pkgauth.Identity, error)
	ChangePassword(ctx context.Context, identity pkgauth.Identity, req ChangePasswordRequest) error
	Logout(ctx context.Context, accessID string) error
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) error
	Revoke(ctx context.Context, accessID string) error
}

type service struct {
	users       *docstore.Store[records.UsersDocument]
	session     sessionManager
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	now         func() time.Time
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	Users          *docstore.Store[records.UsersDocument]
	SessionManager sessionManager
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Users == nil {
		return nil, fmt.Errorf("users store is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	return &service{
		users:       params.Users,
		session:     params.SessionManager,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
		now:         time.Now,
	}, nil
}

// Login authenticates the credentials and mints an access token. An account
// still holding a handed-out temporary password is matched against the
// plaintext; on success the plaintext is dropped in the same transaction, so
// the temporary credential works exactly once before becoming digest-only.
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	var snapshot records.User
	err := s.users.Update(ctx, func(doc *records.UsersDocument) error {
		user := doc.FindByUsername(username)
		if user == nil {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}

		if user.IsTempPassword && user.PlainPassword != "" {
			if subtle.ConstantTimeCompare([]byte(req.Password), []byte(user.PlainPassword)) != 1 {
				return pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
			}
			user.PlainPassword = ""
			user.IsTempPassword = false
		} else {
			valid, err := security.VerifyPassword(req.Password, user.Password)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
			}
			if !valid {
				return pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
			}
		}

		if !user.IsActive {
			return pkgerrors.New(pkgerrors.CodeAccountBlocked, "account is blocked")
		}

		snapshot = *user
		return nil
	})
	if err != nil {
		return nil, err
	}

	identity := identityFromUser(snapshot)
	accessID := session.NewAccessID()
	accessToken, err := pkgauth.MintAccessToken(s.jwtCfg, s.now().UTC(), pkgauth.AccessTokenPayload{
		Identity: identity,
		JTI:      accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	if err := s.session.Generate(ctx, accessID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "register session")
	}

	return &LoginResponse{
		AccessToken:         accessToken,
		User:                identity,
		NeedsIntroduction:   identity.NeedsIntroduction(),
		NeedsPasswordChange: identity.NeedsPasswordChange,
	}, nil
}

// CompleteIntroduction records the user's full name and returns the updated
// identity snapshot, so the client can mint no new token and still render it.
func (s *service) CompleteIntroduction(ctx context.Context, userID int64, fullName string) (*pkgauth.Identity, error) {
	name := strings.TrimSpace(fullName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full name cannot be empty")
	}

	var snapshot records.User
	err := s.users.Update(ctx, func(doc *records.UsersDocument) error {
		user := doc.FindByID(userID)
		if user == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		user.FullName = name
		user.HasCompletedIntroduction = true
		snapshot = *user
		return nil
	})
	if err != nil {
		return nil, err
	}

	identity := identityFromUser(snapshot)
	return &identity, nil
}

// ChangePassword rotates an administrator's password. Minimum length is
// enforced here and nowhere else; existing short passwords keep working
// until their owner rotates them.
func (s *service) ChangePassword(ctx context.Context, identity pkgauth.Identity, req ChangePasswordRequest) error {
	if !identity.IsAdmin() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "administrator privileges required")
	}
	if len(req.NewPassword) < s.passwordCfg.MinLength {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("new password must be at least %d characters", s.passwordCfg.MinLength))
	}

	digest, err := security.HashPassword(req.NewPassword, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	return s.users.Update(ctx, func(doc *records.UsersDocument) error {
		user := doc.FindByID(identity.UserID)
		if user == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		if !user.IsAdmin() {
			return pkgerrors.New(pkgerrors.CodeForbidden, "administrator privileges required")
		}
		valid, err := security.VerifyPassword(req.CurrentPassword, user.Password)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
		}
		if !valid {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "current password is incorrect")
		}
		user.Password = digest
		user.NeedsPasswordChange = false
		return nil
	})
}

// Logout revokes the session behind the token's jti. The token itself stays
// cryptographically valid until expiry but fails the session check.
func (s *service) Logout(ctx context.Context, accessID string) error {
	if err := s.session.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revoke session")
	}
	return nil
}

func identityFromUser(user records.User) pkgauth.Identity {
	return pkgauth.Identity{
		UserID:                   user.ID,
		Username:                 user.Username,
		Role:                     user.Role,
		FullName:                 user.FullName,
		HasCompletedIntroduction: user.HasCompletedIntroduction,
		NeedsPasswordChange:      user.Role == enums.RoleAdmin && user.NeedsPasswordChange,
	}
}
