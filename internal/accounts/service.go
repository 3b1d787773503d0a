// Package accounts implements administrative user management: registration,
// bulk generation with temporary passwords, the temp-password roster,
// blocking, and deletion with its idea cascade.
package accounts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ideabank/ideabank-backend/internal/records"
	"github.com/ideabank/ideabank-backend/pkg/config"
	"github.com/ideabank/ideabank-backend/pkg/docstore"
	"github.com/ideabank/ideabank-backend/pkg/enums"
	pkgerrors "github.com/ideabank/ideabank-backend/pkg/errors"
	"github.com/ideabank/ideabank-backend/pkg/security"
)

const maxGenerateCount = 100

// Service defines the behavior needed by the admin user controllers.
type Service interface {
	Register(ctx context.Context, username, password string, role enums.Role) (int64, error)
	RegisterWithTempPassword(ctx context.Context, username, password string, role enums.Role) (int64, error)
	Generate(ctx context.Context, count int) (*GenerateResult, error)
	GenerateWithPasswords(ctx context.Context, count int) (*GenerateResult, error)
	TempPasswordUsers(ctx context.Context) ([]TempPasswordAccount, error)
	HashTempPasswords(ctx context.Context) (int, error)
	Block(ctx context.Context, userID int64) error
	Unblock(ctx context.Context, userID int64) error
	Delete(ctx context.Context, userID int64) error
	List(ctx context.Context) ([]Account, error)
}

// ideaCascader is the slice of the idea service needed for the delete cascade.
type ideaCascader interface {
	DeleteByAuthor(ctx context.Context, userID int64) (int, error)
}

type service struct {
	users            *docstore.Store[records.UsersDocument]
	ideas            ideaCascader
	passwordCfg      config.PasswordConfig
	generateUsername func(length int) (string, error)
	now              func() time.Time
}

// ServiceParams bundles the dependencies required to build an account service.
type ServiceParams struct {
	Users          *docstore.Store[records.UsersDocument]
	Ideas          ideaCascader
	PasswordConfig config.PasswordConfig

	// GenerateUsername overrides the random login source for bulk
	// generation. Defaults to security.GenerateUsername.
	GenerateUsername func(length int) (string, error)
}

// NewService constructs an account service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Users == nil {
		return nil, fmt.Errorf("users store is required")
	}
	if params.Ideas == nil {
		return nil, fmt.Errorf("idea cascader is required")
	}
	generateUsername := params.GenerateUsername
	if generateUsername == nil {
		generateUsername = security.GenerateUsername
	}
	return &service{
		users:            params.Users,
		ideas:            params.Ideas,
		passwordCfg:      params.PasswordConfig,
		generateUsername: generateUsername,
		now:              time.Now,
	}, nil
}

func (s *service) Register(ctx context.Context, username, password string, role enums.Role) (int64, error) {
	return s.register(ctx, username, password, role, false)
}

// RegisterWithTempPassword stores the argon digest and keeps the plaintext
// alongside it so an operator can hand the credentials out. The plaintext is
// dropped on the user's first login or by HashTempPasswords.
func (s *service) RegisterWithTempPassword(ctx context.Context, username, password string, role enums.Role) (int64, error) {
	return s.register(ctx, username, password, role, true)
}

func (s *service) register(ctx context.Context, username, password string, role enums.Role, keepPlaintext bool) (int64, error) {
	name := strings.TrimSpace(username)
	if name == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if !role.IsValid() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "unknown role")
	}

	digest, err := security.HashPassword(password, s.passwordCfg)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var userID int64
	err = s.users.Update(ctx, func(doc *records.UsersDocument) error {
		if doc.FindByUsername(name) != nil {
			return pkgerrors.New(pkgerrors.CodeDuplicate, "username already exists")
		}
		doc.LastUserID++
		userID = doc.LastUserID
		user := records.User{
			ID:        userID,
			Username:  name,
			Password:  digest,
			Role:      role,
			IsActive:  true,
			CreatedAt: s.now().UTC(),
			// new admins must replace the password handed to them
			NeedsPasswordChange: role == enums.RoleAdmin,
		}
		if keepPlaintext {
			user.PlainPassword = password
			user.IsTempPassword = true
		}
		doc.Users = append(doc.Users, user)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return userID, nil
}

func (s *service) Generate(ctx context.Context, count int) (*GenerateResult, error) {
	return s.generate(ctx, count, false)
}

// GenerateWithPasswords works like Generate but registers each account with
// a temporary password and echoes the plaintext back for distribution.
func (s *service) GenerateWithPasswords(ctx context.Context, count int) (*GenerateResult, error) {
	return s.generate(ctx, count, true)
}

func (s *service) generate(ctx context.Context, count int, withPasswords bool) (*GenerateResult, error) {
	if count <= 0 || count > maxGenerateCount {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("count must be between 1 and %d", maxGenerateCount))
	}

	result := &GenerateResult{Accounts: []GeneratedAccount{}}
	for i := 0; i < count; i++ {
		username, err := s.generateUsername(security.GeneratedUsernameLen)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate username")
		}
		password, err := security.GenerateTempPassword(security.GeneratedPasswordLen)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate password")
		}

		userID, err := s.registerGenerated(ctx, username, password, withPasswords)
		if pkgerrors.IsCode(err, pkgerrors.CodeDuplicate) {
			// one retry with a longer username on collision, then give up
			username, err = s.generateUsername(security.GeneratedUsernameRetryLen)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate username")
			}
			userID, err = s.registerGenerated(ctx, username, password, withPasswords)
		}
		if err != nil {
			if pkgerrors.IsCode(err, pkgerrors.CodeDuplicate) {
				result.TotalFailed++
				continue
			}
			return nil, err
		}

		account := GeneratedAccount{ID: userID, Username: username}
		if withPasswords {
			account.Password = password
		}
		result.Accounts = append(result.Accounts, account)
		result.TotalCreated++
	}
	return result, nil
}

func (s *service) registerGenerated(ctx context.Context, username, password string, withPasswords bool) (int64, error) {
	if withPasswords {
		return s.RegisterWithTempPassword(ctx, username, password, enums.RoleUser)
	}
	return s.Register(ctx, username, password, enums.RoleUser)
}

// TempPasswordUsers lists every account still carrying a plaintext password.
func (s *service) TempPasswordUsers(ctx context.Context) ([]TempPasswordAccount, error) {
	var out []TempPasswordAccount
	err := s.users.View(ctx, func(doc *records.UsersDocument) error {
		for i := range doc.Users {
			u := &doc.Users[i]
			if u.IsTempPassword && u.PlainPassword != "" {
				out = append(out, TempPasswordAccount{
					ID:        u.ID,
					Username:  u.Username,
					Password:  u.PlainPassword,
					Role:      u.Role,
					CreatedAt: u.CreatedAt,
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// HashTempPasswords drops every retained plaintext in one transaction and
// reports how many accounts were affected. The argon digests stay in place.
func (s *service) HashTempPasswords(ctx context.Context) (int, error) {
	cleared := 0
	err := s.users.Update(ctx, func(doc *records.UsersDocument) error {
		for i := range doc.Users {
			u := &doc.Users[i]
			if u.IsTempPassword && u.PlainPassword != "" {
				u.PlainPassword = ""
				u.IsTempPassword = false
				cleared++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return cleared, nil
}

func (s *service) Block(ctx context.Context, userID int64) error {
	return s.users.Update(ctx, func(doc *records.UsersDocument) error {
		user := doc.FindByID(userID)
		if user == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		if user.IsAdmin() {
			return pkgerrors.New(pkgerrors.CodeForbidden, "administrators cannot be blocked")
		}
		user.IsActive = false
		return nil
	})
}

func (s *service) Unblock(ctx context.Context, userID int64) error {
	return s.users.Update(ctx, func(doc *records.UsersDocument) error {
		user := doc.FindByID(userID)
		if user == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		user.IsActive = true
		return nil
	})
}

// Delete removes the account and then cascades to the user's ideas. The two
// documents commit as separate transactions, users first.
func (s *service) Delete(ctx context.Context, userID int64) error {
	err := s.users.Update(ctx, func(doc *records.UsersDocument) error {
		for i := range doc.Users {
			if doc.Users[i].ID != userID {
				continue
			}
			if doc.Users[i].IsAdmin() {
				return pkgerrors.New(pkgerrors.CodeForbidden, "administrators cannot be deleted")
			}
			doc.Users = append(doc.Users[:i], doc.Users[i+1:]...)
			return nil
		}
		return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	})
	if err != nil {
		return err
	}

	_, err = s.ideas.DeleteByAuthor(ctx, userID)
	return err
}

func (s *service) List(ctx context.Context) ([]Account, error) {
	var out []Account
	err := s.users.View(ctx, func(doc *records.UsersDocument) error {
		out = make([]Account, 0, len(doc.Users))
		for _, u := range doc.Users {
			out = append(out, accountFromUser(u))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
