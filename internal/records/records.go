// Package records owns the persistent documents the service runs on: the
// account roster, the idea ledger, and the application config. It defines
// their on-disk shapes and opens the backing stores with seeded defaults.
package records

import (
	"path/filepath"
	"time"

	"github.com/ideabank/ideabank-backend/pkg/config"
	"github.com/ideabank/ideabank-backend/pkg/docstore"
	"github.com/ideabank/ideabank-backend/pkg/enums"
	"github.com/ideabank/ideabank-backend/pkg/logger"
	"github.com/ideabank/ideabank-backend/pkg/metrics"
	"github.com/ideabank/ideabank-backend/pkg/security"
)

// DefaultCategories seeds the category registry on first start.
var DefaultCategories = []string{"IT", "Paperwork", "Production", "HR"}

// Records bundles the three document stores. Each store locks
// independently; transactions spanning two documents order users before
// ideas and config before ideas.
type Records struct {
	Users  *docstore.Store[UsersDocument]
	Ideas  *docstore.Store[IdeasDocument]
	Config *docstore.Store[ConfigDocument]
}

// Open binds the three stores under cfg.Store.DataDir, creating and seeding
// any document that does not exist yet. The seed admin account starts with
// the configured bootstrap password and a forced password change.
func Open(cfg *config.Config, logg *logger.Logger, txn *metrics.TransactionMetrics) (*Records, error) {
	dir := cfg.Store.DataDir

	users, err := docstore.Open(
		UsersDocumentName,
		filepath.Join(dir, "users.json"),
		func() (*UsersDocument, error) { return seedUsers(cfg) },
		docstore.WithLogger[UsersDocument](logg),
		docstore.WithMetrics[UsersDocument](txn),
	)
	if err != nil {
		return nil, err
	}

	ideas, err := docstore.Open(
		IdeasDocumentName,
		filepath.Join(dir, "ideas.json"),
		func() (*IdeasDocument, error) {
			return &IdeasDocument{Ideas: []Idea{}}, nil
		},
		docstore.WithLogger[IdeasDocument](logg),
		docstore.WithMetrics[IdeasDocument](txn),
	)
	if err != nil {
		return nil, err
	}

	appConfig, err := docstore.Open(
		ConfigDocumentName,
		filepath.Join(dir, "app_config.json"),
		func() (*ConfigDocument, error) {
			return &ConfigDocument{
				Categories: append([]string(nil), DefaultCategories...),
				Settings: Settings{
					DefaultCommentsEnabled: true,
					ItemsPerPage:           20,
				},
			}, nil
		},
		docstore.WithLogger[ConfigDocument](logg),
		docstore.WithMetrics[ConfigDocument](txn),
	)
	if err != nil {
		return nil, err
	}

	return &Records{Users: users, Ideas: ideas, Config: appConfig}, nil
}

func seedUsers(cfg *config.Config) (*UsersDocument, error) {
	digest, err := security.HashPassword(cfg.Seed.AdminPassword, cfg.Password)
	if err != nil {
		return nil, err
	}
	return &UsersDocument{
		Users: []User{{
			ID:                       1,
			Username:                 cfg.Seed.AdminUsername,
			Password:                 digest,
			Role:                     enums.RoleAdmin,
			IsActive:                 true,
			FullName:                 "Administrator",
			HasCompletedIntroduction: true,
			NeedsPasswordChange:      true,
			CreatedAt:                time.Now().UTC(),
		}},
		LastUserID: 1,
	}, nil
}
