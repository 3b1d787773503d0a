// Package categories manages the category registry stored in the app
// config document. Renames cascade into the idea ledger; deletes are
// refused while any idea still references the category.
package categories

import (
	"context"
	"fmt"
	"strings"

	"github.com/ideabank/ideabank-backend/internal/records"
	"github.com/ideabank/ideabank-backend/pkg/docstore"
	pkgerrors "github.com/ideabank/ideabank-backend/pkg/errors"
)

// Service defines the behavior needed by the category controllers.
type Service interface {
	List(ctx context.Context) ([]string, error)
	Add(ctx context.Context, name string) error
	Rename(ctx context.Context, oldName, newName string) error
	Delete(ctx context.Context, name string) error
}

type service struct {
	config *docstore.Store[records.ConfigDocument]
	ideas  *docstore.Store[records.IdeasDocument]
}

// ServiceParams bundles the dependencies required to build a category service.
type ServiceParams struct {
	Config *docstore.Store[records.ConfigDocument]
	Ideas  *docstore.Store[records.IdeasDocument]
}

// NewService constructs a category service over the config and idea documents.
func NewService(params ServiceParams) (Service, error) {
	if params.Config == nil {
		return nil, fmt.Errorf("config store is required")
	}
	if params.Ideas == nil {
		return nil, fmt.Errorf("ideas store is required")
	}
	return &service{config: params.Config, ideas: params.Ideas}, nil
}

func (s *service) List(ctx context.Context) ([]string, error) {
	var names []string
	err := s.config.View(ctx, func(doc *records.ConfigDocument) error {
		names = append([]string(nil), doc.Categories...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (s *service) Add(ctx context.Context, name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category name cannot be empty")
	}
	return s.config.Update(ctx, func(doc *records.ConfigDocument) error {
		if doc.HasCategory(trimmed) {
			return pkgerrors.New(pkgerrors.CodeDuplicate, "category already exists")
		}
		doc.Categories = append(doc.Categories, trimmed)
		return nil
	})
}

// Rename replaces the category in the registry and then rewrites every idea
// still carrying the old name. The two documents commit as separate
// transactions, config first; a crash between them leaves ideas pointing at
// the retired name until the rename is retried.
func (s *service) Rename(ctx context.Context, oldName, newName string) error {
	trimmed := strings.TrimSpace(newName)
	if trimmed == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "new category name cannot be empty")
	}

	err := s.config.Update(ctx, func(doc *records.ConfigDocument) error {
		if !doc.HasCategory(oldName) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		if trimmed != oldName && doc.HasCategory(trimmed) {
			return pkgerrors.New(pkgerrors.CodeDuplicate, "category already exists")
		}
		for i, c := range doc.Categories {
			if c == oldName {
				doc.Categories[i] = trimmed
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return s.ideas.Update(ctx, func(doc *records.IdeasDocument) error {
		for i := range doc.Ideas {
			if doc.Ideas[i].Category == oldName {
				doc.Ideas[i].Category = trimmed
			}
		}
		return nil
	})
}

// Delete removes the category from the registry. Ideas store category names
// as free strings, so a name that is referenced but never registered is
// still absent here and reads as not found.
func (s *service) Delete(ctx context.Context, name string) error {
	registered := false
	err := s.config.View(ctx, func(doc *records.ConfigDocument) error {
		registered = doc.HasCategory(name)
		return nil
	})
	if err != nil {
		return err
	}
	if !registered {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}

	inUse, err := s.referencingIdeas(ctx, name)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "category is referenced by existing ideas").
			WithDetails(map[string]any{"referencing_ideas": inUse})
	}

	return s.config.Update(ctx, func(doc *records.ConfigDocument) error {
		for i, c := range doc.Categories {
			if c == name {
				doc.Categories = append(doc.Categories[:i], doc.Categories[i+1:]...)
				return nil
			}
		}
		return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	})
}

func (s *service) referencingIdeas(ctx context.Context, name string) (int, error) {
	count := 0
	err := s.ideas.View(ctx, func(doc *records.IdeasDocument) error {
		count = doc.CountByCategory(name)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
