// Package docstore provides the transactional record store backing the
// service. Each Store owns one JSON document on disk and serializes every
// load-mutate-save cycle on it behind a single mutex, so concurrent writers
// to the same document can never interleave. Different documents lock
// independently.
package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	pkgerrors "github.com/ideabank/ideabank-backend/pkg/errors"
	"github.com/ideabank/ideabank-backend/pkg/logger"
	"github.com/ideabank/ideabank-backend/pkg/metrics"
)

// Store manages one named JSON document with atomic whole-document writes.
// The in-memory cache is only touched while the mutex is held and is dropped
// whenever a mutation fails part-way, so the next transaction re-reads the
// last committed state from disk.
type Store[T any] struct {
	name string
	path string

	mu    sync.Mutex
	cache *T

	defaults func() (*T, error)
	logg     *logger.Logger
	txn      *metrics.TransactionMetrics
}

// Option customizes a Store.
type Option[T any] func(*Store[T])

// WithLogger attaches a structured logger to the store.
func WithLogger[T any](logg *logger.Logger) Option[T] {
	return func(s *Store[T]) { s.logg = logg }
}

// WithMetrics attaches transaction metrics to the store.
func WithMetrics[T any](txn *metrics.TransactionMetrics) Option[T] {
	return func(s *Store[T]) { s.txn = txn }
}

// Open binds a store to the document at path. A missing file is initialized
// from defaults and persisted immediately; an unreadable or corrupt file is
// surfaced as STORAGE_UNAVAILABLE, never substituted with empty state.
func Open[T any](name, path string, defaults func() (*T, error), opts ...Option[T]) (*Store[T], error) {
	if name == "" {
		return nil, fmt.Errorf("document name is required")
	}
	if defaults == nil {
		return nil, fmt.Errorf("defaults factory is required for %s", name)
	}

	s := &Store[T]{
		name:     name,
		path:     path,
		defaults: defaults,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "create data directory")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		doc, err := defaults()
		if err != nil {
			return nil, fmt.Errorf("build defaults for %s: %w", name, err)
		}
		if err := s.persist(doc); err != nil {
			return nil, err
		}
		s.cache = doc
		if s.logg != nil {
			ctx := s.logg.WithDocument(context.Background(), name)
			s.logg.Info(ctx, "document.initialized")
		}
		return s, nil
	}

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	s.cache = doc
	return s, nil
}

// Name returns the logical document name.
func (s *Store[T]) Name() string {
	return s.name
}

// Update runs one transaction: it locks the document, hands the current
// state to fn, and persists the result only when fn returns nil. On error
// nothing is written and the cached copy is discarded so the mutation
// cannot leak into later transactions. Results are captured by closure.
func (s *Store[T]) Update(ctx context.Context, fn func(doc *T) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()

	doc, err := s.current()
	if err != nil {
		s.txn.IncFailure(s.name)
		return err
	}

	if err := fn(doc); err != nil {
		s.cache = nil
		s.txn.IncFailure(s.name)
		return err
	}

	if err := s.persist(doc); err != nil {
		s.cache = nil
		s.txn.IncFailure(s.name)
		return err
	}
	s.cache = doc

	s.txn.IncSuccess(s.name)
	s.txn.ObserveDuration(s.name, time.Since(start))
	return nil
}

// View runs fn against the current state under the document lock without
// persisting anything. fn must not retain or mutate the document.
func (s *Store[T]) View(ctx context.Context, fn func(doc *T) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.current()
	if err != nil {
		return err
	}
	return fn(doc)
}

func (s *Store[T]) current() (*T, error) {
	if s.cache != nil {
		return s.cache, nil
	}
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	s.cache = doc
	return doc, nil
}

func (s *Store[T]) load() (*T, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, fmt.Sprintf("read document %s", s.name))
	}
	doc := new(T)
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, fmt.Sprintf("decode document %s", s.name))
	}
	return doc, nil
}

// persist writes the whole document to a temp file in the same directory and
// renames it over the target, so readers see either the old or the new file.
func (s *Store[T]) persist(doc *T) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, fmt.Sprintf("encode document %s", s.name))
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, s.name+".*.tmp")
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, fmt.Sprintf("stage document %s", s.name))
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, fmt.Sprintf("write document %s", s.name))
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, fmt.Sprintf("sync document %s", s.name))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, fmt.Sprintf("close document %s", s.name))
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, fmt.Sprintf("replace document %s", s.name))
	}
	return nil
}
