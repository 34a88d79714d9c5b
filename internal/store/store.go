// Package store is the persistence layer for users, projects, memberships,
// submissions and comments. It performs no authorization; callers decide who
// may reach each method.
package store

import (
	"context"
	"errors"
	"strings"

	"github.com/ByteStackx/collaborative-code-review-platform/internal/errs"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// lookupError turns a failed single-row lookup into NotFound, or into
// InternalError for anything else.
func lookupError(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NotFound(strings.ToUpper(entity[:1]) + entity[1:] + " not found")
	}
	return errs.Internal("Failed to load "+entity, err)
}

// insertError maps a failed insert. A foreign key violation means a row the
// new one points at has been deleted, which callers see as NotFound.
func insertError(err error, missing, action string) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return errs.NotFound(missing)
	}
	return errs.Internal(action, err)
}
