package policy

import (
	"context"
	"errors"
	"strings"

	"github.com/ByteStackx/collaborative-code-review-platform/internal/errs"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE undefined_table.
const pgUndefinedTable = "42P01"

// MembershipStore is the slice of the entity store the membership check
// reads from.
type MembershipStore interface {
	HasMember(ctx context.Context, projectID, userID string) (bool, error)
	GetProject(ctx context.Context, id string) (*models.Project, error)
}

// IsMember reports whether userID may act as a member of projectID: either a
// member-of-record row exists, or the user created the project. An absent
// project yields false rather than an error.
func IsMember(ctx context.Context, store MembershipStore, userID, projectID string) (bool, error) {
	found, err := hasMemberRow(ctx, store, projectID, userID)
	if err != nil || found {
		return found, err
	}

	project, err := store.GetProject(ctx, projectID)
	if err != nil {
		if errs.CodeOf(err) == errs.CodeNotFound {
			return false, nil
		}
		return false, err
	}

	return project.CreatedByUser(userID), nil
}

// isMemberOf is IsMember for a project that has already been loaded.
func isMemberOf(ctx context.Context, store MembershipStore, userID string, project *models.Project) (bool, error) {
	found, err := hasMemberRow(ctx, store, project.ID, userID)
	if err != nil || found {
		return found, err
	}
	return project.CreatedByUser(userID), nil
}

func hasMemberRow(ctx context.Context, store MembershipStore, projectID, userID string) (bool, error) {
	found, err := store.HasMember(ctx, projectID, userID)
	if err == nil {
		return found, nil
	}
	if isMissingRelation(err) {
		return false, nil
	}
	return false, errs.Internal("Failed to check project membership", err)
}

// isMissingRelation recognises a lookup that failed because the membership
// table has not been provisioned yet.
func isMissingRelation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUndefinedTable
	}
	return strings.Contains(err.Error(), "no such table")
}
