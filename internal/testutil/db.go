// Package testutil builds throwaway databases and fixtures for tests.
package testutil

import (
	"context"
	"testing"

	"github.com/ByteStackx/collaborative-code-review-platform/db"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/auth"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/models"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/store"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB returns a migrated, private in-memory sqlite database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	database, err := db.Connect("sqlite", "file::memory:")
	require.NoError(t, err)
	require.NoError(t, db.MigrateDatabase(database))

	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return database
}

func NewStore(t testing.TB) (*store.Store, *gorm.DB) {
	t.Helper()
	database := NewDB(t)
	return store.New(database), database
}

// CreateUser inserts a user with password "password123".
func CreateUser(t testing.TB, s *store.Store, name string, role types.Role) *models.User {
	t.Helper()

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	user := &models.User{
		Name:         name,
		Email:        name + "-" + uuid.NewString()[:8] + "@example.com",
		PasswordHash: hash,
		Role:         role,
	}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

func CreateProject(t testing.TB, s *store.Store, creator *models.User) *models.Project {
	t.Helper()

	project := &models.Project{Name: "Project " + uuid.NewString()[:8]}
	if creator != nil {
		project.CreatedBy = &creator.ID
	}
	require.NoError(t, s.CreateProject(context.Background(), project))
	return project
}

func CreateSubmission(t testing.TB, s *store.Store, project *models.Project, author *models.User) *models.Submission {
	t.Helper()

	submission := &models.Submission{
		ProjectID: project.ID,
		Title:     "Refactor parser",
		Content:   "diff --git a/parser.go b/parser.go",
	}
	if author != nil {
		submission.SubmittedBy = &author.ID
	}
	require.NoError(t, s.CreateSubmission(context.Background(), submission))
	return submission
}

func CreateComment(t testing.TB, s *store.Store, submission *models.Submission, author *models.User) *models.Comment {
	t.Helper()

	comment := &models.Comment{SubmissionID: submission.ID, Content: "Looks good"}
	if author != nil {
		comment.UserID = &author.ID
	}
	require.NoError(t, s.CreateComment(context.Background(), comment))
	return comment
}
