package store_test

import (
	"context"
	"testing"

	"github.com/ByteStackx/collaborative-code-review-platform/internal/errs"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/models"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/store"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/testutil"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	s, _ := testutil.NewStore(t)
	ctx := context.Background()

	first := &models.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "x", Role: types.RoleSubmitter}
	require.NoError(t, s.CreateUser(ctx, first))
	assert.NotEmpty(t, first.ID)

	second := &models.User{Name: "Ada 2", Email: "ada@example.com", PasswordHash: "y", Role: types.RoleReviewer}
	err := s.CreateUser(ctx, second)
	assert.ErrorIs(t, err, errs.ErrConflict)
}

func TestGetUserNotFound(t *testing.T) {
	s, _ := testutil.NewStore(t)

	_, err := s.GetUser(context.Background(), "missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.EqualError(t, err, "User not found")
}

func TestUpdateUserAppliesOnlyGivenFields(t *testing.T) {
	s, _ := testutil.NewStore(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, s, "grace", types.RoleSubmitter)

	name := "Grace Hopper"
	role := types.RoleReviewer
	updated, err := s.UpdateUser(ctx, user.ID, store.UserUpdate{Name: &name, Role: &role})
	require.NoError(t, err)

	assert.Equal(t, "Grace Hopper", updated.Name)
	assert.Equal(t, types.RoleReviewer, updated.Role)
	assert.Equal(t, user.Email, updated.Email)
	assert.Equal(t, user.PasswordHash, updated.PasswordHash)
}

func TestDeleteUserDetachesDependents(t *testing.T) {
	s, database := testutil.NewStore(t)
	ctx := context.Background()

	creator := testutil.CreateUser(t, s, "creator", types.RoleReviewer)
	project := testutil.CreateProject(t, s, creator)
	_, err := s.AddMember(ctx, project.ID, creator.ID)
	require.NoError(t, err)
	submission := testutil.CreateSubmission(t, s, project, creator)
	comment := testutil.CreateComment(t, s, submission, creator)

	require.NoError(t, s.DeleteUser(ctx, creator.ID))

	reloadedProject, err := s.GetProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Nil(t, reloadedProject.CreatedBy)

	reloadedSubmission, err := s.GetSubmission(ctx, submission.ID)
	require.NoError(t, err)
	assert.Nil(t, reloadedSubmission.SubmittedBy)

	reloadedComment, err := s.GetComment(ctx, comment.ID)
	require.NoError(t, err)
	assert.Nil(t, reloadedComment.UserID)

	var memberRows int64
	require.NoError(t, database.Model(&models.ProjectMember{}).Count(&memberRows).Error)
	assert.Zero(t, memberRows)

	assert.ErrorIs(t, s.DeleteUser(ctx, creator.ID), errs.ErrNotFound)
}

func TestAddMemberIsIdempotent(t *testing.T) {
	s, database := testutil.NewStore(t)
	ctx := context.Background()

	reviewer := testutil.CreateUser(t, s, "rev", types.RoleReviewer)
	submitter := testutil.CreateUser(t, s, "sub", types.RoleSubmitter)
	project := testutil.CreateProject(t, s, reviewer)

	first, err := s.AddMember(ctx, project.ID, submitter.ID)
	require.NoError(t, err)
	second, err := s.AddMember(ctx, project.ID, submitter.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ProjectID, second.ProjectID)
	assert.Equal(t, first.UserID, second.UserID)

	var count int64
	require.NoError(t, database.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", project.ID, submitter.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	members, err := s.ListMembers(ctx, project.ID)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestRemoveMember(t *testing.T) {
	s, _ := testutil.NewStore(t)
	ctx := context.Background()

	reviewer := testutil.CreateUser(t, s, "rev", types.RoleReviewer)
	submitter := testutil.CreateUser(t, s, "sub", types.RoleSubmitter)
	project := testutil.CreateProject(t, s, reviewer)

	_, err := s.AddMember(ctx, project.ID, submitter.ID)
	require.NoError(t, err)

	ok, err := s.HasMember(ctx, project.ID, submitter.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.RemoveMember(ctx, project.ID, submitter.ID))

	ok, err = s.HasMember(ctx, project.ID, submitter.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	// removing an absent pair is not an error
	assert.NoError(t, s.RemoveMember(ctx, project.ID, submitter.ID))
}

func TestSubmissionDefaultsAndStatusUpdates(t *testing.T) {
	s, _ := testutil.NewStore(t)
	ctx := context.Background()

	author := testutil.CreateUser(t, s, "author", types.RoleSubmitter)
	project := testutil.CreateProject(t, s, author)
	submission := testutil.CreateSubmission(t, s, project, author)
	assert.Equal(t, types.StatusPending, submission.Status)

	for _, status := range []types.SubmissionStatus{types.StatusApproved, types.StatusPending, types.StatusChangesRequested, types.StatusChangesRequested} {
		updated, err := s.UpdateSubmissionStatus(ctx, submission.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}

	_, err := s.UpdateSubmissionStatus(ctx, "missing", types.StatusApproved)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDeleteSubmissionRemovesComments(t *testing.T) {
	s, _ := testutil.NewStore(t)
	ctx := context.Background()

	author := testutil.CreateUser(t, s, "author", types.RoleReviewer)
	project := testutil.CreateProject(t, s, author)
	submission := testutil.CreateSubmission(t, s, project, author)
	comment := testutil.CreateComment(t, s, submission, author)

	require.NoError(t, s.DeleteSubmission(ctx, submission.ID))

	_, err := s.GetSubmission(ctx, submission.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	_, err = s.GetComment(ctx, comment.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	assert.ErrorIs(t, s.DeleteSubmission(ctx, submission.ID), errs.ErrNotFound)
}

func TestCommentsListOldestFirst(t *testing.T) {
	s, _ := testutil.NewStore(t)
	ctx := context.Background()

	author := testutil.CreateUser(t, s, "author", types.RoleReviewer)
	project := testutil.CreateProject(t, s, author)
	submission := testutil.CreateSubmission(t, s, project, author)

	var ids []string
	for _, content := range []string{"first", "second", "third"} {
		comment := &models.Comment{SubmissionID: submission.ID, UserID: &author.ID, Content: content}
		require.NoError(t, s.CreateComment(ctx, comment))
		ids = append(ids, comment.ID)
	}

	comments, err := s.ListCommentsBySubmission(ctx, submission.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	for i, comment := range comments {
		assert.Equal(t, ids[i], comment.ID)
	}

	updated, err := s.UpdateComment(ctx, ids[1], "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	require.NoError(t, s.DeleteComment(ctx, ids[0]))
	assert.ErrorIs(t, s.DeleteComment(ctx, ids[0]), errs.ErrNotFound)
	_, err = s.UpdateComment(ctx, ids[0], "gone")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestInsertsReferencingDeletedRowsAreNotFound(t *testing.T) {
	s, _ := testutil.NewStore(t)
	ctx := context.Background()

	reviewer := testutil.CreateUser(t, s, "reviewer", types.RoleReviewer)
	project := testutil.CreateProject(t, s, reviewer)
	submission := testutil.CreateSubmission(t, s, project, reviewer)
	require.NoError(t, s.DeleteSubmission(ctx, submission.ID))

	ghost := "deleted-user"
	err := s.CreateProject(ctx, &models.Project{Name: "Orphan", CreatedBy: &ghost})
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.EqualError(t, err, "User not found")

	err = s.CreateSubmission(ctx, &models.Submission{ProjectID: "deleted-project", Title: "T", Content: "C"})
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.EqualError(t, err, "Project not found")

	err = s.CreateComment(ctx, &models.Comment{SubmissionID: submission.ID, Content: "late"})
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.EqualError(t, err, "Submission not found")

	_, err = s.AddMember(ctx, project.ID, ghost)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
