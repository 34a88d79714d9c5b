package policy

import (
	"context"

	"github.com/ByteStackx/collaborative-code-review-platform/internal/auth"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/errs"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/models"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/types"
)

// Store is everything the rules need to fetch the resource being acted on.
type Store interface {
	MembershipStore
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetSubmission(ctx context.Context, id string) (*models.Submission, error)
	GetComment(ctx context.Context, id string) (*models.Comment, error)
}

// Denials. All of them carry CodeForbidden; the messages tell them apart.
var (
	ErrRoleForbidden           = errs.Forbidden("Forbidden")
	ErrNotMember               = errs.Forbidden("Not a member of this project")
	ErrSubmittersCannotComment = errs.Forbidden("Submitters cannot comment")
	ErrWebhooksReviewerOnly    = errs.Forbidden("Only reviewers can configure webhooks")
)

type Rules struct {
	store Store
}

func NewRules(store Store) *Rules {
	return &Rules{store: store}
}

// IsMember applies the membership check against the rules' store.
func (r *Rules) IsMember(ctx context.Context, userID, projectID string) (bool, error) {
	return IsMember(ctx, r.store, userID, projectID)
}

func requireReviewer(identity auth.Identity) error {
	if !identity.IsReviewer() {
		return ErrRoleForbidden
	}
	return nil
}

// CanAccessProfile allows reviewers to reach any profile and everyone else
// only their own. It covers view, update and delete.
func (r *Rules) CanAccessProfile(identity auth.Identity, targetID string) error {
	if identity.IsReviewer() || identity.UserID == targetID {
		return nil
	}
	return ErrRoleForbidden
}

// CanChangeRole guards the role field of a profile update.
func (r *Rules) CanChangeRole(identity auth.Identity) error {
	return requireReviewer(identity)
}

func (r *Rules) CanCreateProject(identity auth.Identity) error {
	if !identity.Role.Valid() {
		return ErrRoleForbidden
	}
	return nil
}

// CanConfigureWebhooks guards the webhook URLs the server will post to.
func (r *Rules) CanConfigureWebhooks(identity auth.Identity) error {
	if !identity.IsReviewer() {
		return ErrWebhooksReviewerOnly
	}
	return nil
}

// ProjectForMembership resolves the project whose member list a reviewer
// wants to change.
func (r *Rules) ProjectForMembership(ctx context.Context, identity auth.Identity, projectID string) (*models.Project, error) {
	if err := requireReviewer(identity); err != nil {
		return nil, err
	}
	return r.store.GetProject(ctx, projectID)
}

// MemberToAdd resolves both sides of an add-member call: the project first,
// then the user being added.
func (r *Rules) MemberToAdd(ctx context.Context, identity auth.Identity, projectID, userID string) (*models.Project, *models.User, error) {
	project, err := r.ProjectForMembership(ctx, identity, projectID)
	if err != nil {
		return nil, nil, err
	}

	user, err := r.store.GetUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	return project, user, nil
}

// ProjectForMember resolves a project the caller belongs to.
func (r *Rules) ProjectForMember(ctx context.Context, identity auth.Identity, projectID string) (*models.Project, error) {
	project, err := r.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if err := r.requireMember(ctx, identity, project); err != nil {
		return nil, err
	}

	return project, nil
}

// SubmissionForMember resolves a submission in a project the caller belongs
// to.
func (r *Rules) SubmissionForMember(ctx context.Context, identity auth.Identity, submissionID string) (*models.Submission, error) {
	submission, err := r.store.GetSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	if err := r.requireMemberOf(ctx, identity, submission.ProjectID); err != nil {
		return nil, err
	}

	return submission, nil
}

// SubmissionForReviewer resolves a submission a reviewer wants to delete.
// Project membership is not required.
func (r *Rules) SubmissionForReviewer(ctx context.Context, identity auth.Identity, submissionID string) (*models.Submission, error) {
	if err := requireReviewer(identity); err != nil {
		return nil, err
	}
	return r.store.GetSubmission(ctx, submissionID)
}

// StatusChange checks role, then the requested status, then that the
// submission exists. The status is validated against the fixed set only;
// the submission's current status does not matter.
func (r *Rules) StatusChange(ctx context.Context, identity auth.Identity, submissionID, rawStatus string) (*models.Submission, types.SubmissionStatus, error) {
	if err := requireReviewer(identity); err != nil {
		return nil, "", err
	}

	status, err := types.ParseSubmissionStatus(rawStatus)
	if err != nil {
		return nil, "", err
	}

	submission, err := r.store.GetSubmission(ctx, submissionID)
	if err != nil {
		return nil, "", err
	}

	return submission, status, nil
}

// CanComment is the role gate shared by every comment write.
func (r *Rules) CanComment(identity auth.Identity) error {
	if !identity.IsReviewer() {
		return ErrSubmittersCannotComment
	}
	return nil
}

// CommentTarget resolves the submission a reviewer wants to comment on.
func (r *Rules) CommentTarget(ctx context.Context, identity auth.Identity, submissionID string) (*models.Submission, error) {
	if err := r.CanComment(identity); err != nil {
		return nil, err
	}
	return r.SubmissionForMember(ctx, identity, submissionID)
}

// CommentForModeration resolves a comment a reviewer wants to edit or
// delete. Any reviewer who is a member of the project may moderate any
// comment; authorship is not checked.
func (r *Rules) CommentForModeration(ctx context.Context, identity auth.Identity, commentID string) (*models.Comment, *models.Submission, error) {
	if err := r.CanComment(identity); err != nil {
		return nil, nil, err
	}

	comment, err := r.store.GetComment(ctx, commentID)
	if err != nil {
		return nil, nil, err
	}

	submission, err := r.SubmissionForMember(ctx, identity, comment.SubmissionID)
	if err != nil {
		return nil, nil, err
	}

	return comment, submission, nil
}

func (r *Rules) requireMember(ctx context.Context, identity auth.Identity, project *models.Project) error {
	ok, err := isMemberOf(ctx, r.store, identity.UserID, project)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotMember
	}
	return nil
}

func (r *Rules) requireMemberOf(ctx context.Context, identity auth.Identity, projectID string) error {
	ok, err := IsMember(ctx, r.store, identity.UserID, projectID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotMember
	}
	return nil
}
