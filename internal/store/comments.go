package store

import (
	"context"

	"github.com/ByteStackx/collaborative-code-review-platform/internal/errs"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/models"
)

func (s *Store) CreateComment(ctx context.Context, comment *models.Comment) error {
	if err := s.conn(ctx).Create(comment).Error; err != nil {
		return insertError(err, "Submission not found", "Failed to create comment")
	}
	return nil
}

func (s *Store) GetComment(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	if err := s.conn(ctx).Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, lookupError(err, "comment")
	}
	return &comment, nil
}

// ListCommentsBySubmission returns the thread oldest first.
func (s *Store) ListCommentsBySubmission(ctx context.Context, submissionID string) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := s.conn(ctx).
		Where("submission_id = ?", submissionID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, errs.Internal("Failed to retrieve comments", err)
	}
	return comments, nil
}

func (s *Store) UpdateComment(ctx context.Context, id, content string) (*models.Comment, error) {
	result := s.conn(ctx).
		Model(&models.Comment{}).
		Where("id = ?", id).
		Update("content", content)
	if result.Error != nil {
		return nil, errs.Internal("Failed to update comment", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, errs.NotFound("Comment not found")
	}
	return s.GetComment(ctx, id)
}

func (s *Store) DeleteComment(ctx context.Context, id string) error {
	result := s.conn(ctx).Where("id = ?", id).Delete(&models.Comment{})
	if result.Error != nil {
		return errs.Internal("Failed to delete comment", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NotFound("Comment not found")
	}
	return nil
}
