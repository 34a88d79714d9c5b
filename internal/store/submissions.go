package store

import (
	"context"
	"errors"

	"github.com/ByteStackx/collaborative-code-review-platform/internal/errs"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/models"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/types"
	"gorm.io/gorm"
)

func (s *Store) CreateSubmission(ctx context.Context, submission *models.Submission) error {
	if submission.Status == "" {
		submission.Status = types.StatusPending
	}
	if err := s.conn(ctx).Create(submission).Error; err != nil {
		return insertError(err, "Project not found", "Failed to create submission")
	}
	return nil
}

func (s *Store) GetSubmission(ctx context.Context, id string) (*models.Submission, error) {
	var submission models.Submission
	if err := s.conn(ctx).Where("id = ?", id).First(&submission).Error; err != nil {
		return nil, lookupError(err, "submission")
	}
	return &submission, nil
}

// ListSubmissionsByProject returns a project's submissions, newest first.
func (s *Store) ListSubmissionsByProject(ctx context.Context, projectID string) ([]models.Submission, error) {
	submissions := []models.Submission{}
	err := s.conn(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, errs.Internal("Failed to retrieve submissions", err)
	}
	return submissions, nil
}

func (s *Store) UpdateSubmissionStatus(ctx context.Context, id string, status types.SubmissionStatus) (*models.Submission, error) {
	result := s.conn(ctx).
		Model(&models.Submission{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return nil, errs.Internal("Failed to update submission", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, errs.NotFound("Submission not found")
	}
	return s.GetSubmission(ctx, id)
}

// DeleteSubmission removes the submission together with its comments.
func (s *Store) DeleteSubmission(ctx context.Context, id string) error {
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("submission_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Submission{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NotFound("Submission not found")
		}
		return nil
	})

	var appErr *errs.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if err != nil {
		return errs.Internal("Failed to delete submission", err)
	}
	return nil
}
