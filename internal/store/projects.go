package store

import (
	"context"

	"github.com/ByteStackx/collaborative-code-review-platform/internal/errs"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/models"
	"gorm.io/gorm/clause"
)

func (s *Store) CreateProject(ctx context.Context, project *models.Project) error {
	if err := s.conn(ctx).Create(project).Error; err != nil {
		return insertError(err, "User not found", "Failed to create project")
	}
	return nil
}

func (s *Store) GetProject(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	if err := s.conn(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		return nil, lookupError(err, "project")
	}
	return &project, nil
}

// ListProjects returns every project, newest first.
func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	projects := []models.Project{}
	if err := s.conn(ctx).Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, errs.Internal("Failed to retrieve projects", err)
	}
	return projects, nil
}

// AddMember inserts the (project, user) pair. A concurrent or repeated add of
// the same pair is absorbed by the primary key and yields the existing row.
func (s *Store) AddMember(ctx context.Context, projectID, userID string) (*models.ProjectMember, error) {
	member := models.ProjectMember{ProjectID: projectID, UserID: userID}

	err := s.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&member).Error
	if err != nil {
		return nil, insertError(err, "User not found", "Failed to add member")
	}

	var stored models.ProjectMember
	if err := s.conn(ctx).Where("project_id = ? AND user_id = ?", projectID, userID).First(&stored).Error; err != nil {
		return nil, errs.Internal("Failed to add member", err)
	}
	return &stored, nil
}

func (s *Store) RemoveMember(ctx context.Context, projectID, userID string) error {
	err := s.conn(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{}).Error
	if err != nil {
		return errs.Internal("Failed to remove member", err)
	}
	return nil
}

func (s *Store) ListMembers(ctx context.Context, projectID string) ([]models.ProjectMember, error) {
	members := []models.ProjectMember{}
	err := s.conn(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, errs.Internal("Failed to retrieve members", err)
	}
	return members, nil
}

// HasMember reports whether a member-of-record row exists. Errors are
// returned unclassified so the caller can recognise a missing relation.
func (s *Store) HasMember(ctx context.Context, projectID, userID string) (bool, error) {
	var count int64
	err := s.conn(ctx).
		Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
