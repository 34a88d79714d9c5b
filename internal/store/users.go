package store

import (
	"context"
	"errors"

	"github.com/ByteStackx/collaborative-code-review-platform/internal/errs"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/models"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/types"
	"gorm.io/gorm"
)

// UserUpdate carries the profile fields to change; nil fields are left alone.
type UserUpdate struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Role         *types.Role
}

func (u UserUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.PasswordHash == nil && u.Role == nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.conn(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.Conflict("Email already in use")
		}
		return errs.Internal("Failed to create user", err)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.conn(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, lookupError(err, "user")
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.conn(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, lookupError(err, "user")
	}
	return &user, nil
}

func (s *Store) UpdateUser(ctx context.Context, id string, update UserUpdate) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Email != nil {
		updates["email"] = *update.Email
	}
	if update.PasswordHash != nil {
		updates["password_hash"] = *update.PasswordHash
	}
	if update.Role != nil {
		updates["role"] = *update.Role
	}

	if len(updates) == 0 {
		return user, nil
	}

	if err := s.conn(ctx).Model(user).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.Conflict("Email already in use")
		}
		return nil, errs.Internal("Failed to update user", err)
	}

	return s.GetUser(ctx, id)
}

// DeleteUser removes the user and detaches everything that referenced it:
// membership rows go away, authorship and creator references become NULL.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Project{}).Where("created_by = ?", id).Update("created_by", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Submission{}).Where("submitted_by = ?", id).Update("submitted_by", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Comment{}).Where("user_id = ?", id).Update("user_id", nil).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.User{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NotFound("User not found")
		}
		return nil
	})

	if err != nil {
		if errs.CodeOf(err) == errs.CodeNotFound {
			return err
		}
		return errs.Internal("Failed to delete user", err)
	}
	return nil
}
