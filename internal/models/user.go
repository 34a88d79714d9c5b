package models

import "github.com/ByteStackx/collaborative-code-review-platform/internal/types"

type User struct {
	BaseModel

	Name         string     `gorm:"not null" json:"name"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         types.Role `gorm:"type:varchar(20);not null;default:submitter" json:"role"`
}

func (u User) Public() types.UserResponse {
	return types.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
