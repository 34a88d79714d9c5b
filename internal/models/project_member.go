package models

import "time"

// ProjectMember is a member-of-record row. The composite key keeps one row
// per (project, user) pair.
type ProjectMember struct {
	ProjectID string    `gorm:"type:varchar(36);primaryKey" json:"project_id"`
	UserID    string    `gorm:"type:varchar(36);primaryKey;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Project *Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	User    *User    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
