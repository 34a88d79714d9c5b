package models

import "github.com/ByteStackx/collaborative-code-review-platform/internal/types"

type Submission struct {
	BaseModel

	ProjectID   string                 `gorm:"type:varchar(36);not null;index" json:"project_id"`
	SubmittedBy *string                `gorm:"type:varchar(36);index" json:"submitted_by"`
	Title       string                 `gorm:"not null" json:"title"`
	Content     string                 `gorm:"not null" json:"content"`
	Status      types.SubmissionStatus `gorm:"type:varchar(32);not null;default:pending" json:"status"`

	// Relationships
	Project   *Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Submitter *User    `gorm:"foreignKey:SubmittedBy;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}
