package models

type Comment struct {
	BaseModel

	SubmissionID string  `gorm:"type:varchar(36);not null;index" json:"submission_id"`
	UserID       *string `gorm:"type:varchar(36);index" json:"user_id"`
	Content      string  `gorm:"not null" json:"content"`

	// Relationships
	Submission *Submission `gorm:"foreignKey:SubmissionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Author     *User       `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}
