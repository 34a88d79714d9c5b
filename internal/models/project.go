package models

type Project struct {
	BaseModel

	Name        string  `gorm:"not null" json:"name"`
	Description *string `json:"description"`
	// CreatedBy keeps granting membership after explicit member rows are
	// removed. It is nulled when the creator is deleted.
	CreatedBy      *string `gorm:"type:varchar(36);index" json:"created_by"`
	SlackWebhook   string  `json:"-"`
	DiscordWebhook string  `json:"-"`

	// Relationships
	Creator *User `gorm:"foreignKey:CreatedBy;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}

// CreatedByUser reports whether userID is the project's original creator.
func (p Project) CreatedByUser(userID string) bool {
	return p.CreatedBy != nil && *p.CreatedBy == userID
}
