package models

import (
	"time"

	"gorm.io/datatypes"
)

type ChecklistItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type Project struct {
	ID    string `gorm:"primaryKey;size:36" json:"id"`
	Title string `gorm:"size:200;not null" json:"title"`
	Brief string `gorm:"type:text" json:"brief"`

	StartDate *time.Time `gorm:"type:date" json:"start_date"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date"`

	ClientID string `gorm:"size:36;index" json:"client_id"`
	Stage    string `gorm:"size:100;index;not null" json:"stage"`

	ResponsibleUserIDs datatypes.JSONSlice[string]        `json:"responsible_user_ids"`
	Checklist          datatypes.JSONSlice[ChecklistItem] `json:"checklist"`

	Script     string `gorm:"type:text" json:"script"`
	Thumbnail  string `gorm:"type:text" json:"thumbnail"`
	UploadLink string `gorm:"size:500" json:"upload_link"`

	OwnerID string `gorm:"size:36;index;not null" json:"owner_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Project) IsResponsible(userID string) bool {
	for _, id := range p.ResponsibleUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}
