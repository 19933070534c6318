package models

import "time"

// Client is the customer a project is produced for.
type Client struct {
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	Name string `gorm:"size:150;not null" json:"name"`

	Email         string `gorm:"size:150" json:"email"`
	Phone         string `gorm:"size:30" json:"phone"`
	SocialMedia   string `gorm:"size:255" json:"social_media"`
	CPF           string `gorm:"size:20" json:"cpf"`
	CNPJ          string `gorm:"size:20" json:"cnpj"`
	Address       string `gorm:"size:255" json:"address"`
	EssentialInfo string `gorm:"type:text" json:"essential_info"`

	OwnerID string `gorm:"size:36;index" json:"owner_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
