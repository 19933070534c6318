package models

import "time"

const (
	RoleMaster = "Master"
	RoleFree   = "Free"
)

// Profile is both the login identity and the user record shown in the
// administration screens.
type Profile struct {
	ID    string `gorm:"primaryKey;size:36" json:"id"`
	Name  string `gorm:"size:100" json:"name"`
	Email string `gorm:"size:150;uniqueIndex;not null" json:"email"`
	Phone string `gorm:"size:30" json:"phone"`
	CPF   string `gorm:"size:20" json:"cpf"`

	Role     string `gorm:"size:20;default:'Free'" json:"role"`
	Approved bool   `gorm:"default:false" json:"approved"`

	// Superuser is granted server side only and always audited.
	Superuser bool `gorm:"default:false" json:"superuser"`

	PasswordHash string `gorm:"size:255;not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
