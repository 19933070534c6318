package models

import "time"

type Appointment struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Date        time.Time `gorm:"index;not null" json:"date"`
	Description string    `gorm:"type:text" json:"description"`
	UserID      string    `gorm:"size:36;index;not null" json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
