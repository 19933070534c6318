package models

import "time"

// Column is a kanban stage. Its Title doubles as the key projects point at
// through Project.Stage.
type Column struct {
	ID    string `gorm:"primaryKey;size:36" json:"id"`
	Title string `gorm:"size:100;not null" json:"title"`
	Order int    `gorm:"column:order;not null;default:0" json:"order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
