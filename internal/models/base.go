package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// newID fills an empty primary key before insert. Ids are opaque to clients.
func newID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

func (c *Column) BeforeCreate(*gorm.DB) error {
	newID(&c.ID)
	return nil
}

func (p *Project) BeforeCreate(*gorm.DB) error {
	newID(&p.ID)
	return nil
}

func (c *Client) BeforeCreate(*gorm.DB) error {
	newID(&c.ID)
	return nil
}

func (p *Profile) BeforeCreate(*gorm.DB) error {
	newID(&p.ID)
	return nil
}

func (a *Appointment) BeforeCreate(*gorm.DB) error {
	newID(&a.ID)
	return nil
}

func (a *AuditLog) BeforeCreate(*gorm.DB) error {
	newID(&a.ID)
	return nil
}
