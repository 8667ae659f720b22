package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Name     string `gorm:"index" json:"name"`
	Phone    string `gorm:"index" json:"phone"`
	Address  string `json:"address"`
	Showroom string `json:"showroom,omitempty"`

	Orders []Order `gorm:"foreignKey:CustomerID" json:"orders,omitempty"`

	gorm.Model `json:"-"`
}

// Initialize UUID before creating
func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
