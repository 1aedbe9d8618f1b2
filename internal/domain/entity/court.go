package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Court represents a bookable court. Only the display fields are used here.
type Court struct {
	ID           string  `gorm:"column:id;primaryKey"`
	Name         string  `gorm:"column:name"`
	Description  *string `gorm:"column:description"`
	Location     *string `gorm:"column:location"`
	PricePerHour float64 `gorm:"column:price_per_hour"`
}

// TableName specifies the table name for the Court entity.
func (Court) TableName() string {
	return "courts"
}

func (c *Court) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
