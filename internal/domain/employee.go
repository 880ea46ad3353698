package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	Firstname   string `gorm:"not null"`
	Lastname    string `gorm:"not null"`
	Email       string `gorm:"not null"`
	Gender      string
	City        string
	Designation string
	Salary      float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
