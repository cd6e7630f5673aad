package models

import "time"

type Customer struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;not null;index"`
	PhoneNumber string `gorm:"size:20"`
	Email       string `gorm:"size:100"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
