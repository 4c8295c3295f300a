package models

import "time"

type RetailerModel struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	Name      string `gorm:"not null"`
	Domain    string `gorm:"uniqueIndex;not null"`
	IsActive  bool
	CreatedAt time.Time
}

func (RetailerModel) TableName() string { return "retailers" }
