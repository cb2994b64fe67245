package models

import (
	"gorm.io/datatypes"
)

// UserModel is the persistence shape of an account.
type UserModel struct {
	ID             uint              `gorm:"primaryKey"`
	Email          string            `gorm:"uniqueIndex;size:255;not null"`
	FullName       string            `gorm:"size:100;not null"`
	HashedPassword string            `gorm:"size:255;not null"`
	Role           string            `gorm:"size:20;not null;default:end_user;index"`
	IsActive       bool              `gorm:"not null;default:true"`
	Preferences    datatypes.JSONMap `gorm:"type:json"`
	CreatedAt      int64             `gorm:"autoCreateTime:milli;not null;index"`
	UpdatedAt      int64             `gorm:"autoUpdateTime:milli;not null"`
}

func (UserModel) TableName() string {
	return "users"
}
