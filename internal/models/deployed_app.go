package models

import (
	"time"

	"gorm.io/gorm"

	"deployhub_backend/internal/identifier"
)

type DeployedApp struct {
	ID        string    `gorm:"primaryKey;size:32"`
	OwnerID   string    `gorm:"size:32;not null;index"`
	Owner     *User     `gorm:"foreignKey:OwnerID"`
	Active    bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (DeployedApp) TableName() string {
	return "deployed_apps"
}

func (a *DeployedApp) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = identifier.NewAppID()
	}
	return nil
}
