package models

import (
	"time"

	"gorm.io/gorm"

	"deployhub_backend/internal/identifier"
)

// Plan is the subscription tier of a user.
type Plan string

const (
	PlanHobby Plan = "HOBBY"
	PlanPro   Plan = "PRO"
)

type User struct {
	ID        string    `gorm:"primaryKey;size:32"`
	Username  string    `gorm:"size:150;uniqueIndex;not null"`
	Plan      Plan      `gorm:"type:varchar(10);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	// Relations
	Apps []DeployedApp `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns the prefixed id and the default plan. The id is never
// checked for uniqueness here; the primary key constraint rejects collisions.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = identifier.NewUserID()
	}
	if u.Plan == "" {
		u.Plan = PlanHobby
	}
	return nil
}
