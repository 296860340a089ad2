package model

import (
	"time"
)

// Admin represents the single administrative user of an organization
type Admin struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Email          string    `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	PasswordHash   string    `json:"-" gorm:"type:varchar(255)"`
	OrganizationID uint      `json:"organization_id" gorm:"index;not null"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	Organization Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
}
