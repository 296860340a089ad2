package model

import (
	"time"
)

// Organization represents a tenant stored in the database.
// Each organization owns exactly one partition in the shared store,
// named after its current display name.
type Organization struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"type:varchar(100);uniqueIndex"`
	PartitionName string    `json:"partition_name" gorm:"type:varchar(120);uniqueIndex"`
	ConnectionURI string    `json:"connection_uri,omitempty" gorm:"type:varchar(255)"` // Reserved for per-org database routing
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
