package models

import (
	"database/sql"
	"time"
)

// Group is a member-created community; posts may belong to one group
type Group struct {
	ID               int64          `gorm:"primaryKey;autoIncrement;column:id"`
	OwnerID          int64          `gorm:"not null;column:owner_id"`
	Name             string         `gorm:"type:varchar(100);not null;column:name"`
	Description      sql.NullString `gorm:"type:varchar(500);column:description"`
	City             sql.NullString `gorm:"type:varchar(60);column:city"`
	IsCommunity      bool           `gorm:"not null;default:false;column:is_community"`
	RequiresApproval bool           `gorm:"not null;default:false;column:requires_approval"`
	CreatedAt        time.Time      `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for Group
func (Group) TableName() string {
	return "paw_groups"
}
