package models

import (
	"database/sql"
	"time"
)

// Notification types written by engagement actions
const (
	NotifyTypeLike    = "like"
	NotifyTypeHelpful = "helpful"
	NotifyTypeComment = "comment"
)

// Notification is an in-app notification for a profile. Writes are
// best-effort; delivery is out of scope.
type Notification struct {
	ID        int64          `gorm:"primaryKey;autoIncrement;column:id"`
	UserID    int64          `gorm:"not null;index;column:user_id"`
	Type      string         `gorm:"type:varchar(30);not null;column:type"`
	Title     string         `gorm:"type:varchar(200);not null;column:title"`
	RelatedID sql.NullInt64  `gorm:"column:related_id"`
	Content   sql.NullString `gorm:"type:text;column:content"`
	Read      bool           `gorm:"not null;default:false;column:read"`
	CreatedAt time.Time      `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "paw_notifications"
}
