package models

import (
	"database/sql"
	"time"
)

// Post represents a feed post. GroupID is null for global-feed posts.
type Post struct {
	ID       int64          `gorm:"primaryKey;autoIncrement;column:id"`
	AuthorID int64          `gorm:"not null;index;column:author_id"`
	Content  string         `gorm:"type:text;not null;column:content"`
	ImageURL sql.NullString `gorm:"type:varchar(1024);column:image_url"`
	City     sql.NullString `gorm:"type:varchar(60);column:city"`
	GroupID  sql.NullInt64  `gorm:"index;column:group_id"`

	// Denormalized helpful-mark counter, maintained on toggle
	HelpfulCount int64 `gorm:"not null;default:0;column:helpful_count"`

	// Boost state. A post is boosted iff BoostUntil is set and in the
	// future; expiry needs no deactivation step.
	BoostUntil sql.NullTime  `gorm:"index;column:boost_until"`
	BoostLevel sql.NullInt64 `gorm:"type:smallint;column:boost_level"`

	CreatedAt time.Time `gorm:"not null;index;column:created_at"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "paw_posts"
}

// BoostedAt reports whether the post's boost is active at the given time.
func (p *Post) BoostedAt(now time.Time) bool {
	return p.BoostUntil.Valid && p.BoostUntil.Time.After(now)
}
