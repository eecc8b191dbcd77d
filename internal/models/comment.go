package models

import (
	"database/sql"
	"time"
)

// Comment represents a comment on a post. ParentID, when set, points at a
// top-level comment; replies nest at most one level and replies-to-replies
// are flattened under the original top-level comment.
type Comment struct {
	ID        int64         `gorm:"primaryKey;autoIncrement;column:id"`
	PostID    int64         `gorm:"not null;index;column:post_id"`
	AuthorID  int64         `gorm:"not null;column:author_id"`
	ParentID  sql.NullInt64 `gorm:"column:parent_id"`
	Content   string        `gorm:"type:text;not null;column:content"`
	CreatedAt time.Time     `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "paw_comments"
}
