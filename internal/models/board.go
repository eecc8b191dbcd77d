package models

import (
	"database/sql"
	"time"
)

// Board is a user-owned collection of saved posts
type Board struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	OwnerID   int64     `gorm:"not null;index;column:owner_id"`
	Name      string    `gorm:"type:varchar(100);not null;column:name"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for Board
func (Board) TableName() string {
	return "paw_boards"
}

// SavedPost records a post saved by a user, optionally onto a board.
// Duplicate saves are rejected by the uniqueness constraints: one row per
// (user, post, board), and one boardless row per (user, post). Postgres
// treats NULLs as distinct in the composite index, so the boardless case
// carries its own partial index.
type SavedPost struct {
	ID        int64         `gorm:"primaryKey;autoIncrement;column:id"`
	UserID    int64         `gorm:"not null;uniqueIndex:paw_saved_posts_ux1;uniqueIndex:paw_saved_posts_ux2,where:board_id IS NULL;column:user_id"`
	PostID    int64         `gorm:"not null;uniqueIndex:paw_saved_posts_ux1;uniqueIndex:paw_saved_posts_ux2,where:board_id IS NULL;column:post_id"`
	BoardID   sql.NullInt64 `gorm:"uniqueIndex:paw_saved_posts_ux1;column:board_id"`
	CreatedAt time.Time     `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for SavedPost
func (SavedPost) TableName() string {
	return "paw_saved_posts"
}
