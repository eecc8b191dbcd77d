package models

import "time"

// Like is a user's like on a post, at most one per (user, post)
type Like struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	PostID    int64     `gorm:"not null;uniqueIndex:paw_likes_ux1;column:post_id"`
	UserID    int64     `gorm:"not null;uniqueIndex:paw_likes_ux1;column:user_id"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for Like
func (Like) TableName() string {
	return "paw_likes"
}

// HelpfulMark is a user's helpful vote on a post, at most one per (user, post)
type HelpfulMark struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	PostID    int64     `gorm:"not null;uniqueIndex:paw_helpful_marks_ux1;column:post_id"`
	UserID    int64     `gorm:"not null;uniqueIndex:paw_helpful_marks_ux1;column:user_id"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for HelpfulMark
func (HelpfulMark) TableName() string {
	return "paw_helpful_marks"
}
