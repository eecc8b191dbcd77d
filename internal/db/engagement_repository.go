package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pawpost/pawpost/internal/models"
)

// translateWriteError maps GORM's duplicate-key translation onto the shared
// sentinel so callers never depend on driver error types.
func translateWriteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", models.ErrDuplicate, err)
	}
	return err
}

// LikeRepository provides like-related database operations
type LikeRepository struct {
	*Repository
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(repo *Repository) *LikeRepository {
	return &LikeRepository{Repository: repo}
}

// Insert creates a like row. Returns models.ErrDuplicate when the
// (user, post) pair already exists.
func (r *LikeRepository) Insert(ctx context.Context, userID, postID int64) error {
	like := models.Like{UserID: userID, PostID: postID}
	return translateWriteError(r.db.WithContext(ctx).Create(&like).Error)
}

// Delete removes a like row, reporting whether one existed
func (r *LikeRepository) Delete(ctx context.Context, userID, postID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListByPostIDs retrieves all likes for a set of posts in one query
func (r *LikeRepository) ListByPostIDs(ctx context.Context, postIDs []int64) ([]models.Like, error) {
	var likes []models.Like
	if len(postIDs) == 0 {
		return likes, nil
	}
	if err := r.db.WithContext(ctx).Where("post_id IN ?", postIDs).Find(&likes).Error; err != nil {
		return nil, err
	}
	return likes, nil
}

// HelpfulMarkRepository provides helpful-mark database operations
type HelpfulMarkRepository struct {
	*Repository
}

// NewHelpfulMarkRepository creates a new helpful-mark repository
func NewHelpfulMarkRepository(repo *Repository) *HelpfulMarkRepository {
	return &HelpfulMarkRepository{Repository: repo}
}

// Insert creates a helpful-mark row. Returns models.ErrDuplicate when the
// (user, post) pair already exists.
func (r *HelpfulMarkRepository) Insert(ctx context.Context, userID, postID int64) error {
	mark := models.HelpfulMark{UserID: userID, PostID: postID}
	return translateWriteError(r.db.WithContext(ctx).Create(&mark).Error)
}

// Delete removes a helpful-mark row, reporting whether one existed
func (r *HelpfulMarkRepository) Delete(ctx context.Context, userID, postID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.HelpfulMark{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListByPostIDs retrieves all helpful marks for a set of posts in one query
func (r *HelpfulMarkRepository) ListByPostIDs(ctx context.Context, postIDs []int64) ([]models.HelpfulMark, error) {
	var marks []models.HelpfulMark
	if len(postIDs) == 0 {
		return marks, nil
	}
	if err := r.db.WithContext(ctx).Where("post_id IN ?", postIDs).Find(&marks).Error; err != nil {
		return nil, err
	}
	return marks, nil
}

// CommentRepository provides comment-related database operations
type CommentRepository struct {
	*Repository
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(repo *Repository) *CommentRepository {
	return &CommentRepository{Repository: repo}
}

// Insert creates a comment
func (r *CommentRepository) Insert(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// ListByPostIDs retrieves all comments for a set of posts in one query,
// oldest first so thread replies render in chronological order
func (r *CommentRepository) ListByPostIDs(ctx context.Context, postIDs []int64) ([]models.Comment, error) {
	var comments []models.Comment
	if len(postIDs) == 0 {
		return comments, nil
	}
	if err := r.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// BoardRepository provides board-related database operations
type BoardRepository struct {
	*Repository
}

// NewBoardRepository creates a new board repository
func NewBoardRepository(repo *Repository) *BoardRepository {
	return &BoardRepository{Repository: repo}
}

// GetByID retrieves a board by ID
func (r *BoardRepository) GetByID(ctx context.Context, id int64) (*models.Board, error) {
	var board models.Board
	if err := r.db.WithContext(ctx).First(&board, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("board %d: %w", id, models.ErrNotFound)
		}
		return nil, err
	}
	return &board, nil
}

// Create creates a new board
func (r *BoardRepository) Create(ctx context.Context, board *models.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

// SavedPostRepository provides saved-post database operations
type SavedPostRepository struct {
	*Repository
}

// NewSavedPostRepository creates a new saved-post repository
func NewSavedPostRepository(repo *Repository) *SavedPostRepository {
	return &SavedPostRepository{Repository: repo}
}

// Insert creates a saved-post row. Returns models.ErrDuplicate when the post
// is already saved on the same board.
func (r *SavedPostRepository) Insert(ctx context.Context, saved *models.SavedPost) error {
	return translateWriteError(r.db.WithContext(ctx).Create(saved).Error)
}

// ListByUser retrieves a user's saved posts
func (r *SavedPostRepository) ListByUser(ctx context.Context, userID int64) ([]models.SavedPost, error) {
	var saved []models.SavedPost
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&saved).Error; err != nil {
		return nil, err
	}
	return saved, nil
}

// MessageRepository provides message-related database operations
type MessageRepository struct {
	*Repository
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(repo *Repository) *MessageRepository {
	return &MessageRepository{Repository: repo}
}

// Insert creates a message
func (r *MessageRepository) Insert(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// NotificationRepository provides notification database operations
type NotificationRepository struct {
	*Repository
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(repo *Repository) *NotificationRepository {
	return &NotificationRepository{Repository: repo}
}

// Insert creates a notification
func (r *NotificationRepository) Insert(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}
