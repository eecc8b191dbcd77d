package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/pawpost/pawpost/internal/models"
)

// Repository provides database access methods
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ProfileRepository provides profile-related database operations
type ProfileRepository struct {
	*Repository
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(repo *Repository) *ProfileRepository {
	return &ProfileRepository{Repository: repo}
}

// GetByID retrieves a profile by ID
func (r *ProfileRepository) GetByID(ctx context.Context, id int64) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("profile %d: %w", id, models.ErrNotFound)
		}
		return nil, err
	}
	return &profile, nil
}

// GetByIDs retrieves multiple profiles by ID in a single query
func (r *ProfileRepository) GetByIDs(ctx context.Context, ids []int64) ([]models.Profile, error) {
	var profiles []models.Profile
	if len(ids) == 0 {
		return profiles, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// Create creates a new profile
func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// Update updates a profile
func (r *ProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// AddPoints applies an atomic point increment to the stored balance.
// Concurrent credits on the same profile must not lose updates, so this is
// never a read-modify-write.
func (r *ProfileRepository) AddPoints(ctx context.Context, profileID int64, delta int64) error {
	res := r.db.WithContext(ctx).Model(&models.Profile{}).
		Where("id = ?", profileID).
		Update("points", gorm.Expr("points + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("profile %d: %w", profileID, models.ErrNotFound)
	}
	return nil
}

// SpendPoints applies an atomic conditional decrement. The WHERE clause is
// the affordability check; there is no separate read that could race it.
func (r *ProfileRepository) SpendPoints(ctx context.Context, profileID int64, amount int64) error {
	res := r.db.WithContext(ctx).Model(&models.Profile{}).
		Where("id = ? AND points >= ?", profileID, amount).
		Update("points", gorm.Expr("points - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Distinguish a missing profile from an unaffordable debit.
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Profile{}).
			Where("id = ?", profileID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("profile %d: %w", profileID, models.ErrNotFound)
		}
		return models.ErrInsufficientPoints
	}
	return nil
}

// PostRepository provides post-related database operations
type PostRepository struct {
	*Repository
}

// NewPostRepository creates a new post repository
func NewPostRepository(repo *Repository) *PostRepository {
	return &PostRepository{Repository: repo}
}

// GetByID retrieves a post by ID
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post %d: %w", id, models.ErrNotFound)
		}
		return nil, err
	}
	return &post, nil
}

// Create creates a new post
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// ListGlobal retrieves up to limit global-feed posts (group_id is null).
// No database-level ordering; the composer orders the fetched snapshot.
func (r *PostRepository) ListGlobal(ctx context.Context, limit int) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).
		Where("group_id IS NULL").
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListByGroup retrieves up to limit posts belonging to a group
func (r *PostRepository) ListByGroup(ctx context.Context, groupID int64, limit int) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// SearchContent retrieves posts whose content contains the query,
// case-insensitive, most recent first
func (r *PostRepository) SearchContent(ctx context.Context, query string, limit int) ([]models.Post, error) {
	var posts []models.Post
	pattern := "%" + strings.TrimSpace(query) + "%"
	if err := r.db.WithContext(ctx).
		Where("content ILIKE ?", pattern).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListTopHelpful retrieves posts ordered by the denormalized helpful counter
func (r *PostRepository) ListTopHelpful(ctx context.Context, limit int) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).
		Order("helpful_count DESC").
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// SetBoost stamps a post's boost window and level
func (r *PostRepository) SetBoost(ctx context.Context, postID int64, until time.Time, level int64) error {
	res := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", postID).
		Updates(map[string]interface{}{
			"boost_until": until,
			"boost_level": level,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("post %d: %w", postID, models.ErrNotFound)
	}
	return nil
}

// AddHelpfulCount adjusts the denormalized helpful counter atomically
func (r *PostRepository) AddHelpfulCount(ctx context.Context, postID int64, delta int64) error {
	res := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", postID).
		Update("helpful_count", gorm.Expr("helpful_count + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("post %d: %w", postID, models.ErrNotFound)
	}
	return nil
}

// GroupRepository provides group-related database operations
type GroupRepository struct {
	*Repository
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(repo *Repository) *GroupRepository {
	return &GroupRepository{Repository: repo}
}

// GetByID retrieves a group by ID
func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("group %d: %w", id, models.ErrNotFound)
		}
		return nil, err
	}
	return &group, nil
}

// Create creates a new group
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}
