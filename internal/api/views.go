package api

import (
	"database/sql"
	"time"

	"github.com/pawpost/pawpost/internal/feed"
	"github.com/pawpost/pawpost/internal/models"
	"github.com/pawpost/pawpost/internal/rewards"
)

// ProfileView is the wire shape of a profile
type ProfileView struct {
	ID               int64   `json:"id"`
	Username         string  `json:"username"`
	AvatarURL        *string `json:"avatar_url,omitempty"`
	Bio              *string `json:"bio,omitempty"`
	City             *string `json:"city,omitempty"`
	PetType          *string `json:"pet_type,omitempty"`
	Points           int64   `json:"points"`
	IsBusiness       bool    `json:"is_business"`
	BusinessName     *string `json:"business_name,omitempty"`
	BusinessCategory *string `json:"business_category,omitempty"`
}

// TierView is the wire shape of a derived reward tier
type TierView struct {
	Name            string `json:"name"`
	MinPoints       int64  `json:"min_points"`
	DiscountPercent int    `json:"discount_percent"`
}

// LikeView is the wire shape of a like or helpful mark
type LikeView struct {
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentView is the wire shape of a comment with its resolved author
type CommentView struct {
	ID        int64        `json:"id"`
	PostID    int64        `json:"post_id"`
	AuthorID  int64        `json:"author_id"`
	ParentID  *int64       `json:"parent_id,omitempty"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
	Author    *ProfileView `json:"author,omitempty"`
}

// PostView is the wire shape of a hydrated post
type PostView struct {
	ID           int64         `json:"id"`
	AuthorID     int64         `json:"author_id"`
	Content      string        `json:"content"`
	ImageURL     *string       `json:"image_url,omitempty"`
	GroupID      *int64        `json:"group_id,omitempty"`
	HelpfulCount int64         `json:"helpful_count"`
	BoostUntil   *time.Time    `json:"boost_until,omitempty"`
	BoostLevel   *int64        `json:"boost_level,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	Author       *ProfileView  `json:"author,omitempty"`
	Likes        []LikeView    `json:"likes"`
	HelpfulMarks []LikeView    `json:"helpful_marks"`
	Comments     []CommentView `json:"comments"`
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func nullInt64(i sql.NullInt64) *int64 {
	if !i.Valid {
		return nil
	}
	return &i.Int64
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}

// NewProfileView projects a profile onto its wire shape
func NewProfileView(p *models.Profile) *ProfileView {
	if p == nil {
		return nil
	}
	return &ProfileView{
		ID:               p.ID,
		Username:         p.Username,
		AvatarURL:        nullString(p.AvatarURL),
		Bio:              nullString(p.Bio),
		City:             nullString(p.City),
		PetType:          nullString(p.PetType),
		Points:           p.Points,
		IsBusiness:       p.IsBusiness,
		BusinessName:     nullString(p.BusinessName),
		BusinessCategory: nullString(p.BusinessCategory),
	}
}

// NewTierView projects a reward tier onto its wire shape
func NewTierView(t rewards.Tier) TierView {
	return TierView{
		Name:            t.Name,
		MinPoints:       t.MinPoints,
		DiscountPercent: t.DiscountPercent,
	}
}

// NewCommentView projects a hydrated comment onto its wire shape
func NewCommentView(c feed.HydratedComment) CommentView {
	return CommentView{
		ID:        c.ID,
		PostID:    c.PostID,
		AuthorID:  c.AuthorID,
		ParentID:  nullInt64(c.ParentID),
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		Author:    NewProfileView(c.Author),
	}
}

// NewPostView projects a hydrated post onto its wire shape
func NewPostView(p feed.HydratedPost) PostView {
	likes := make([]LikeView, 0, len(p.Likes))
	for _, l := range p.Likes {
		likes = append(likes, LikeView{UserID: l.UserID, CreatedAt: l.CreatedAt})
	}
	marks := make([]LikeView, 0, len(p.HelpfulMarks))
	for _, m := range p.HelpfulMarks {
		marks = append(marks, LikeView{UserID: m.UserID, CreatedAt: m.CreatedAt})
	}
	comments := make([]CommentView, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, NewCommentView(c))
	}
	return PostView{
		ID:           p.ID,
		AuthorID:     p.AuthorID,
		Content:      p.Content,
		ImageURL:     nullString(p.ImageURL),
		GroupID:      nullInt64(p.GroupID),
		HelpfulCount: p.HelpfulCount,
		BoostUntil:   nullTime(p.BoostUntil),
		BoostLevel:   nullInt64(p.BoostLevel),
		CreatedAt:    p.CreatedAt,
		Author:       NewProfileView(p.Author),
		Likes:        likes,
		HelpfulMarks: marks,
		Comments:     comments,
	}
}

// NewPostViews projects a hydrated post list
func NewPostViews(posts []feed.HydratedPost) []PostView {
	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, NewPostView(p))
	}
	return views
}
