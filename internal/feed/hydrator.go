package feed

import (
	"context"
	"fmt"

	"github.com/pawpost/pawpost/internal/models"
)

// LikeSource batch-loads likes for a set of posts
type LikeSource interface {
	ListByPostIDs(ctx context.Context, postIDs []int64) ([]models.Like, error)
}

// HelpfulSource batch-loads helpful marks for a set of posts
type HelpfulSource interface {
	ListByPostIDs(ctx context.Context, postIDs []int64) ([]models.HelpfulMark, error)
}

// CommentSource batch-loads comments for a set of posts, oldest first
type CommentSource interface {
	ListByPostIDs(ctx context.Context, postIDs []int64) ([]models.Comment, error)
}

// ProfileSource batch-loads profiles by ID
type ProfileSource interface {
	GetByIDs(ctx context.Context, ids []int64) ([]models.Profile, error)
}

// HydratedComment is a comment with its resolved author. Author is nil when
// the profile no longer exists; renderers must tolerate that.
type HydratedComment struct {
	models.Comment
	Author *models.Profile
}

// HydratedPost is the fully assembled post view model: the raw post plus its
// author, engagement lists, and comments with their own authors.
type HydratedPost struct {
	models.Post
	Author       *models.Profile
	Likes        []models.Like
	HelpfulMarks []models.HelpfulMark
	Comments     []HydratedComment
}

// Hydrator assembles hydrated posts from raw post rows. It is the single
// place that joins engagement state onto posts, and it performs no writes.
type Hydrator struct {
	likes    LikeSource
	helpful  HelpfulSource
	comments CommentSource
	profiles ProfileSource
}

// NewHydrator creates a new hydrator
func NewHydrator(likes LikeSource, helpful HelpfulSource, comments CommentSource, profiles ProfileSource) *Hydrator {
	return &Hydrator{
		likes:    likes,
		helpful:  helpful,
		comments: comments,
		profiles: profiles,
	}
}

// Hydrate attaches author profiles, likes, helpful marks, and comments to the
// given posts using one batched lookup per entity. Input ordering is
// preserved. Any failed lookup aborts the whole hydration; engagement state
// is never presented partially.
func (h *Hydrator) Hydrate(ctx context.Context, posts []models.Post) ([]HydratedPost, error) {
	if len(posts) == 0 {
		return []HydratedPost{}, nil
	}

	postIDs := make([]int64, 0, len(posts))
	authorIDs := make(map[int64]struct{}, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
		authorIDs[p.AuthorID] = struct{}{}
	}

	likes, err := h.likes.ListByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, fmt.Errorf("load likes: %w", err)
	}
	marks, err := h.helpful.ListByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, fmt.Errorf("load helpful marks: %w", err)
	}
	comments, err := h.comments.ListByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}

	// Comment authors join the profile lookup set
	for _, c := range comments {
		authorIDs[c.AuthorID] = struct{}{}
	}
	ids := make([]int64, 0, len(authorIDs))
	for id := range authorIDs {
		ids = append(ids, id)
	}
	profiles, err := h.profiles.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}

	profileByID := make(map[int64]*models.Profile, len(profiles))
	for i := range profiles {
		profileByID[profiles[i].ID] = &profiles[i]
	}

	likesByPost := make(map[int64][]models.Like)
	for _, l := range likes {
		likesByPost[l.PostID] = append(likesByPost[l.PostID], l)
	}
	marksByPost := make(map[int64][]models.HelpfulMark)
	for _, m := range marks {
		marksByPost[m.PostID] = append(marksByPost[m.PostID], m)
	}
	commentsByPost := make(map[int64][]HydratedComment)
	for _, c := range comments {
		commentsByPost[c.PostID] = append(commentsByPost[c.PostID], HydratedComment{
			Comment: c,
			Author:  profileByID[c.AuthorID],
		})
	}

	hydrated := make([]HydratedPost, 0, len(posts))
	for _, p := range posts {
		hydrated = append(hydrated, HydratedPost{
			Post: p,
			// A missing author profile is not an error; the field
			// stays nil and the caller handles it.
			Author:       profileByID[p.AuthorID],
			Likes:        likesByPost[p.ID],
			HelpfulMarks: marksByPost[p.ID],
			Comments:     commentsByPost[p.ID],
		})
	}
	return hydrated, nil
}
