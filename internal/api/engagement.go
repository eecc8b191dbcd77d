package api

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/pawpost/pawpost/internal/engagement"
	"github.com/pawpost/pawpost/internal/feed"
	"github.com/pawpost/pawpost/internal/models"
	"github.com/pawpost/pawpost/internal/rewards"
)

// EngagementAPI provides engagement mutation methods
type EngagementAPI struct {
	actions  *engagement.Actions
	profiles ProfileReader
}

// NewEngagementAPI creates a new engagement API
func NewEngagementAPI(actions *engagement.Actions, profiles ProfileReader) *EngagementAPI {
	return &EngagementAPI{
		actions:  actions,
		profiles: profiles,
	}
}

// ToggleLike handles engagement.toggle_like
func (e *EngagementAPI) ToggleLike(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		UserID int64 `json:"user_id"`
		PostID int64 `json:"post_id"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, NewError(ErrInvalidParams, "invalid parameters format")
	}
	if p.UserID == 0 || p.PostID == 0 {
		return nil, NewError(ErrInvalidParams, "missing required parameters: user_id, post_id")
	}

	liked, err := e.actions.ToggleLike(ctx.Request.Context(), p.UserID, p.PostID)
	if err != nil {
		return nil, err
	}
	return gin.H{"liked": liked}, nil
}

// ToggleHelpful handles engagement.toggle_helpful
func (e *EngagementAPI) ToggleHelpful(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		UserID int64 `json:"user_id"`
		PostID int64 `json:"post_id"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, NewError(ErrInvalidParams, "invalid parameters format")
	}
	if p.UserID == 0 || p.PostID == 0 {
		return nil, NewError(ErrInvalidParams, "missing required parameters: user_id, post_id")
	}

	helpful, err := e.actions.ToggleHelpful(ctx.Request.Context(), p.UserID, p.PostID)
	if err != nil {
		return nil, err
	}
	return gin.H{"helpful": helpful}, nil
}

// AddComment handles engagement.add_comment
func (e *EngagementAPI) AddComment(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		UserID   int64  `json:"user_id"`
		PostID   int64  `json:"post_id"`
		Content  string `json:"content"`
		ParentID *int64 `json:"parent_id"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, NewError(ErrInvalidParams, "invalid parameters format")
	}
	if p.UserID == 0 || p.PostID == 0 || p.Content == "" {
		return nil, NewError(ErrInvalidParams, "missing required parameters: user_id, post_id, content")
	}

	comment, err := e.actions.AddComment(ctx.Request.Context(), p.UserID, p.PostID, p.Content, p.ParentID)
	if err != nil {
		return nil, err
	}
	return NewCommentView(feed.HydratedComment{Comment: *comment}), nil
}

// SavePost handles engagement.save_post. Duplicate saves surface as an
// informational rejection, not a server error.
func (e *EngagementAPI) SavePost(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		UserID  int64  `json:"user_id"`
		PostID  int64  `json:"post_id"`
		BoardID *int64 `json:"board_id"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, NewError(ErrInvalidParams, "invalid parameters format")
	}
	if p.UserID == 0 || p.PostID == 0 {
		return nil, NewError(ErrInvalidParams, "missing required parameters: user_id, post_id")
	}

	if err := e.actions.SavePost(ctx.Request.Context(), p.UserID, p.PostID, p.BoardID); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return nil, NewError(CodeDuplicate, "This post is already saved")
		}
		return nil, err
	}
	return gin.H{"saved": true}, nil
}

// RedeemBoost handles engagement.redeem_boost
func (e *EngagementAPI) RedeemBoost(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		UserID int64 `json:"user_id"`
		PostID int64 `json:"post_id"`
		Level  int64 `json:"level"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, NewError(ErrInvalidParams, "invalid parameters format")
	}
	if p.UserID == 0 || p.PostID == 0 || p.Level == 0 {
		return nil, NewError(ErrInvalidParams, "missing required parameters: user_id, post_id, level")
	}

	post, err := e.actions.RedeemBoost(ctx.Request.Context(), p.UserID, p.PostID, p.Level)
	if err != nil {
		if tier, ok := rewards.BoostTierForLevel(p.Level); ok {
			return nil, e.withShortfall(ctx, err, p.UserID, tier.Cost)
		}
		return nil, err
	}
	return NewPostView(feed.HydratedPost{Post: *post}), nil
}

// RedeemDiscount handles engagement.redeem_discount
func (e *EngagementAPI) RedeemDiscount(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		UserID     int64 `json:"user_id"`
		BusinessID int64 `json:"business_id"`
		Percent    int   `json:"percent"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, NewError(ErrInvalidParams, "invalid parameters format")
	}
	if p.UserID == 0 || p.BusinessID == 0 {
		return nil, NewError(ErrInvalidParams, "missing required parameters: user_id, business_id")
	}

	offer, ok := rewards.DiscountOfferForPercent(p.Percent)
	if !ok {
		return nil, NewError(ErrInvalidParams, "unknown discount percent")
	}

	if err := e.actions.RedeemDiscount(ctx.Request.Context(), p.UserID, p.BusinessID, offer); err != nil {
		return nil, e.withShortfall(ctx, err, p.UserID, offer.Cost)
	}
	return gin.H{
		"redeemed": true,
		"label":    offer.Label,
		"percent":  offer.Percent,
		"cost":     offer.Cost,
	}, nil
}

// withShortfall decorates an insufficient-points failure with the exact
// shortfall amount so the caller can surface it.
func (e *EngagementAPI) withShortfall(ctx *gin.Context, err error, userID, cost int64) error {
	if !errors.Is(err, models.ErrInsufficientPoints) {
		return err
	}
	apiErr := NewError(CodeInsufficientPoints, "Insufficient points")
	if profile, perr := e.profiles.GetByID(ctx.Request.Context(), userID); perr == nil {
		apiErr = apiErr.WithData(gin.H{
			"cost":      cost,
			"balance":   profile.Points,
			"shortfall": cost - profile.Points,
		})
	}
	return apiErr
}
