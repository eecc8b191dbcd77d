package api

import (
	"context"
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/pawpost/pawpost/internal/models"
	"github.com/pawpost/pawpost/internal/rewards"
)

// ProfileReader loads profiles for tier reads and error decoration
type ProfileReader interface {
	GetByID(ctx context.Context, id int64) (*models.Profile, error)
}

// ProfileAPI provides profile query methods
type ProfileAPI struct {
	profiles ProfileReader
}

// NewProfileAPI creates a new profile API
func NewProfileAPI(profiles ProfileReader) *ProfileAPI {
	return &ProfileAPI{profiles: profiles}
}

// Get handles profile.get
func (pr *ProfileAPI) Get(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		ProfileID int64 `json:"profile_id"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, NewError(ErrInvalidParams, "invalid parameters format")
	}
	if p.ProfileID == 0 {
		return nil, NewError(ErrInvalidParams, "missing required parameter: profile_id")
	}

	profile, err := pr.profiles.GetByID(ctx.Request.Context(), p.ProfileID)
	if err != nil {
		return nil, err
	}

	view := NewProfileView(profile)
	// Tier is derived on every read, never stored
	tier := NewTierView(rewards.TierFor(profile.Points))
	return gin.H{
		"profile": view,
		"tier":    tier,
	}, nil
}

// GetTier handles profile.get_tier. Accepts either an explicit point balance
// or a profile to read the balance from.
func (pr *ProfileAPI) GetTier(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		ProfileID *int64 `json:"profile_id"`
		Points    *int64 `json:"points"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, NewError(ErrInvalidParams, "invalid parameters format")
	}

	var points int64
	switch {
	case p.Points != nil:
		points = *p.Points
	case p.ProfileID != nil:
		profile, err := pr.profiles.GetByID(ctx.Request.Context(), *p.ProfileID)
		if err != nil {
			return nil, err
		}
		points = profile.Points
	default:
		return nil, NewError(ErrInvalidParams, "missing required parameter: profile_id or points")
	}

	return NewTierView(rewards.TierFor(points)), nil
}
