package engagement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pawpost/pawpost/internal/models"
	"github.com/pawpost/pawpost/internal/rewards"
)

// PostStore reads and mutates post rows
type PostStore interface {
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	SetBoost(ctx context.Context, postID int64, until time.Time, level int64) error
	AddHelpfulCount(ctx context.Context, postID int64, delta int64) error
}

// MarkStore mutates a (user, post) engagement pair with a uniqueness
// constraint: Insert returns models.ErrDuplicate when the pair exists,
// Delete reports whether a row was removed. Likes and helpful marks share
// this shape.
type MarkStore interface {
	Insert(ctx context.Context, userID, postID int64) error
	Delete(ctx context.Context, userID, postID int64) (bool, error)
}

// CommentStore appends comment rows
type CommentStore interface {
	Insert(ctx context.Context, comment *models.Comment) error
}

// ProfileStore reads profile rows
type ProfileStore interface {
	GetByID(ctx context.Context, id int64) (*models.Profile, error)
}

// BoardStore reads board rows
type BoardStore interface {
	GetByID(ctx context.Context, id int64) (*models.Board, error)
}

// SavedPostStore appends saved-post rows, rejecting duplicates with
// models.ErrDuplicate
type SavedPostStore interface {
	Insert(ctx context.Context, saved *models.SavedPost) error
}

// MessageStore appends message rows
type MessageStore interface {
	Insert(ctx context.Context, message *models.Message) error
}

// NotificationStore appends notification rows
type NotificationStore interface {
	Insert(ctx context.Context, notification *models.Notification) error
}

// Actions implements the engagement operations: toggles, comments, saves,
// and point redemptions. Every operation takes the acting profile's ID
// explicitly; there is no ambient current-user state.
type Actions struct {
	posts         PostStore
	likes         MarkStore
	helpful       MarkStore
	comments      CommentStore
	profiles      ProfileStore
	boards        BoardStore
	saved         SavedPostStore
	messages      MessageStore
	notifications NotificationStore
	ledger        *rewards.Ledger
	now           func() time.Time
	logger        *zap.Logger
}

// NewActions creates the engagement action handlers
func NewActions(
	posts PostStore,
	likes MarkStore,
	helpful MarkStore,
	comments CommentStore,
	profiles ProfileStore,
	boards BoardStore,
	saved SavedPostStore,
	messages MessageStore,
	notifications NotificationStore,
	ledger *rewards.Ledger,
	now func() time.Time,
	logger *zap.Logger,
) *Actions {
	if now == nil {
		now = time.Now
	}
	return &Actions{
		posts:         posts,
		likes:         likes,
		helpful:       helpful,
		comments:      comments,
		profiles:      profiles,
		boards:        boards,
		saved:         saved,
		messages:      messages,
		notifications: notifications,
		ledger:        ledger,
		now:           now,
		logger:        logger.With(zap.String("component", "engagement")),
	}
}

// ToggleLike flips the like state for (userID, postID). Inserting credits the
// post's author one point unless the actor is the author; removing never
// claws the point back. Returns whether the post is liked afterwards.
func (a *Actions) ToggleLike(ctx context.Context, userID, postID int64) (bool, error) {
	return a.toggleMark(ctx, a.likes, userID, postID, rewards.PointsPerLike, models.NotifyTypeLike, false)
}

// ToggleHelpful flips the helpful-mark state for (userID, postID). Inserting
// credits the author two points unless self; the denormalized helpful_count
// moves with the mark in both directions. Returns whether the post is marked
// afterwards.
func (a *Actions) ToggleHelpful(ctx context.Context, userID, postID int64) (bool, error) {
	return a.toggleMark(ctx, a.helpful, userID, postID, rewards.PointsPerHelpful, models.NotifyTypeHelpful, true)
}

func (a *Actions) toggleMark(ctx context.Context, marks MarkStore, userID, postID, credit int64, notifyType string, counted bool) (bool, error) {
	post, err := a.posts.GetByID(ctx, postID)
	if err != nil {
		return false, err
	}

	// Present -> Absent: remove the mark, no point adjustment
	deleted, err := marks.Delete(ctx, userID, postID)
	if err != nil {
		return false, err
	}
	if deleted {
		if counted {
			if err := a.posts.AddHelpfulCount(ctx, postID, -1); err != nil {
				return false, err
			}
		}
		return false, nil
	}

	// Absent -> Present
	if err := marks.Insert(ctx, userID, postID); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			// A concurrent toggle won the insert; the intent "ensure
			// marked" is satisfied, and the winner credited the author.
			return true, nil
		}
		return false, err
	}
	if counted {
		if err := a.posts.AddHelpfulCount(ctx, postID, 1); err != nil {
			return true, err
		}
	}
	if post.AuthorID != userID {
		if err := a.ledger.Credit(ctx, post.AuthorID, credit); err != nil {
			// The mark landed but the reward did not; surface the
			// divergence instead of hiding it.
			return true, err
		}
		a.notify(ctx, post.AuthorID, notifyType, postID)
	}
	return true, nil
}

// AddComment appends a comment and credits the post's author one point unless
// the actor is the author. The comment is the primary effect: a reward credit
// that fails only because the author profile is missing does not fail the
// comment.
func (a *Actions) AddComment(ctx context.Context, userID, postID int64, content string, parentID *int64) (*models.Comment, error) {
	post, err := a.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: userID,
		Content:  content,
	}
	if parentID != nil {
		comment.ParentID = sql.NullInt64{Int64: *parentID, Valid: true}
	}
	if err := a.comments.Insert(ctx, comment); err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	if post.AuthorID != userID {
		if err := a.ledger.Credit(ctx, post.AuthorID, rewards.PointsPerComment); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				a.logger.Warn("comment reward skipped, author profile missing",
					zap.Int64("post_id", postID),
					zap.Int64("author_id", post.AuthorID))
				return comment, nil
			}
			return nil, err
		}
		a.notify(ctx, post.AuthorID, models.NotifyTypeComment, postID)
	}
	return comment, nil
}

// RedeemBoost promotes a post. Only the post's author may boost it, only a
// business profile is eligible, and the tier cost is debited before the boost
// window is stamped; the debit itself is the affordability check.
func (a *Actions) RedeemBoost(ctx context.Context, actorID, postID, level int64) (*models.Post, error) {
	tier, ok := rewards.BoostTierForLevel(level)
	if !ok {
		return nil, fmt.Errorf("unknown boost level %d: %w", level, models.ErrNotFound)
	}

	post, err := a.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	actor, err := a.profiles.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actorID {
		return nil, fmt.Errorf("profile %d does not own post %d: %w", actorID, postID, models.ErrNotAuthorized)
	}
	if !actor.IsBusiness {
		return nil, fmt.Errorf("profile %d is not a business account: %w", actorID, models.ErrNotAuthorized)
	}

	if err := a.ledger.Debit(ctx, actorID, tier.Cost); err != nil {
		return nil, err
	}

	until := a.now().Add(tier.Duration)
	if err := a.posts.SetBoost(ctx, postID, until, tier.Level); err != nil {
		// Points are gone but the boost write failed; surface it.
		return nil, fmt.Errorf("boost write failed after debit: %w", err)
	}

	post.BoostUntil = sql.NullTime{Time: until, Valid: true}
	post.BoostLevel = sql.NullInt64{Int64: tier.Level, Valid: true}

	a.logger.Info("post boosted",
		zap.Int64("post_id", postID),
		zap.Int64("level", tier.Level),
		zap.Time("until", until))
	return post, nil
}

// RedeemDiscount spends points on a discount at a business and appends the
// receipt as a chat message from the actor to the business. The message is
// the redemption record; there is no separate entity.
func (a *Actions) RedeemDiscount(ctx context.Context, userID, businessID int64, offer rewards.DiscountOffer) error {
	business, err := a.profiles.GetByID(ctx, businessID)
	if err != nil {
		return err
	}

	if err := a.ledger.Debit(ctx, userID, offer.Cost); err != nil {
		return err
	}

	receipt := fmt.Sprintf(
		"DISCOUNT REDEEMED!\n\n%s: %d%% OFF\nBusiness: %s\nPoints Used: %d\n\nShow this message to redeem your discount!",
		offer.Label, offer.Percent, business.DisplayName(), offer.Cost,
	)
	msg := &models.Message{
		SenderID:   userID,
		ReceiverID: businessID,
		Content:    receipt,
	}
	if err := a.messages.Insert(ctx, msg); err != nil {
		// Points are gone but the receipt failed; surface it.
		return fmt.Errorf("receipt message failed after debit: %w", err)
	}

	a.logger.Info("discount redeemed",
		zap.Int64("user_id", userID),
		zap.Int64("business_id", businessID),
		zap.Int64("cost", offer.Cost))
	return nil
}

// SavePost saves a post for a user, optionally onto one of the user's own
// boards. A duplicate save on the same board is an explicit rejection, not a
// silent no-op.
func (a *Actions) SavePost(ctx context.Context, userID, postID int64, boardID *int64) error {
	if _, err := a.posts.GetByID(ctx, postID); err != nil {
		return err
	}

	saved := &models.SavedPost{UserID: userID, PostID: postID}
	if boardID != nil {
		board, err := a.boards.GetByID(ctx, *boardID)
		if err != nil {
			return err
		}
		if board.OwnerID != userID {
			return fmt.Errorf("board %d is not owned by profile %d: %w", *boardID, userID, models.ErrNotAuthorized)
		}
		saved.BoardID = sql.NullInt64{Int64: *boardID, Valid: true}
	}
	return a.saved.Insert(ctx, saved)
}

// notify writes an in-app notification, best effort. A failed write never
// fails the action that produced it.
func (a *Actions) notify(ctx context.Context, userID int64, notifyType string, postID int64) {
	var title string
	switch notifyType {
	case models.NotifyTypeLike:
		title = "Someone liked your post"
	case models.NotifyTypeHelpful:
		title = "Someone found your post helpful"
	case models.NotifyTypeComment:
		title = "New comment on your post"
	default:
		title = "New activity on your post"
	}
	n := &models.Notification{
		UserID:    userID,
		Type:      notifyType,
		Title:     title,
		RelatedID: sql.NullInt64{Int64: postID, Valid: true},
	}
	if err := a.notifications.Insert(ctx, n); err != nil {
		a.logger.Warn("notification write failed",
			zap.String("type", notifyType),
			zap.Int64("user_id", userID),
			zap.Error(err))
	}
}
