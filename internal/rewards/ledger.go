package rewards

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// BalanceStore applies point mutations to durable profile balances. Both
// operations must be atomic against the stored balance; implementations must
// not read-modify-write.
type BalanceStore interface {
	// AddPoints increments a balance by delta.
	AddPoints(ctx context.Context, profileID int64, delta int64) error
	// SpendPoints decrements a balance by amount, failing with
	// models.ErrInsufficientPoints when amount exceeds the balance. The
	// decrement is the affordability check; callers must not pre-check.
	SpendPoints(ctx context.Context, profileID int64, amount int64) error
}

// Ledger mutates profile point balances as a side effect of engagement
// events. Balances never go negative; Debit is the sole gate.
type Ledger struct {
	balances BalanceStore
	logger   *zap.Logger
}

// NewLedger creates a new ledger
func NewLedger(balances BalanceStore, logger *zap.Logger) *Ledger {
	return &Ledger{
		balances: balances,
		logger:   logger.With(zap.String("component", "reward-ledger")),
	}
}

// Credit adds points to a profile's balance
func (l *Ledger) Credit(ctx context.Context, profileID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("credit amount must be positive, got %d", amount)
	}
	if err := l.balances.AddPoints(ctx, profileID, amount); err != nil {
		return fmt.Errorf("credit %d points to profile %d: %w", amount, profileID, err)
	}
	l.logger.Debug("credited points",
		zap.Int64("profile_id", profileID),
		zap.Int64("amount", amount))
	return nil
}

// Debit removes points from a profile's balance. Either the full amount is
// debited or none is.
func (l *Ledger) Debit(ctx context.Context, profileID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("debit amount must be positive, got %d", amount)
	}
	if err := l.balances.SpendPoints(ctx, profileID, amount); err != nil {
		return fmt.Errorf("debit %d points from profile %d: %w", amount, profileID, err)
	}
	l.logger.Debug("debited points",
		zap.Int64("profile_id", profileID),
		zap.Int64("amount", amount))
	return nil
}
