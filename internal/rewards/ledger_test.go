package rewards

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/pawpost/pawpost/internal/models"
)

// fakeBalances applies point mutations against an in-memory map with the
// same atomic-conditional semantics the repository enforces in SQL.
type fakeBalances struct {
	points map[int64]int64
}

func newFakeBalances() *fakeBalances {
	return &fakeBalances{points: make(map[int64]int64)}
}

func (f *fakeBalances) AddPoints(_ context.Context, profileID int64, delta int64) error {
	if _, ok := f.points[profileID]; !ok {
		return models.ErrNotFound
	}
	f.points[profileID] += delta
	return nil
}

func (f *fakeBalances) SpendPoints(_ context.Context, profileID int64, amount int64) error {
	balance, ok := f.points[profileID]
	if !ok {
		return models.ErrNotFound
	}
	if balance < amount {
		return models.ErrInsufficientPoints
	}
	f.points[profileID] = balance - amount
	return nil
}

func TestLedgerCredit(t *testing.T) {
	balances := newFakeBalances()
	balances.points[1] = 10
	ledger := NewLedger(balances, zap.NewNop())

	if err := ledger.Credit(context.Background(), 1, 2); err != nil {
		t.Fatalf("Credit() error = %v", err)
	}
	if balances.points[1] != 12 {
		t.Errorf("balance = %d, want 12", balances.points[1])
	}

	if err := ledger.Credit(context.Background(), 1, 0); err == nil {
		t.Error("Credit(0) should be rejected")
	}
	if err := ledger.Credit(context.Background(), 1, -5); err == nil {
		t.Error("Credit(-5) should be rejected")
	}

	err := ledger.Credit(context.Background(), 99, 1)
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Credit to missing profile = %v, want ErrNotFound", err)
	}
}

func TestLedgerDebit(t *testing.T) {
	tests := []struct {
		name        string
		balance     int64
		amount      int64
		wantErr     error
		wantBalance int64
	}{
		{name: "exact balance drains to zero", balance: 50, amount: 50, wantBalance: 0},
		{name: "partial debit", balance: 50, amount: 10, wantBalance: 40},
		{name: "one below cost fails", balance: 49, amount: 50, wantErr: models.ErrInsufficientPoints, wantBalance: 49},
		{name: "zero balance fails", balance: 0, amount: 1, wantErr: models.ErrInsufficientPoints, wantBalance: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances := newFakeBalances()
			balances.points[1] = tt.balance
			ledger := NewLedger(balances, zap.NewNop())

			err := ledger.Debit(context.Background(), 1, tt.amount)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Debit() error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("Debit() error = %v", err)
			}
			if balances.points[1] != tt.wantBalance {
				t.Errorf("balance = %d, want %d", balances.points[1], tt.wantBalance)
			}
		})
	}
}
