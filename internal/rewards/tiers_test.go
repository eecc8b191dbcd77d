package rewards

import (
	"testing"
	"time"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		name            string
		points          int64
		expectedName    string
		expectedPercent int
	}{
		{name: "zero points", points: 0, expectedName: "Starter", expectedPercent: 0},
		{name: "just below bronze", points: 49, expectedName: "Starter", expectedPercent: 0},
		{name: "bronze lower bound inclusive", points: 50, expectedName: "Bronze", expectedPercent: 5},
		{name: "mid bronze", points: 99, expectedName: "Bronze", expectedPercent: 5},
		{name: "silver lower bound", points: 100, expectedName: "Silver", expectedPercent: 10},
		{name: "gold lower bound", points: 200, expectedName: "Gold", expectedPercent: 15},
		{name: "just below platinum", points: 499, expectedName: "Gold", expectedPercent: 15},
		{name: "platinum lower bound", points: 500, expectedName: "Platinum", expectedPercent: 25},
		{name: "far above top breakpoint", points: 100000, expectedName: "Platinum", expectedPercent: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier := TierFor(tt.points)
			if tier.Name != tt.expectedName {
				t.Errorf("TierFor(%d).Name = %q, want %q", tt.points, tier.Name, tt.expectedName)
			}
			if tier.DiscountPercent != tt.expectedPercent {
				t.Errorf("TierFor(%d).DiscountPercent = %d, want %d", tt.points, tier.DiscountPercent, tt.expectedPercent)
			}
		})
	}
}

func TestBoostTierForLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    int64
		ok       bool
		cost     int64
		duration time.Duration
	}{
		{name: "level 1", level: 1, ok: true, cost: 10, duration: 2 * time.Hour},
		{name: "level 2", level: 2, ok: true, cost: 25, duration: 6 * time.Hour},
		{name: "level 3", level: 3, ok: true, cost: 50, duration: 24 * time.Hour},
		{name: "unknown level", level: 4, ok: false},
		{name: "zero level", level: 0, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, ok := BoostTierForLevel(tt.level)
			if ok != tt.ok {
				t.Fatalf("BoostTierForLevel(%d) ok = %v, want %v", tt.level, ok, tt.ok)
			}
			if !ok {
				return
			}
			if tier.Cost != tt.cost {
				t.Errorf("BoostTierForLevel(%d).Cost = %d, want %d", tt.level, tier.Cost, tt.cost)
			}
			if tier.Duration != tt.duration {
				t.Errorf("BoostTierForLevel(%d).Duration = %v, want %v", tt.level, tier.Duration, tt.duration)
			}
		})
	}
}

func TestDiscountOfferForPercent(t *testing.T) {
	offer, ok := DiscountOfferForPercent(10)
	if !ok {
		t.Fatal("expected an offer for 10 percent")
	}
	if offer.Cost != 25 {
		t.Errorf("offer.Cost = %d, want 25", offer.Cost)
	}
	if offer.Label != "Silver Discount" {
		t.Errorf("offer.Label = %q, want %q", offer.Label, "Silver Discount")
	}

	if _, ok := DiscountOfferForPercent(42); ok {
		t.Error("expected no offer for 42 percent")
	}
}

func TestDiscountOffersCopy(t *testing.T) {
	offers := DiscountOffers()
	if len(offers) != 4 {
		t.Fatalf("len(DiscountOffers()) = %d, want 4", len(offers))
	}
	offers[0].Cost = 999
	if fresh := DiscountOffers(); fresh[0].Cost == 999 {
		t.Error("mutating the returned slice must not change the table")
	}
}
