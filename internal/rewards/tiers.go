package rewards

import "time"

// Points credited to a post's author per engagement event. Self-engagement
// never credits, and removing engagement never claws back.
const (
	PointsPerLike    = 1
	PointsPerHelpful = 2
	PointsPerComment = 1
)

// Tier is a reward tier derived from a point balance. Never stored; always
// recomputed from the breakpoint table.
type Tier struct {
	Name            string
	MinPoints       int64
	DiscountPercent int
}

// Breakpoints are inclusive on the lower bound.
var discountTiers = []Tier{
	{Name: "Starter", MinPoints: 0, DiscountPercent: 0},
	{Name: "Bronze", MinPoints: 50, DiscountPercent: 5},
	{Name: "Silver", MinPoints: 100, DiscountPercent: 10},
	{Name: "Gold", MinPoints: 200, DiscountPercent: 15},
	{Name: "Platinum", MinPoints: 500, DiscountPercent: 25},
}

// TierFor maps a point balance to its reward tier. Pure and total: every
// non-negative balance maps to exactly one tier, and balances below the
// lowest breakpoint land on Starter.
func TierFor(points int64) Tier {
	tier := discountTiers[0]
	for _, t := range discountTiers {
		if points >= t.MinPoints {
			tier = t
		}
	}
	return tier
}

// BoostTier is a purchasable promotion window for a post. Higher level means
// more prominent placement.
type BoostTier struct {
	Level    int64
	Cost     int64
	Duration time.Duration
}

var boostTiers = []BoostTier{
	{Level: 1, Cost: 10, Duration: 2 * time.Hour},
	{Level: 2, Cost: 25, Duration: 6 * time.Hour},
	{Level: 3, Cost: 50, Duration: 24 * time.Hour},
}

// BoostTierForLevel looks up a boost tier by level
func BoostTierForLevel(level int64) (BoostTier, bool) {
	for _, t := range boostTiers {
		if t.Level == level {
			return t, true
		}
	}
	return BoostTier{}, false
}

// DiscountOffer is a redeemable discount, spent in chat with a business.
type DiscountOffer struct {
	Label   string
	Cost    int64
	Percent int
}

var discountOffers = []DiscountOffer{
	{Label: "Bronze Discount", Cost: 10, Percent: 5},
	{Label: "Silver Discount", Cost: 25, Percent: 10},
	{Label: "Gold Discount", Cost: 50, Percent: 15},
	{Label: "Platinum Discount", Cost: 100, Percent: 25},
}

// DiscountOffers returns the fixed redemption table
func DiscountOffers() []DiscountOffer {
	offers := make([]DiscountOffer, len(discountOffers))
	copy(offers, discountOffers)
	return offers
}

// DiscountOfferForPercent looks up an offer by its discount percent
func DiscountOfferForPercent(percent int) (DiscountOffer, bool) {
	for _, o := range discountOffers {
		if o.Percent == percent {
			return o, true
		}
	}
	return DiscountOffer{}, false
}
