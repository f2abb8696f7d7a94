package plan

// Tier is a named subscription level. Tiers form a total order used by
// the plan gate: free < silver < gold.
type Tier string

const (
	TierFree   Tier = "free"
	TierSilver Tier = "silver"
	TierGold   Tier = "gold"
)

// tierOrder assigns each known tier its rank. Unknown tiers rank below
// every known tier so comparisons against them always deny.
var tierOrder = map[Tier]int{
	TierFree:   0,
	TierSilver: 1,
	TierGold:   2,
}

// Order returns the tier's rank, or -1 for unknown tiers.
func (t Tier) Order() int {
	order, ok := tierOrder[t]
	if !ok {
		return -1
	}
	return order
}

// Valid reports whether the tier is one of the known tiers.
func (t Tier) Valid() bool {
	_, ok := tierOrder[t]
	return ok
}

// AtLeast reports whether the tier ranks at or above required.
// An unknown tier on either side never satisfies the check.
func (t Tier) AtLeast(required Tier) bool {
	to, ok := tierOrder[t]
	if !ok {
		return false
	}
	ro, ok := tierOrder[required]
	if !ok {
		return false
	}
	return to >= ro
}

// ParseTier validates a raw tier tag. Returns ErrUnknownPlan for tags
// outside the known set so callers can surface an "invalid plan" error
// instead of acting on a bogus value.
func ParseTier(raw string) (Tier, error) {
	t := Tier(raw)
	if !t.Valid() {
		return "", ErrUnknownPlan
	}
	return t, nil
}
