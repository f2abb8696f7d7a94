package plan

// LimitsChange represents a change in one feature's ceiling.
type LimitsChange struct {
	From int64
	To   int64
}

// LimitsDiff contains the differences between two limits records.
// Used to validate downgrades and communicate changes to users.
type LimitsDiff struct {
	Increased       map[Feature]LimitsChange
	Decreased       map[Feature]LimitsChange
	GainedFeatures  []Feature
	LostFeatures    []Feature
}

// HasDecreases returns true if any ceiling shrinks or a flag is lost.
func (d *LimitsDiff) HasDecreases() bool {
	return len(d.Decreased) > 0 || len(d.LostFeatures) > 0
}

// CompareLimits returns the differences between current and target limits.
// Going from unlimited to any finite ceiling counts as a decrease so a
// downgrade never silently strips unlimited access.
func CompareLimits(current, target Limits) *LimitsDiff {
	diff := &LimitsDiff{
		Increased: make(map[Feature]LimitsChange),
		Decreased: make(map[Feature]LimitsChange),
	}

	for _, f := range MeteredFeatures() {
		from, _ := current.Max(f)
		to, _ := target.Max(f)
		if from == to {
			continue
		}

		change := LimitsChange{From: from, To: to}
		switch {
		case from == Unlimited:
			diff.Decreased[f] = change
		case to == Unlimited:
			diff.Increased[f] = change
		case to > from:
			diff.Increased[f] = change
		default:
			diff.Decreased[f] = change
		}
	}

	for _, f := range []Feature{FeatureAdvancedAnalytics, FeatureAPIAccess} {
		from, _ := current.Enabled(f)
		to, _ := target.Enabled(f)
		switch {
		case !from && to:
			diff.GainedFeatures = append(diff.GainedFeatures, f)
		case from && !to:
			diff.LostFeatures = append(diff.LostFeatures, f)
		}
	}

	return diff
}
