package keyset

// MinLimit is the floor a requested limit is clamped to. Zero is allowed on
// purpose: it lets a caller ask for `total` alone, with no rows.
const MinLimit = 0

// DefaultLimit is used when the caller supplies no limit at all.
const DefaultLimit = 50

// DefaultLimitMax is the per-call cap applied when WithLimitMax is not given.
const DefaultLimitMax = 100

// clampLimit normalizes an explicitly-requested limit against
// [MinLimit, limitMax]. It does not special-case zero: WithLimit(0) is a
// legitimate request (e.g. paired with WithTotal, to fetch only the count).
// "no limit was requested at all" is handled one level up, in buildConfig, by
// defaulting to DefaultLimit before this ever runs.
func clampLimit(limit int, limitMax int) int {
	if limit < MinLimit {
		return MinLimit
	}
	if limit > limitMax {
		return limitMax
	}
	return limit
}
