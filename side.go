package keyset

// Side identifies which cursor a seek predicate is being built for. It
// selects the column of the operator table in forOperator.
type Side string

const (
	// After selects rows strictly after the boundary row (forward walk).
	After Side = "after"
	// Before selects rows strictly before the boundary row (backward walk).
	Before Side = "before"
)

func (s Side) Valid() bool {
	return s == After || s == Before
}
