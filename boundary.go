package keyset

import "fmt"

// BoundaryValue is one typed value of the boundary row's cursor tuple,
// paired with the field it came from. The teacher's CursorElement folds the
// operator into the tuple too (it targets one query family, forward-only);
// here the operator is derived at predicate-build time from (Direction,
// Side) instead, since this engine walks both directions.
type BoundaryValue struct {
	Ref  FieldRef
	Type TypeTag
	// Value is nil to mean SQL NULL, not "absent" -- absence is only
	// possible for the whole cursor (spec §4.1: "a nil/empty cursor decodes
	// to 'no cursor', distinct from 'cursor with n nulls'").
	Value any
}

// boundaryValues extracts one BoundaryValue per field from row, in field
// order, using fn. This is the "outgoing cursor" half of the value
// extractor (spec §4.3).
func boundaryValues(fields Fields, row any, fn ValueFunc) ([]BoundaryValue, error) {
	out := make([]BoundaryValue, len(fields))
	for i, f := range fields {
		v, err := fn(row, f.Ref)
		if err != nil {
			return nil, fmt.Errorf("extracting value for field %q: %w", f.Ref.String(), err)
		}
		out[i] = BoundaryValue{Ref: f.Ref, Type: f.Type, Value: v}
	}
	return out, nil
}
