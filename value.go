package keyset

import (
	"fmt"
	"reflect"
)

// ValueFunc pulls the runtime value of a field off a row (spec §4.3's value
// extractor). TypeTag resolution is a schema-time concern (handled once, by
// TypeFunc, when Fields are normalized) and is not part of this signature --
// a value_fn override only ever needs to say *where* the value lives on a
// given row, never re-derive its semantic type.
type ValueFunc func(row any, ref FieldRef) (any, error)

// DefaultValueFunc implements spec §4.3's default extractor:
//
//  1. A plain column is read directly off row.
//  2. A bound field first checks whether row itself carries that column
//     (the binding aliases the root entity); otherwise it descends into
//     row.Binding, assumed to be a preloaded association named identically
//     to the binding, and recurses.
//
// Second-level joins (a binding reachable only through another binding)
// aren't guessable this way; callers needing that must supply their own
// ValueFunc.
func DefaultValueFunc(row any, ref FieldRef) (any, error) {
	rv := reflect.Indirect(reflect.ValueOf(row))
	if !rv.IsValid() {
		return nil, fmt.Errorf("keyset: cannot extract %q from nil row", ref.String())
	}

	if ref.Binding == "" {
		v, ok, err := fieldValueByColumn(rv, ref.Column)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("keyset: %s has no column %q", rv.Type(), ref.Column)
		}
		return v, nil
	}

	if v, ok, err := fieldValueByColumn(rv, ref.Column); err != nil {
		return nil, err
	} else if ok {
		return v, nil
	}

	assoc := rv.FieldByName(ref.Binding)
	if !assoc.IsValid() {
		return nil, fmt.Errorf("keyset: cannot descend into binding %q on %s: no such field (preload it, or supply a custom ValueFunc)", ref.Binding, rv.Type())
	}

	return DefaultValueFunc(assoc.Interface(), FieldRef{Column: ref.Column})
}

// fieldValueByColumn maps a GORM column name to the struct field carrying it
// and returns its value. ok is false, not an error, when the row's type
// simply doesn't have that column -- callers use that to decide whether to
// descend into an association.
func fieldValueByColumn(rv reflect.Value, column string) (any, bool, error) {
	s, err := parseSchema(rv.Interface())
	if err != nil {
		return nil, false, err
	}

	field, ok := s.FieldsByDBName[column]
	if !ok {
		return nil, false, nil
	}

	fv := rv.FieldByName(field.Name)
	if !fv.IsValid() {
		return nil, false, nil
	}

	return fv.Interface(), true, nil
}
