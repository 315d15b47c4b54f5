package keyset

// CursorForRecord produces the same cursor Paginate would emit for row as a
// page boundary (spec §6's "per-record cursor"). Useful for building a
// direct link to "the page starting right after this row" without having
// run a query at all.
func CursorForRecord[T any](fields Fields, row T, valueFunc ValueFunc) (string, error) {
	if valueFunc == nil {
		valueFunc = DefaultValueFunc
	}

	var zero T
	resolved, err := resolveFieldTypes(fields, DefaultTypeFunc(&zero))
	if err != nil {
		return "", err
	}

	values, err := boundaryValues(resolved, row, valueFunc)
	if err != nil {
		return "", err
	}

	return EncodeCursor(values).String(), nil
}
