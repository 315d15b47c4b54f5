package keyset

// Metadata carries the cursors and bookkeeping a caller needs to keep
// walking a paginated result set (spec §3).
type Metadata struct {
	// Before, if non-empty, fetches the page preceding this one.
	Before string
	// After, if non-empty, fetches the page following this one.
	After string
	// Limit is the effective (clamped) limit used for this page.
	Limit int
	// Total is the row count, populated only when WithTotal was set.
	Total *int64
}

// Page is the result container returned by Paginate.
type Page[T any] struct {
	Entries  []T
	Metadata Metadata
}

// assemblePage implements spec §4.6: truncate the limit+1 lookahead result,
// undo the ORDER BY inversion applied for a lone `before` cursor, and derive
// the before/after cursors per the situation table.
func assemblePage[T any](cfg *Config, rows []T) (Page[T], error) {
	walkingBackward := cfg.reversedByBeforeAlone()

	notFullPage := len(rows) <= cfg.limit
	entries := rows
	if !notFullPage {
		entries = rows[:cfg.limit]
	}

	if walkingBackward {
		reverseInPlace(entries)
	}

	meta := Metadata{Limit: cfg.limit}

	if len(entries) == 0 {
		return Page[T]{Entries: entries, Metadata: meta}, nil
	}

	hasAfterInput := !cfg.after.IsEmpty()
	hasBeforeInput := !cfg.before.IsEmpty()

	firstCursor, err := cursorForEntry(cfg, entries[0])
	if err != nil {
		return Page[T]{}, err
	}
	lastCursor, err := cursorForEntry(cfg, entries[len(entries)-1])
	if err != nil {
		return Page[T]{}, err
	}

	switch {
	case hasAfterInput && hasBeforeInput:
		meta.Before = firstCursor
		meta.After = lastCursor
	case hasAfterInput:
		meta.Before = firstCursor
		if !notFullPage {
			meta.After = lastCursor
		}
	case hasBeforeInput:
		meta.After = lastCursor
		if !notFullPage {
			meta.Before = firstCursor
		}
	default:
		if !notFullPage {
			meta.After = lastCursor
		}
	}

	return Page[T]{Entries: entries, Metadata: meta}, nil
}

func cursorForEntry[T any](cfg *Config, row T) (string, error) {
	values, err := boundaryValues(cfg.fields, row, cfg.valueFunc)
	if err != nil {
		return "", err
	}
	return EncodeCursor(values).String(), nil
}

func reverseInPlace[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
