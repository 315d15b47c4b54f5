package keyset

import "gorm.io/gorm"

// Paginate is the pagination entry point (spec §6): paginate(query, options)
// -> Page. db is the caller's already-filtered, already-joined query, scoped
// to model T (Paginate calls db.Model(new(T)) if the caller hasn't).
//
// A successful call always returns a Page. Cursor corruption, an unknown
// join binding, or a missing Fields option surface as the typed errors of
// errors.go; executor failures are wrapped in ExecutorError, never retried.
func Paginate[T any](db *gorm.DB, opts ...Option) (Page[T], error) {
	var zero T
	cfg, err := buildConfig(&zero, opts...)
	if err != nil {
		return Page[T]{}, err
	}

	if db.Statement.Model == nil {
		db = db.Model(&zero)
	}
	q := NewOrderedQuery(db)

	for _, f := range cfg.fields {
		if err := mustValidAlias(q, f.Ref); err != nil {
			return Page[T]{}, err
		}
	}

	mutated, err := mutateQuery(q, cfg)
	if err != nil {
		return Page[T]{}, err
	}

	var rows []T
	if err := mutated.Execute(&rows); err != nil {
		return Page[T]{}, err
	}

	page, err := assemblePage[T](cfg, rows)
	if err != nil {
		return Page[T]{}, err
	}

	if cfg.total {
		total, err := countTotal(q, cfg)
		if err != nil {
			return Page[T]{}, err
		}
		page.Metadata.Total = &total
	}

	return page, nil
}

// mutateQuery implements spec §4.5, the query mutator:
//
//  1. Attach the seek predicate(s) to WHERE.
//  2. If before is set and after is not, reverse ORDER BY.
//  3. Set LIMIT to limit+1 (the lookahead used to detect a further page).
func mutateQuery(q OrderedQuery, cfg *Config) (OrderedQuery, error) {
	if !cfg.after.IsEmpty() {
		q = q.AppendWhere(buildSeekDNF(cfg.fields, valuesToBoundary(cfg.fields, cfg.after.Values()), After).toGORMExpression())
	}
	if !cfg.before.IsEmpty() {
		q = q.AppendWhere(buildSeekDNF(cfg.fields, valuesToBoundary(cfg.fields, cfg.before.Values()), Before).toGORMExpression())
	}

	cols, err := orderByColumns(q, cfg.effectiveFields())
	if err != nil {
		return nil, err
	}
	q = q.SetOrderBy(cols)

	q = q.SetLimit(cfg.limit + 1)

	return q, nil
}

// valuesToBoundary pairs a cursor's decoded values (in field order) back up
// with their Field metadata, for feeding into buildSeekDNF.
func valuesToBoundary(fields Fields, values []any) []BoundaryValue {
	out := make([]BoundaryValue, len(fields))
	for i, f := range fields {
		var v any
		if i < len(values) {
			v = values[i]
		}
		out[i] = BoundaryValue{Ref: f.Ref, Type: f.Type, Value: v}
	}
	return out
}
