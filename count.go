package keyset

import (
	"fmt"

	"gorm.io/gorm"
)

// countTotal implements spec §4.7: an auxiliary query derived from the
// input, executed independently and never used to drive pagination logic.
//
// Steps: strip preloads and ORDER BY; if the query groups by a column,
// count groups instead of rows; if it's DISTINCT with no GROUP BY, count
// the outer wrap of the untouched SELECT (spec §9's flagged, unconfirmed
// behavior); otherwise replace SELECT with count(*).
func countTotal(q OrderedQuery, cfg *Config) (int64, error) {
	stripped := q.StripPreload().StripOrderBy()

	if table, column, ok := stripped.GroupBy(); ok {
		return countGroups(stripped, table, column)
	}

	if stripped.Distinct() {
		return countDistinctSubquery(stripped)
	}

	return stripped.StripSelect().ExecuteScalar()
}

// gormDB extracts the concrete *gorm.DB backing an OrderedQuery. The count
// driver is the one component spec §9 calls out as inherently
// query-library-specific -- building a derived-table subquery has no
// sensible expression in the abstract OrderedQuery interface, so it drops
// down to the concrete gorm driver, the same way a second SQL builder would
// implement its own countTotal against its own primitives.
func gormDB(q OrderedQuery) (*gorm.DB, error) {
	gq, ok := q.(*gormQuery)
	if !ok {
		return nil, fmt.Errorf("keyset: count driver requires the gorm OrderedQuery implementation")
	}
	return gq.db, nil
}

// countGroups rewrites SELECT to the grouped column alone and counts the
// resulting rows (spec §4.7 step 3: "counting groups").
func countGroups(q OrderedQuery, table, column string) (int64, error) {
	db, err := gormDB(q)
	if err != nil {
		return 0, err
	}

	col := column
	if table != "" {
		col = fmt.Sprintf("%s.%s", table, column)
	}

	var n int64
	sub := db.Session(&gorm.Session{NewDB: true}).Table("(?) AS grouped", db.Select(col))
	if err := sub.Count(&n).Error; err != nil {
		return 0, &ExecutorError{Op: "count-groups", Err: err}
	}
	return n, nil
}

// countDistinctSubquery wraps the full statement (SELECT intact) in a
// derived table and counts the outer query, per spec §9's unconfirmed
// preference for plain DISTINCT-true counting.
func countDistinctSubquery(q OrderedQuery) (int64, error) {
	db, err := gormDB(q)
	if err != nil {
		return 0, err
	}

	var n int64
	sub := db.Session(&gorm.Session{NewDB: true}).Table("(?) AS distinct_rows", db)
	if err := sub.Count(&n).Error; err != nil {
		return 0, &ExecutorError{Op: "count-distinct", Err: err}
	}
	return n, nil
}
