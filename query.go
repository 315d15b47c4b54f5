package keyset

import (
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderedQuery is the query-expression collaborator of spec §1(c) / §6,
// abstracted behind Design Note 9's five primitives (append-where, set-limit,
// read-and-replace-order-by, strip-clause, lookup-alias) plus the two
// execution operations of the executor contract. gormQuery is the only
// concrete driver; a second SQL builder would implement the same interface.
type OrderedQuery interface {
	AppendWhere(expr clause.Expression) OrderedQuery
	SetLimit(n int) OrderedQuery
	OrderBy() []clause.OrderByColumn
	SetOrderBy(cols []clause.OrderByColumn) OrderedQuery
	StripPreload() OrderedQuery
	StripOrderBy() OrderedQuery
	StripSelect() OrderedQuery
	Distinct() bool
	GroupBy() (table, column string, ok bool)
	LookupAlias(binding string) (known []string, ok bool)
	Execute(dest any) error
	ExecuteScalar() (int64, error)
}

// gormQuery adapts *gorm.DB to OrderedQuery. Every mutator returns a new
// gormQuery wrapping the *gorm.DB GORM itself returns, mirroring the
// teacher's own `db = orderings.Apply(db); db = cursor.Apply(db)` style in
// cursor_pager.go, rather than mutating a shared session in place.
type gormQuery struct {
	db *gorm.DB
}

// NewOrderedQuery wraps a *gorm.DB (already carrying whatever joins,
// filters and Model the caller needs) as an OrderedQuery.
func NewOrderedQuery(db *gorm.DB) OrderedQuery {
	return &gormQuery{db: db}
}

func (q *gormQuery) AppendWhere(expr clause.Expression) OrderedQuery {
	if expr == nil {
		return q
	}
	return &gormQuery{db: q.db.Clauses(expr)}
}

func (q *gormQuery) SetLimit(n int) OrderedQuery {
	return &gormQuery{db: q.db.Limit(n)}
}

func (q *gormQuery) OrderBy() []clause.OrderByColumn {
	if orderClause, ok := q.db.Statement.Clauses["ORDER BY"]; ok {
		if o, ok := orderClause.Expression.(clause.OrderBy); ok {
			return o.Columns
		}
	}
	return nil
}

// cloneStatement returns a *gorm.DB with its own copy of the Statement, so
// that direct field surgery (deleting a clause, clearing Preloads) below
// never mutates the caller's original query. GORM exports no Statement
// clone method; opening a Session with a non-nil Context makes GORM
// deep-copy the Statement through its own internal clone.
func cloneStatement(db *gorm.DB) *gorm.DB {
	tx := db.Session(&gorm.Session{Context: db.Statement.Context})
	tx.Statement.DB = tx
	return tx
}

func (q *gormQuery) SetOrderBy(cols []clause.OrderByColumn) OrderedQuery {
	db := cloneStatement(q.db)
	delete(db.Statement.Clauses, "ORDER BY")
	return &gormQuery{db: db.Clauses(clause.OrderBy{Columns: cols})}
}

func (q *gormQuery) StripPreload() OrderedQuery {
	db := cloneStatement(q.db)
	db.Statement.Preloads = nil
	return &gormQuery{db: db}
}

func (q *gormQuery) StripOrderBy() OrderedQuery {
	db := cloneStatement(q.db)
	delete(db.Statement.Clauses, "ORDER BY")
	return &gormQuery{db: db}
}

func (q *gormQuery) StripSelect() OrderedQuery {
	db := cloneStatement(q.db)
	delete(db.Statement.Clauses, "SELECT")
	return &gormQuery{db: db}
}

// Distinct reports whether the caller chained .Distinct(...) onto the
// query. This reads Statement.Distinct directly rather than looking for a
// built "SELECT" clause: db.Distinct("col") only records the flag and the
// selected column list on the Statement itself (see gorm's chainable_api.go)
// -- the clause.Select carrying Distinct is only assembled later, during
// the query-building callback that runs at Find/Count time, which hasn't
// happened yet for a query handed to the count driver.
func (q *gormQuery) Distinct() bool {
	return q.db.Statement.Distinct
}

func (q *gormQuery) GroupBy() (table, column string, ok bool) {
	groupClause, has := q.db.Statement.Clauses["GROUP BY"]
	if !has {
		return "", "", false
	}
	g, ok := groupClause.Expression.(clause.GroupBy)
	if !ok || len(g.Columns) == 0 {
		return "", "", false
	}
	col := g.Columns[0]
	return col.Table, col.Name, true
}

// LookupAlias resolves binding against the query's schema relationships,
// approximating GORM's own convention of naming a joined association's SQL
// alias after the Go relationship name (`db.Joins("Orders")` produces the
// alias `Orders`).
func (q *gormQuery) LookupAlias(binding string) (known []string, ok bool) {
	if q.db.Statement.Schema == nil {
		if err := q.db.Statement.Parse(q.db.Statement.Model); err != nil {
			return nil, false
		}
	}
	if q.db.Statement.Schema == nil {
		return nil, false
	}

	known = lo.Keys(q.db.Statement.Schema.Relationships.Relations)
	_, ok = q.db.Statement.Schema.Relationships.Relations[binding]
	return known, ok
}

func (q *gormQuery) Execute(dest any) error {
	if err := q.db.Find(dest).Error; err != nil {
		return &ExecutorError{Op: "rows", Err: err}
	}
	return nil
}

func (q *gormQuery) ExecuteScalar() (int64, error) {
	var n int64
	if err := q.db.Count(&n).Error; err != nil {
		return 0, &ExecutorError{Op: "count", Err: err}
	}
	return n, nil
}

// orderByColumns builds gorm's clause.OrderByColumn list from Fields,
// resolving each field's binding against the query and raising
// UnknownBindingError with a Levenshtein-nearest suggestion when a binding
// isn't declared on the query.
func orderByColumns(q OrderedQuery, fields Fields) ([]clause.OrderByColumn, error) {
	cols := make([]clause.OrderByColumn, 0, len(fields))
	for _, f := range fields {
		if f.Ref.Binding != "" {
			known, ok := q.LookupAlias(f.Ref.Binding)
			if !ok {
				return nil, &UnknownBindingError{
					Name:    f.Ref.Binding,
					Known:   known,
					Closest: closestAlias(f.Ref.Binding, known),
				}
			}
		}
		cols = append(cols, clause.OrderByColumn{
			Column: clause.Column{Table: f.Ref.Binding, Name: f.Ref.Column},
			Desc:   f.Direction == DirectionDESC,
		})
	}
	return cols, nil
}

func mustValidAlias(q OrderedQuery, ref FieldRef) error {
	if ref.Binding == "" {
		return nil
	}
	known, ok := q.LookupAlias(ref.Binding)
	if !ok {
		return &UnknownBindingError{Name: ref.Binding, Known: known, Closest: closestAlias(ref.Binding, known)}
	}
	return nil
}
