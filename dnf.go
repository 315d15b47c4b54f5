package keyset

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"gorm.io/gorm/clause"
)

// conjunct, disjunct and dnf mirror the teacher's tConjunct/tDisjunct/tDNF:
// the predicate synthesizer's core data shape, generalized to carry
// alias-qualified columns (bound fields) and either operator direction
// (After/Before), instead of the teacher's forward-only ">"/"<" pair fixed
// by column direction alone.
type (
	conjunct struct {
		Column   string
		Operator Operator
		Value    any
	}

	disjunct []conjunct

	// dnf is the disjunctive normal form of the seek predicate:
	//
	//	DNF = X1 OR X2 ... OR Xn, where Xi = Ai1 AND Ai2 ... AND Aim.
	dnf []disjunct
)

// buildSeekDNF implements spec §4.4: the disjunction of prefix-equalities,
// each terminated by a strict comparison on one field, in field order.
// Fields whose boundary value is null are dropped from the chain entirely
// (spec's null-handling rule) -- they neither gate later equalities nor
// contribute their own disjunct.
func buildSeekDNF(fields Fields, values []BoundaryValue, side Side) dnf {
	type kept struct {
		field Field
		value BoundaryValue
	}

	var chain []kept
	for i, f := range fields {
		if values[i].Value == nil {
			continue
		}
		chain = append(chain, kept{field: f, value: values[i]})
	}

	out := make(dnf, 0, len(chain))
	for i := range chain {
		dj := make(disjunct, 0, i+1)
		for _, prefix := range chain[:i] {
			dj = append(dj, conjunct{
				Column:   prefix.field.Ref.String(),
				Operator: operatorEq,
				Value:    prefix.value.Value,
			})
		}
		dj = append(dj, conjunct{
			Column:   chain[i].field.Ref.String(),
			Operator: forOperator(chain[i].field.Direction, side),
			Value:    chain[i].value.Value,
		})
		out = append(out, dj)
	}

	return out
}

func (c conjunct) toGORMExpression() clause.Expression {
	sql, arg := c.toSQLClause()
	return clause.Expr{SQL: sql, Vars: []any{arg}}
}

func (c conjunct) toSQLClause() (string, driver.Value) {
	return fmt.Sprintf("%s %s ?", c.Column, c.Operator), c.Value
}

func (d disjunct) toGORMExpression() clause.Expression {
	exprs := make([]clause.Expression, 0, len(d))
	for _, c := range d {
		exprs = append(exprs, c.toGORMExpression())
	}
	switch len(exprs) {
	case 0:
		return nil
	case 1:
		return exprs[0]
	default:
		return clause.And(exprs...)
	}
}

func (d disjunct) toSQLClause() (string, []driver.Value) {
	clauses := make([]string, 0, len(d))
	values := make([]driver.Value, 0, len(d))
	for _, c := range d {
		sql, v := c.toSQLClause()
		clauses = append(clauses, sql)
		values = append(values, v)
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return fmt.Sprintf("(%s)", strings.Join(clauses, " AND ")), values
}

func (d dnf) toGORMExpression() clause.Expression {
	exprs := make([]clause.Expression, 0, len(d))
	for _, disj := range d {
		e := disj.toGORMExpression()
		if e == nil {
			continue
		}
		exprs = append(exprs, e)
	}
	switch len(exprs) {
	case 0:
		return nil
	case 1:
		return exprs[0]
	default:
		return clause.Or(exprs...)
	}
}

func (d dnf) toSQLClause() (string, []driver.Value) {
	clauses := make([]string, 0, len(d))
	var values []driver.Value
	for _, disj := range d {
		sql, v := disj.toSQLClause()
		if sql == "" {
			continue
		}
		clauses = append(clauses, sql)
		values = append(values, v...)
	}
	if len(clauses) == 0 {
		return "TRUE", nil
	}
	return fmt.Sprintf("(%s)", strings.Join(clauses, " OR ")), values
}
