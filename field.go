package keyset

import (
	"fmt"

	"github.com/samber/lo"
)

// Direction is the sort direction of a field.
type Direction string

const (
	DirectionASC  Direction = "ASC"
	DirectionDESC Direction = "DESC"
)

func (d Direction) Valid() bool {
	return d == DirectionASC || d == DirectionDESC
}

func (d Direction) reverse() Direction {
	if d == DirectionASC {
		return DirectionDESC
	}
	return DirectionASC
}

var _availableColumnNameSymbols = append([]rune("_.'`\""), lo.AlphanumericCharset...)

func validColumnName(column string) bool {
	return column != "" && lo.Every(_availableColumnNameSymbols, []rune(column))
}

// FieldRef names a column, optionally scoped to a join binding (alias). A
// zero-value Binding means "the root entity of the query" (spec's
// FieldRef = Plain(Name) | Bound(Name, Name), collapsed to one struct since
// Go has no native tagged union.)
type FieldRef struct {
	Binding string
	Column  string
}

func (r FieldRef) String() string {
	if r.Binding == "" {
		return r.Column
	}
	return fmt.Sprintf("%s.%s", r.Binding, r.Column)
}

// Field is the normalized four-field record of spec §3/4.2:
// (binding?, column, direction, type).
type Field struct {
	Ref       FieldRef
	Direction Direction
	Type      TypeTag
}

// FieldOption customizes a Field built by F or Bound.
type FieldOption func(*Field)

// Desc overrides the default ascending direction.
func Desc() FieldOption {
	return func(f *Field) { f.Direction = DirectionDESC }
}

// Asc is the default direction; provided for symmetry / readability at call sites.
func Asc() FieldOption {
	return func(f *Field) { f.Direction = DirectionASC }
}

// WithType pins the TypeTag explicitly instead of resolving it through the
// schema hook at Paginate time. Needed whenever the field isn't a directly
// reflectable struct field (a computed / joined column, for instance).
func WithType(t TypeTag) FieldOption {
	return func(f *Field) { f.Type = t }
}

// F declares a plain (unbound) field on the query's root entity.
// Default direction is Asc, matching spec §4.2.
func F(column string, opts ...FieldOption) Field {
	f := Field{Ref: FieldRef{Column: column}, Direction: DirectionASC}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// BoundField declares a field reached through a join alias (binding).
func BoundField(binding, column string, opts ...FieldOption) Field {
	f := Field{Ref: FieldRef{Binding: binding, Column: column}, Direction: DirectionASC}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

func (f Field) validate() error {
	if !f.Direction.Valid() {
		return &InvalidDirectionError{Value: string(f.Direction)}
	}
	if !validColumnName(f.Ref.Column) {
		return fmt.Errorf("field %q: column name contains forbidden symbols", f.Ref.String())
	}
	return nil
}

// Fields is the ordered field vector F of spec §3. Order is significant: it
// defines the lexicographic ordering of rows and the cursor's tuple shape.
type Fields []Field

func (fs Fields) validate() error {
	if len(fs) == 0 {
		return ErrMissingFields
	}
	for _, f := range fs {
		if err := f.validate(); err != nil {
			return err
		}
	}
	return nil
}

// types returns the TypeTag vector used to decode a cursor against this
// field list.
func (fs Fields) types() []TypeTag {
	out := make([]TypeTag, len(fs))
	for i, f := range fs {
		out[i] = f.Type
	}
	return out
}

// reversed returns a copy of fs with every direction flipped, used when a
// lone `before` cursor requires inverting ORDER BY (spec §4.4/4.5).
func (fs Fields) reversed() Fields {
	out := make(Fields, len(fs))
	for i, f := range fs {
		out[i] = f
		out[i].Direction = f.Direction.reverse()
	}
	return out
}
