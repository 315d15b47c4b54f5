package keyset

import "fmt"

// Operator is a comparison operator used to build a seek predicate.
type Operator string

const (
	OperatorGT Operator = ">"
	OperatorLT Operator = "<"

	// operatorEq is used only while expanding prefix-equality conjuncts; it
	// never appears as the terminal comparison of a disjunct.
	operatorEq Operator = "="
)

func (o Operator) Valid() bool {
	return o == OperatorGT || o == OperatorLT
}

// forOperator implements the per-field operator table of spec §4.4:
//
//	direction  side=After  side=Before
//	Asc        >           <
//	Desc       <           >
func forOperator(direction Direction, side Side) Operator {
	switch {
	case direction == DirectionASC && side == After:
		return OperatorGT
	case direction == DirectionASC && side == Before:
		return OperatorLT
	case direction == DirectionDESC && side == After:
		return OperatorLT
	case direction == DirectionDESC && side == Before:
		return OperatorGT
	default:
		panic(fmt.Errorf("cannot map direction '%s' / side '%s' to operator", direction, side))
	}
}
