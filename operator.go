// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import "fmt"

type Operator int

// Operator describe the potential (binary) operations available on an Apply.
const (
	OPand    Operator = iota // Boolean conjunction
	OPxor                    // Exclusive or
	OPor                     // Disjunction
	OPnand                   // Negation of and
	OPnor                    // Negation of or
	OPimp                    // Implication
	OPbiimp                  // Equivalence
	OPdiff                   // Difference
	OPless                   // Set difference
	OPinvimp                 // Reverse implication
)

var opnames = [10]string{
	OPand:    "and",
	OPxor:    "xor",
	OPor:     "or",
	OPnand:   "nand",
	OPnor:    "nor",
	OPimp:    "imp",
	OPbiimp:  "biimp",
	OPdiff:   "diff",
	OPless:   "less",
	OPinvimp: "invimp",
}

func (op Operator) String() string {
	if op < 0 || int(op) >= len(opnames) {
		return fmt.Sprintf("Operator(%d)", int(op))
	}
	return opnames[op]
}

var opres = [10][2][2]int{
	//                      00    01               10    11
	OPand:    {0: [2]int{0: 0, 1: 0}, 1: [2]int{0: 0, 1: 1}}, // 0001
	OPxor:    {0: [2]int{0: 0, 1: 1}, 1: [2]int{0: 1, 1: 0}}, // 0110
	OPor:     {0: [2]int{0: 0, 1: 1}, 1: [2]int{0: 1, 1: 1}}, // 0111
	OPnand:   {0: [2]int{0: 1, 1: 1}, 1: [2]int{0: 1, 1: 0}}, // 1110
	OPnor:    {0: [2]int{0: 1, 1: 0}, 1: [2]int{0: 0, 1: 0}}, // 1000
	OPimp:    {0: [2]int{0: 1, 1: 1}, 1: [2]int{0: 0, 1: 1}}, // 1101
	OPbiimp:  {0: [2]int{0: 1, 1: 0}, 1: [2]int{0: 0, 1: 1}}, // 1001
	OPdiff:   {0: [2]int{0: 0, 1: 0}, 1: [2]int{0: 1, 1: 0}}, // 0010
	OPless:   {0: [2]int{0: 0, 1: 1}, 1: [2]int{0: 0, 1: 0}}, // 0100
	OPinvimp: {0: [2]int{0: 1, 1: 0}, 1: [2]int{0: 1, 1: 1}}, // 1011
}

// Apply performs all of the basic binary operations on BDD nodes, such as
// AND, OR etc. Left and right are the operand and op is the requested
// operation and must be one of the following. Every operation reduces to a
// single call to Ite, possibly with a negated operand.
//
//	Identifier    Description             Truth table   Ite
//
//	OPand         logical and             [0,0,0,1]     ite(l, r, 0)
//	OPxor         logical xor             [0,1,1,0]     ite(l, !r, r)
//	OPor          logical or              [0,1,1,1]     ite(l, 1, r)
//	OPnand        logical not-and         [1,1,1,0]     ite(l, !r, 1)
//	OPnor         logical not-or          [1,0,0,0]     ite(l, 0, !r)
//	OPimp         implication             [1,1,0,1]     ite(l, r, 1)
//	OPbiimp       equivalence             [1,0,0,1]     ite(l, r, !r)
//	OPdiff        set difference          [0,0,1,0]     ite(l, !r, 0)
//	OPless        less than               [0,1,0,0]     ite(l, 0, r)
//	OPinvimp      reverse implication     [1,0,1,1]     ite(l, 1, !r)
func (b *Session) Apply(left Node, right Node, op Operator) (Node, error) {
	if op < 0 || int(op) >= len(opnames) {
		return Node{}, b.seterror(ErrMalformedInput, "unknown operator %s in call to Apply", op)
	}
	if err := b.checkptr(left); err != nil {
		return Node{}, fmt.Errorf("wrong operand in call to Apply %s (left): %w", op, err)
	}
	if err := b.checkptr(right); err != nil {
		return Node{}, fmt.Errorf("wrong operand in call to Apply %s (right): %w", op, err)
	}
	// we deal with the cases where the two operands are constants
	if (left.id < 2) && (right.id < 2) {
		return b.retnode(opres[op][left.id][right.id]), nil
	}
	zero, one := b.False(), b.True()
	switch op {
	case OPand:
		return b.Ite(left, right, zero)
	case OPor:
		return b.Ite(left, one, right)
	case OPimp:
		return b.Ite(left, right, one)
	case OPless:
		return b.Ite(left, zero, right)
	}
	nright, err := b.Not(right)
	if err != nil {
		return Node{}, err
	}
	switch op {
	case OPxor:
		return b.Ite(left, nright, right)
	case OPnand:
		return b.Ite(left, nright, one)
	case OPnor:
		return b.Ite(left, zero, nright)
	case OPbiimp:
		return b.Ite(left, right, nright)
	case OPdiff:
		return b.Ite(left, nright, zero)
	default: // OPinvimp
		return b.Ite(left, one, nright)
	}
}
