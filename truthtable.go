// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import (
	"slices"

	"go.uber.org/zap"
)

// Row is one line of a truth table: a value for each input variable, in level
// order, and the corresponding output.
type Row struct {
	Inputs []bool
	Output bool
}

// Table is a truth table over named inputs with a single named output.
type Table struct {
	Inputs []string // Names of the input variables, in column order
	Output string   // Name of the function
	Rows   []Row
}

// pathnode is a vertex of the prefix tree built from the rows of a truth
// table. Vertices at depth varnum are leaves and only carry a value.
type pathnode struct {
	child [2]*pathnode
	value bool
}

// BuildFromRows returns the node for the function defined by rows, where the
// inputs of each row are given in level order. Input combinations that do not
// appear in any row are mapped to False. When two rows share the same inputs,
// the last one wins.
//
// We return an error wrapping ErrEmptyInput when there are no rows, and
// ErrMalformedInput when a row does not have exactly one input per variable.
// In both cases no node is created.
func (b *Session) BuildFromRows(rows []Row) (Node, error) {
	if len(rows) == 0 {
		return Node{}, b.seterror(ErrEmptyInput, "no rows in call to BuildFromRows")
	}
	varnum := len(b.varnames)
	for k, r := range rows {
		if len(r.Inputs) != varnum {
			return Node{}, b.seterror(ErrMalformedInput, "row %d has %d inputs, expected %d", k, len(r.Inputs), varnum)
		}
	}
	// We build the paths of all the rows, sharing common prefixes.
	root := &pathnode{}
	for _, r := range rows {
		cur := root
		for _, v := range r.Inputs {
			k := 0
			if v {
				k = 1
			}
			if cur.child[k] == nil {
				cur.child[k] = &pathnode{}
			}
			cur = cur.child[k]
		}
		cur.value = r.Output
	}
	raw, err := b.lowerpath(root, 0)
	if err != nil {
		return Node{}, err
	}
	res, err := b.Ite(b.retnode(raw), b.True(), b.False())
	if err != nil {
		return Node{}, err
	}
	b.logger.Debug("built diagram from rows", zap.Int("rows", len(rows)), zap.Int("root", res.id))
	return res, nil
}

// lowerpath moves the prefix tree rooted in p, at depth level, into the node
// table. Missing branches denote False.
func (b *Session) lowerpath(p *pathnode, level int32) (int, error) {
	if p == nil {
		return 0, nil
	}
	if int(level) == len(b.varnames) {
		if p.value {
			return 1, nil
		}
		return 0, nil
	}
	low, err := b.lowerpath(p.child[0], level+1)
	if err != nil {
		return -1, err
	}
	high, err := b.lowerpath(p.child[1], level+1)
	if err != nil {
		return -1, err
	}
	return b.makenode(level, low, high)
}

// BuildFromTable is like BuildFromRows but first checks that the inputs of t
// are exactly the variables of b, in the same order.
func (b *Session) BuildFromTable(t *Table) (Node, error) {
	if t == nil {
		return Node{}, b.seterror(ErrEmptyInput, "nil table in call to BuildFromTable")
	}
	if !slices.Equal(t.Inputs, b.varnames) {
		return Node{}, b.seterror(ErrMalformedInput, "table inputs %v do not match variables %v", t.Inputs, b.varnames)
	}
	return b.BuildFromRows(t.Rows)
}
