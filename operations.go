// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import (
	"fmt"
	"math/big"

	"go.uber.org/zap"
)

// Ite, short for if-then-else operator, computes the BDD for the expression
// [(f /\ g) \/ (not f /\ h)]. All the other Boolean operators of the package
// are derived from Ite. The result is canonical: it is the only node of b
// denoting this function.
//
// We return an error wrapping ErrDanglingReference if one of the operands does
// not belong to b, ErrCapacityExceeded if the node table is full, and
// ErrResourceExhausted if the computation goes over the budget set with
// Itebudget.
func (b *Session) Ite(f, g, h Node) (Node, error) {
	if err := b.checkptr(f); err != nil {
		return Node{}, fmt.Errorf("wrong operand in call to Ite (f): %w", err)
	}
	if err := b.checkptr(g); err != nil {
		return Node{}, fmt.Errorf("wrong operand in call to Ite (g): %w", err)
	}
	if err := b.checkptr(h); err != nil {
		return Node{}, fmt.Errorf("wrong operand in call to Ite (h): %w", err)
	}
	b.cacheinit()
	defer b.cachereset()
	res, err := b.ite(f.id, g.id, h.id)
	if err != nil {
		b.logger.Warn("ite aborted",
			zap.Int("f", f.id), zap.Int("g", g.id), zap.Int("h", h.id),
			zap.Int("steps", b.steps), zap.Error(err))
		return Node{}, err
	}
	return b.retnode(res), nil
}

// cofactors returns the low and high branch of n with respect to the variable
// at level top. A node that does not test top is its own cofactor.
func (b *Session) cofactors(n int, top int32) (int, int) {
	if b.level(n) != top {
		return n, n
	}
	return b.low(n), b.high(n)
}

// min3 returns the smallest value between p, q and r. This is used in function
// ite to compute the smallest level.
func min3(p, q, r int32) int32 {
	if p <= q {
		if p <= r { // p <= q && p <= r
			return p
		}
		return r // r < p <= q
	}
	if q <= r { // q < p && q <= r
		return q
	}
	return r // r < q < p
}

func (b *Session) ite(f, g, h int) (int, error) {
	switch {
	case f == 1:
		return g, nil
	case f == 0:
		return h, nil
	case g == h:
		return g, nil
	case (g == 1) && (h == 0):
		return f, nil
	}
	if res, ok := b.matchite(f, g, h); ok {
		return res, nil
	}
	if b.itebudget > 0 && b.steps >= b.itebudget {
		return -1, b.seterror(ErrResourceExhausted, "ite expanded more than %d subproblems", b.itebudget)
	}
	b.steps++
	// constants are at level varnum, hence they never define the top variable
	// since f is not a constant.
	top := min3(b.level(f), b.level(g), b.level(h))
	flow, fhigh := b.cofactors(f, top)
	glow, ghigh := b.cofactors(g, top)
	hlow, hhigh := b.cofactors(h, top)
	high, err := b.ite(fhigh, ghigh, hhigh)
	if err != nil {
		return -1, err
	}
	low, err := b.ite(flow, glow, hlow)
	if err != nil {
		return -1, err
	}
	// makenode returns low directly when low == high
	res, err := b.makenode(top, low, high)
	if err != nil {
		return -1, err
	}
	return b.setite(f, g, h, res), nil
}

// Eval returns the value of the function denoted by n for a total assignment
// of the variables, given in level order.
func (b *Session) Eval(n Node, assignment []bool) (bool, error) {
	if err := b.checkptr(n); err != nil {
		return false, fmt.Errorf("wrong operand in call to Eval: %w", err)
	}
	if len(assignment) != len(b.varnames) {
		return false, b.seterror(ErrMalformedInput, "assignment of size %d for %d variables", len(assignment), len(b.varnames))
	}
	i := n.id
	for i > 1 {
		if assignment[b.level(i)] {
			i = b.high(i)
		} else {
			i = b.low(i)
		}
	}
	return i == 1, nil
}

// Satcount computes the number of satisfying variable assignments for the
// function denoted by n, over all the variables declared in b. We return a
// result using arbitrary-precision arithmetic to avoid possible overflows.
func (b *Session) Satcount(n Node) (*big.Int, error) {
	res := big.NewInt(0)
	if err := b.checkptr(n); err != nil {
		return res, fmt.Errorf("wrong operand in call to Satcount: %w", err)
	}
	// We compute 2^level with a bit shift 1 << level
	res.SetBit(res, int(b.level(n.id)), 1)
	satc := make(map[int]*big.Int)
	return res.Mul(res, b.satcount(n.id, satc)), nil
}

func (b *Session) satcount(n int, satc map[int]*big.Int) *big.Int {
	if n < 2 {
		return big.NewInt(int64(n))
	}
	// we use satc to memoize the value of satcount for each nodes
	res, ok := satc[n]
	if ok {
		return res
	}
	level := b.level(n)
	low := b.low(n)
	high := b.high(n)

	res = big.NewInt(0)
	two := big.NewInt(0)
	two.SetBit(two, int(b.level(low)-level-1), 1)
	res.Add(res, two.Mul(two, b.satcount(low, satc)))
	two = big.NewInt(0)
	two.SetBit(two, int(b.level(high)-level-1), 1)
	res.Add(res, two.Mul(two, b.satcount(high, satc)))
	satc[n] = res
	return res
}

// Allsat iterates through all legal variable assignments for n and calls the
// function f on each of them. We pass an int slice of length varnum to f where
// each entry is either 0 if the variable is false, 1 if it is true, and -1 if
// it is a don't care. The slice is reused between calls. We stop and return an
// error if f returns an error at some point.
//
// The following is an example of a callback handler that counts the number of
// possible assignments (such that we do not count don't care twice):
//
//	acc := new(int)
//	b.Allsat(n, func(varset []int) error {
//		*acc++
//		return nil
//	})
func (b *Session) Allsat(n Node, f func([]int) error) error {
	if err := b.checkptr(n); err != nil {
		return fmt.Errorf("wrong node in call to Allsat: %w", err)
	}
	prof := make([]int, len(b.varnames))
	for k := range prof {
		prof[k] = -1
	}
	return b.allsat(n.id, prof, f)
}

func (b *Session) allsat(n int, prof []int, f func([]int) error) error {
	if n == 1 {
		return f(prof)
	}
	if n == 0 {
		return nil
	}

	if low := b.low(n); low != 0 {
		prof[b.level(n)] = 0
		for v := b.level(low) - 1; v > b.level(n); v-- {
			prof[v] = -1
		}
		if err := b.allsat(low, prof, f); err != nil {
			return err
		}
	}

	if high := b.high(n); high != 0 {
		prof[b.level(n)] = 1
		for v := b.level(high) - 1; v > b.level(n); v-- {
			prof[v] = -1
		}
		if err := b.allsat(high, prof, f); err != nil {
			return err
		}
	}
	return nil
}

// Allnodes applies function f over all the nodes accessible from the nodes in
// the sequence n..., or all the nodes of b if n is absent. The parameters to
// function f are the id, level, and id's of the low and high successors of each
// node. The two constant nodes (True and False) have always the id 1 and 0,
// respectively, and their own id as successors.
//
// Every node is visited exactly once, even when it is shared between several
// roots. Reachable nodes are visited in depth-first order, a node before its
// low successor and its low successor before its high successor. We stop the
// computation and return an error if f returns an error at some point.
func (b *Session) Allnodes(f func(id, level, low, high int) error, n ...Node) error {
	for _, v := range n {
		if err := b.checkptr(v); err != nil {
			return fmt.Errorf("wrong node in call to Allnodes: %w", err)
		}
	}
	if len(n) == 0 {
		for k, v := range b.nodes {
			if err := f(k, int(b.level(k)), v.low, v.high); err != nil {
				return err
			}
		}
		return nil
	}
	visited := make([]bool, len(b.nodes))
	for _, v := range n {
		if err := b.allnodesfrom(v.id, visited, f); err != nil {
			return err
		}
	}
	return nil
}

func (b *Session) allnodesfrom(n int, visited []bool, f func(id, level, low, high int) error) error {
	if visited[n] {
		return nil
	}
	visited[n] = true
	if err := f(n, int(b.level(n)), b.low(n), b.high(n)); err != nil {
		return err
	}
	if n < 2 {
		return nil
	}
	if err := b.allnodesfrom(b.low(n), visited, f); err != nil {
		return err
	}
	return b.allnodesfrom(b.high(n), visited, f)
}
