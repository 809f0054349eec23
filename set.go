// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

// Not returns the negation (!n) of expression n, computed as ite(n, 0, 1).
func (b *Session) Not(n Node) (Node, error) {
	return b.Ite(n, b.False(), b.True())
}

// And returns the logical 'and' of a sequence of nodes. The conjunction of an
// empty sequence is True.
func (b *Session) And(n ...Node) (Node, error) {
	if len(n) == 0 {
		return b.True(), nil
	}
	if len(n) == 1 {
		if err := b.checkptr(n[0]); err != nil {
			return Node{}, err
		}
		return n[0], nil
	}
	right, err := b.And(n[1:]...)
	if err != nil {
		return Node{}, err
	}
	return b.Ite(n[0], right, b.False())
}

// Or returns the logical 'or' of a sequence of nodes. The disjunction of an
// empty sequence is False.
func (b *Session) Or(n ...Node) (Node, error) {
	if len(n) == 0 {
		return b.False(), nil
	}
	if len(n) == 1 {
		if err := b.checkptr(n[0]); err != nil {
			return Node{}, err
		}
		return n[0], nil
	}
	right, err := b.Or(n[1:]...)
	if err != nil {
		return Node{}, err
	}
	return b.Ite(n[0], b.True(), right)
}

// Xor returns the exclusive or of two nodes, computed as ite(f, !g, g).
func (b *Session) Xor(f, g Node) (Node, error) {
	ng, err := b.Not(g)
	if err != nil {
		return Node{}, err
	}
	return b.Ite(f, ng, g)
}

// Imp returns the logical 'implication' between two nodes.
func (b *Session) Imp(f, g Node) (Node, error) {
	return b.Ite(f, g, b.True())
}

// Equiv returns the logical 'bi-implication' between two nodes.
func (b *Session) Equiv(f, g Node) (Node, error) {
	ng, err := b.Not(g)
	if err != nil {
		return Node{}, err
	}
	return b.Ite(f, g, ng)
}
