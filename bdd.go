// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import (
	"strings"
	"unicode"

	"go.uber.org/zap"
)

// Session owns a node table and the variables used to label it. Every Node
// returned by a Session refers to an entry in its table, and tables are never
// shared between sessions.
type Session struct {
	id           uint64           // Identifier stored in each Node
	nodes        []node           // List of all the BDD nodes. Constants are always kept at index 0 and 1
	unique       map[nodekey]int  // Unicity table, used to associate each triplet to a single node
	varnames     []string         // Name of the variable at each level
	var2level    map[string]int32 // Level of each variable name
	varset       []int            // Elementary node of the variable at each level
	produced     int              // Total number of new nodes ever produced
	resizes      int              // Number of times the node table was resized
	uniqueAccess int              // accesses to the unique node table
	uniqueHit    int              // entries actually found in the the unique node table
	uniqueMiss   int              // entries not found in the the unique node table
	itecache                      // Memo table of the current call to Ite
	configs                       // Configurable parameters
}

// New returns a session over the variables in varnames, in this order. Names
// must be non-empty, without spaces, and appear only once. Options can be used
// to bound the size of the node table (Maxnodesize), the work done by Ite
// (Itebudget), or to set a logger.
func New(varnames []string, options ...Option) (*Session, error) {
	c := makeconfigs(len(varnames))
	for _, f := range options {
		f(c)
	}
	b := &Session{
		id:        nextsession(),
		var2level: make(map[string]int32, len(varnames)),
		configs:   *c,
	}
	if b.maxnodesize > 0 && b.maxnodesize < len(varnames)+2 {
		return nil, b.seterror(ErrCapacityExceeded, "max node size (%d) too small for %d variables", b.maxnodesize, len(varnames))
	}
	if b.maxnodesize > 0 && b.nodesize > b.maxnodesize {
		b.nodesize = b.maxnodesize
	}
	b.unique = make(map[nodekey]int, b.nodesize)
	b.nodes = make([]node, 2, b.nodesize)
	// creating bddzero and bddone. We do not add them to the unique table.
	b.nodes[0] = node{level: 0, low: 0, high: 0}
	b.nodes[1] = node{level: 0, low: 1, high: 1}
	for _, name := range varnames {
		if _, err := b.Declare(name); err != nil {
			return nil, err
		}
	}
	b.logger.Debug("new session", zap.Strings("variables", varnames), zap.Int("nodesize", b.nodesize))
	return b, nil
}

// Declare adds a variable after all the variables already in b and returns its
// level. Existing nodes are not affected.
func (b *Session) Declare(name string) (int, error) {
	if name == "" || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return -1, b.seterror(ErrMalformedInput, "bad variable name %q", name)
	}
	if _, ok := b.var2level[name]; ok {
		return -1, b.seterror(ErrMalformedInput, "variable %q declared twice", name)
	}
	level := int32(len(b.varnames))
	if level >= _MAXVAR {
		return -1, b.seterror(ErrCapacityExceeded, "too many variables (%d)", level)
	}
	v, err := b.makenode(level, 0, 1)
	if err != nil {
		return -1, err
	}
	b.varnames = append(b.varnames, name)
	b.var2level[name] = level
	b.varset = append(b.varset, v)
	return int(level), nil
}

// Varnum returns the number of declared variables.
func (b *Session) Varnum() int {
	return len(b.varnames)
}

// Varnames returns the names of the variables, in level order.
func (b *Session) Varnames() []string {
	res := make([]string, len(b.varnames))
	copy(res, b.varnames)
	return res
}

// VarName returns the name of the variable at the given level, or the empty
// string if there is no such variable.
func (b *Session) VarName(level int) string {
	if level < 0 || level >= len(b.varnames) {
		return ""
	}
	return b.varnames[level]
}

// True returns the Node for the constant true.
func (b *Session) True() Node {
	return b.retnode(1)
}

// False returns the Node for the constant false.
func (b *Session) False() Node {
	return b.retnode(0)
}

// Terminal returns a (constant) Node from a boolean value.
func (b *Session) Terminal(v bool) Node {
	if v {
		return b.True()
	}
	return b.False()
}

// Variable returns the elementary node testing the variable called name: its
// low branch is False and its high branch is True.
func (b *Session) Variable(name string) (Node, error) {
	level, ok := b.var2level[name]
	if !ok {
		return Node{}, b.seterror(ErrUnknownVariable, "variable %q in call to Variable", name)
	}
	return b.retnode(b.varset[level]), nil
}

// Ithvar returns the elementary node of the i'th variable. The requested
// variable must be in the range [0..Varnum).
func (b *Session) Ithvar(i int) (Node, error) {
	if (i < 0) || (i >= len(b.varnames)) {
		return Node{}, b.seterror(ErrUnknownVariable, "level %d in call to Ithvar", i)
	}
	return b.retnode(b.varset[i]), nil
}

// IsTerminal reports whether n is one of the two constants.
func (b *Session) IsTerminal(n Node) bool {
	return b.checkptr(n) == nil && n.id < 2
}

// Value returns the boolean value of a constant node. The second result is
// false if n is not a constant of b.
func (b *Session) Value(n Node) (bool, bool) {
	if !b.IsTerminal(n) {
		return false, false
	}
	return n.id == 1, true
}

// Level returns the level of the variable tested by node n. The level of a
// constant is Varnum().
func (b *Session) Level(n Node) (int, error) {
	if err := b.checkptr(n); err != nil {
		return -1, err
	}
	return int(b.level(n.id)), nil
}

// Low returns the false branch of n. The branches of a constant are the
// constant itself.
func (b *Session) Low(n Node) (Node, error) {
	if err := b.checkptr(n); err != nil {
		return Node{}, err
	}
	return b.retnode(b.low(n.id)), nil
}

// High returns the true branch of n. The branches of a constant are the
// constant itself.
func (b *Session) High(n Node) (Node, error) {
	if err := b.checkptr(n); err != nil {
		return Node{}, err
	}
	return b.retnode(b.high(n.id)), nil
}
