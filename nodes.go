// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import (
	"fmt"
	"sync/atomic"
)

type node struct {
	level int32 // Order of the variable in the BDD
	low   int   // Reference to the false branch
	high  int   // Reference to the true branch
}

// nodekey is the key of the unique table.
type nodekey struct {
	level int32
	low   int
	high  int
}

// ************************************************************

// Node is a reference to an element of a BDD. It represents the atomic unit of
// interactions and computations within a Session. The zero value is not a
// valid Node.
type Node struct {
	id    int    // index in the node table
	arena uint64 // identifier of the owning session
}

// ID returns the index of n in the node table of its session. Indices are
// stable for the whole lifetime of the session, 0 and 1 being the constants
// False and True.
func (n Node) ID() int {
	return n.id
}

func (n Node) String() string {
	return fmt.Sprintf("n%d", n.id)
}

// sessions is used to give a distinct, non-zero, identifier to every Session.
var sessions uint64

func nextsession() uint64 {
	return atomic.AddUint64(&sessions, 1)
}

// ************************************************************

// retnode returns a Node for index n in session b.
func (b *Session) retnode(n int) Node {
	return Node{id: n, arena: b.id}
}

// checkptr returns an error if n is not a valid node of session b.
func (b *Session) checkptr(n Node) error {
	if n.arena == 0 {
		return b.seterror(ErrDanglingReference, "uninitialized node")
	}
	if n.arena != b.id {
		return b.seterror(ErrDanglingReference, "node %d belongs to another session", n.id)
	}
	if n.id < 0 || n.id >= len(b.nodes) {
		return b.seterror(ErrDanglingReference, "node %d not in table", n.id)
	}
	return nil
}
