// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import (
	"math"

	"go.uber.org/zap"
)

// _MAXVAR is the maximal number of levels in the BDD.
const _MAXVAR int32 = 0x1FFFFF

// _DEFAULTMAXNODEINC is the default value for the maximal increase in the
// number of nodes during a resize. It is approx. one million nodes (1 048 576).
const _DEFAULTMAXNODEINC int = 1 << 20

// level returns the level of node n. Constants are always at level varnum,
// that is after every declared variable.
func (b *Session) level(n int) int32 {
	if n < 2 {
		return int32(len(b.varnames))
	}
	return b.nodes[n].level
}

func (b *Session) low(n int) int {
	return b.nodes[n].low
}

func (b *Session) high(n int) int {
	return b.nodes[n].high
}

// makenode returns the index of the node (level, low, high), creating it if
// needed. We never create a node with equal children and never create the same
// triplet twice.
func (b *Session) makenode(level int32, low int, high int) (int, error) {
	b.uniqueAccess++
	// check whether children are equal, in which case we can skip the node
	if low == high {
		return low, nil
	}
	// otherwise try to find an existing node using the unique table
	key := nodekey{level, low, high}
	if res, ok := b.unique[key]; ok {
		b.uniqueHit++
		return res, nil
	}
	b.uniqueMiss++
	// If no existing node, we build one, resizing the table if there is no
	// available spot.
	if len(b.nodes) == cap(b.nodes) {
		if err := b.noderesize(); err != nil {
			return -1, err
		}
	}
	res := len(b.nodes)
	b.nodes = append(b.nodes, node{level: level, low: low, high: high})
	b.unique[key] = res
	b.produced++
	return res, nil
}

func (b *Session) noderesize() error {
	oldsize := cap(b.nodes)
	nodesize := oldsize
	if (oldsize >= b.maxnodesize) && (b.maxnodesize > 0) {
		b.logger.Warn("node table at max capacity", zap.Int("maxnodesize", b.maxnodesize))
		return b.seterror(ErrCapacityExceeded, "cannot resize node table, already at max capacity (%d nodes)", b.maxnodesize)
	}
	if oldsize > (math.MaxInt32 >> 1) {
		nodesize = math.MaxInt32 - 1
	} else {
		nodesize = nodesize << 1
	}
	if b.maxnodeincrease > 0 && nodesize > (oldsize+b.maxnodeincrease) {
		nodesize = oldsize + b.maxnodeincrease
	}
	if (nodesize > b.maxnodesize) && (b.maxnodesize > 0) {
		nodesize = b.maxnodesize
	}
	if nodesize <= oldsize {
		return b.seterror(ErrCapacityExceeded, "unable to grow node table (%d nodes)", oldsize)
	}

	tmp := b.nodes
	b.nodes = make([]node, len(tmp), nodesize)
	copy(b.nodes, tmp)
	b.resizes++

	b.logger.Debug("resized node table", zap.Int("from", oldsize), zap.Int("to", nodesize))
	return nil
}
