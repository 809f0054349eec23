// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import "fmt"

// itekey is the operand triplet of a call to ite.
type itekey struct {
	f int
	g int
	h int
}

// itecache memoizes the results of ite during a single top-level call. The
// table is dropped at the end of each call, so that it never outlives the
// operands it refers to and never grows with the session.
type itecache struct {
	memo     map[itekey]int // Results of the current call
	steps    int            // Subproblems expanded during the current call
	iteCalls int            // Number of top-level calls to Ite
	opHit    int            // entries found in the memo table
	opMiss   int            // entries not found in the memo table
}

func (c *itecache) cacheinit() {
	c.memo = make(map[itekey]int)
	c.steps = 0
	c.iteCalls++
}

func (c *itecache) cachereset() {
	c.memo = nil
}

func (c *itecache) matchite(f, g, h int) (int, bool) {
	res, ok := c.memo[itekey{f, g, h}]
	if ok {
		c.opHit++
		return res, true
	}
	c.opMiss++
	return -1, false
}

func (c *itecache) setite(f, g, h, res int) int {
	c.memo[itekey{f, g, h}] = res
	return res
}

// ************************************************************

// Stats stores status information about a session, its unique table and the
// memo tables of Ite.
type Stats struct {
	Varnum       int // Number of declared variables
	Allocated    int // Capacity of the node table
	Used         int // Nodes in the table, constants included
	Produced     int // Total number of new nodes ever produced
	Resizes      int // Number of resizes of the node table
	UniqueAccess int // Accesses to the unique node table
	UniqueHit    int // Entries actually found in the unique node table
	UniqueMiss   int // Entries not found in the unique node table
	IteCalls     int // Number of top-level calls to Ite
	OpHit        int // Entries found in the memo tables of Ite
	OpMiss       int // Entries not found in the memo tables of Ite
}

// Stats returns information about the session.
func (b *Session) Stats() Stats {
	return Stats{
		Varnum:       len(b.varnames),
		Allocated:    cap(b.nodes),
		Used:         len(b.nodes),
		Produced:     b.produced,
		Resizes:      b.resizes,
		UniqueAccess: b.uniqueAccess,
		UniqueHit:    b.uniqueHit,
		UniqueMiss:   b.uniqueMiss,
		IteCalls:     b.iteCalls,
		OpHit:        b.opHit,
		OpMiss:       b.opMiss,
	}
}

func (s Stats) String() string {
	res := fmt.Sprintf("Varnum:     %d\n", s.Varnum)
	res += fmt.Sprintf("Allocated:  %d\n", s.Allocated)
	res += fmt.Sprintf("Produced:   %d\n", s.Produced)
	r := 0.0
	if s.Allocated > 0 {
		r = (float64(s.Used) / float64(s.Allocated)) * 100
	}
	res += fmt.Sprintf("Used:       %d  (%.3g %%)\n", s.Used, r)
	res += fmt.Sprintf("Resizes:    %d\n", s.Resizes)
	res += "==============\n"
	res += fmt.Sprintf("Unique Access:  %d\n", s.UniqueAccess)
	res += fmt.Sprintf("Unique Hit:     %d\n", s.UniqueHit)
	res += fmt.Sprintf("Unique Miss:    %d\n", s.UniqueMiss)
	res += fmt.Sprintf("Ite Calls:      %d\n", s.IteCalls)
	res += fmt.Sprintf("Operator Hits:  %d\n", s.OpHit)
	res += fmt.Sprintf("Operator Miss:  %d", s.OpMiss)
	return res
}
