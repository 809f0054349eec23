// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import (
	"fmt"
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// mustVars returns a session over names and the elementary node of each
// variable.
func mustVars(t testing.TB, names []string, options ...Option) (*Session, []Node) {
	t.Helper()
	bdd, err := New(names, options...)
	require.NoError(t, err)
	vars := make([]Node, len(names))
	for k, name := range names {
		vars[k], err = bdd.Variable(name)
		require.NoError(t, err)
	}
	return bdd, vars
}

// assignments calls f on every total assignment of varnum variables.
func assignments(varnum int, f func([]bool)) {
	a := make([]bool, varnum)
	for m := 0; m < 1<<varnum; m++ {
		for k := range a {
			a[k] = (m>>(varnum-1-k))&1 == 1
		}
		f(a)
	}
}

// checkInvariants verifies that the nodes reachable from n are reduced and
// ordered, and that no triplet appears twice.
func checkInvariants(t *testing.T, bdd *Session, n ...Node) {
	t.Helper()
	seen := make(map[nodekey]int)
	err := bdd.Allnodes(func(id, level, low, high int) error {
		if id < 2 {
			return nil
		}
		if low == high {
			return fmt.Errorf("node %d has equal children", id)
		}
		if bdd.level(low) <= int32(level) || bdd.level(high) <= int32(level) {
			return fmt.Errorf("node %d is not ordered", id)
		}
		key := nodekey{int32(level), low, high}
		if other, ok := seen[key]; ok {
			return fmt.Errorf("nodes %d and %d are duplicates", other, id)
		}
		seen[key] = id
		return nil
	}, n...)
	require.NoError(t, err)
}

//********************************************************************************************

func TestMinus(t *testing.T) {
	var minusTests = []struct {
		p, q, r  int32
		expected int32
	}{
		{3, 2, 3, 2},
		{4, 4, 4, 4},
		{2, 3, 3, 2},
		{3, 2, 2, 2},
		{3, 3, 2, 2},
		{1, 2, 3, 1},
	}
	for _, tt := range minusTests {
		actual := min3(tt.p, tt.q, tt.r)
		if actual != tt.expected {
			t.Errorf("minus3(%d, %d, %d): expected %d, actual %d", tt.p, tt.q, tt.r, tt.expected, actual)
		}
	}
}

//********************************************************************************************

func TestMakenodeCanonical(t *testing.T) {
	bdd, vars := mustVars(t, []string{"a", "b"})
	produced := bdd.Stats().Produced

	n1, err := bdd.makenode(0, 0, vars[1].id)
	require.NoError(t, err)
	n2, err := bdd.makenode(0, 0, vars[1].id)
	require.NoError(t, err)
	assert.Equal(t, n1, n2)
	assert.Equal(t, produced+1, bdd.Stats().Produced)

	// the elementary node of a is already in the table
	n3, err := bdd.makenode(0, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, vars[0].id, n3)

	// equal children collapse to the child
	n4, err := bdd.makenode(0, vars[1].id, vars[1].id)
	require.NoError(t, err)
	assert.Equal(t, vars[1].id, n4)
	assert.Equal(t, produced+1, bdd.Stats().Produced)
}

func TestTerminals(t *testing.T) {
	bdd, _ := mustVars(t, []string{"a"})
	assert.Equal(t, bdd.True(), bdd.Terminal(true))
	assert.Equal(t, bdd.False(), bdd.Terminal(false))
	assert.Equal(t, 1, bdd.True().ID())
	assert.Equal(t, 0, bdd.False().ID())
	v, ok := bdd.Value(bdd.True())
	assert.True(t, ok)
	assert.True(t, v)
	a, _ := bdd.Variable("a")
	_, ok = bdd.Value(a)
	assert.False(t, ok)
	level, err := bdd.Level(bdd.False())
	require.NoError(t, err)
	assert.Equal(t, 1, level)
}

func TestIteReduced(t *testing.T) {
	bdd, v := mustVars(t, []string{"a", "b", "c"})
	g, err := bdd.And(v[1], v[2])
	require.NoError(t, err)

	// ite(f, g, g) is g itself
	res, err := bdd.Ite(v[0], g, g)
	require.NoError(t, err)
	assert.Equal(t, g, res)

	// ite(f, 1, 0) is f itself
	res, err = bdd.Ite(g, bdd.True(), bdd.False())
	require.NoError(t, err)
	assert.Equal(t, g, res)

	// a result independent of the top variable is not wrapped in a new node
	na, err := bdd.Not(v[0])
	require.NoError(t, err)
	res, err = bdd.Ite(v[0], g, bdd.False())
	require.NoError(t, err)
	res2, err := bdd.Ite(na, g, bdd.False())
	require.NoError(t, err)
	res, err = bdd.Or(res, res2)
	require.NoError(t, err)
	assert.Equal(t, g, res)
	checkInvariants(t, bdd)
}

func TestIteEquiv(t *testing.T) {
	bdd, v := mustVars(t, []string{"x0", "x1", "x2", "x3"})
	n1, err := bdd.And(v[0], v[2], v[3])
	require.NoError(t, err)
	n2, err := bdd.And(v[0], v[3])
	require.NoError(t, err)
	nn1, err := bdd.Not(n1)
	require.NoError(t, err)
	nn2, err := bdd.Not(n2)
	require.NoError(t, err)

	ite, err := bdd.Ite(n1, n2, nn2)
	require.NoError(t, err)
	l, err := bdd.And(n1, n2)
	require.NoError(t, err)
	r, err := bdd.And(nn1, nn2)
	require.NoError(t, err)
	expected, err := bdd.Or(l, r)
	require.NoError(t, err)
	actual, err := bdd.Equiv(ite, expected)
	require.NoError(t, err)
	assert.Equal(t, bdd.True(), actual, "ite(f,g,h) <=> (f and g) or (-f and h)")
	assert.Equal(t, expected, ite)
}

func TestXorChain(t *testing.T) {
	bdd, v := mustVars(t, []string{"a", "b", "c", "d"})
	cd, err := bdd.Xor(v[2], v[3])
	require.NoError(t, err)
	bcd, err := bdd.Xor(v[1], cd)
	require.NoError(t, err)
	f, err := bdd.Xor(v[0], bcd)
	require.NoError(t, err)

	var evalTests = []struct {
		a        []bool
		expected bool
	}{
		{[]bool{true, false, false, false}, true},
		{[]bool{true, false, true, false}, false},
		{[]bool{true, true, true, false}, true},
		{[]bool{true, true, true, true}, false},
		{[]bool{false, false, false, false}, false},
	}
	for _, tt := range evalTests {
		actual, err := bdd.Eval(f, tt.a)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, actual, "eval at %v", tt.a)
	}

	// same function built in another association order
	ab, err := bdd.Xor(v[0], v[1])
	require.NoError(t, err)
	abc, err := bdd.Xor(ab, v[2])
	require.NoError(t, err)
	g, err := bdd.Xor(abc, v[3])
	require.NoError(t, err)
	assert.Equal(t, f, g)

	// the parity function over n variables has 2n-1 internal nodes
	count := 0
	require.NoError(t, bdd.Allnodes(func(id, level, low, high int) error {
		if id > 1 {
			count++
		}
		return nil
	}, f))
	assert.Equal(t, 7, count)
	checkInvariants(t, bdd, f)
}

func TestIdentityLaws(t *testing.T) {
	bdd, v := mustVars(t, []string{"a", "b", "c", "d"})
	ab, err := bdd.And(v[0], v[1])
	require.NoError(t, err)
	cd, err := bdd.Xor(v[2], v[3])
	require.NoError(t, err)
	f, err := bdd.Or(ab, cd)
	require.NoError(t, err)

	for _, n := range []Node{bdd.True(), bdd.False(), v[0], ab, cd, f} {
		and, err := bdd.And(n, n)
		require.NoError(t, err)
		assert.Equal(t, n, and, "and(f,f) == f for %s", bdd.Print(n))
		or, err := bdd.Or(n, n)
		require.NoError(t, err)
		assert.Equal(t, n, or, "or(f,f) == f for %s", bdd.Print(n))
		nn, err := bdd.Not(n)
		require.NoError(t, err)
		nnn, err := bdd.Not(nn)
		require.NoError(t, err)
		assert.Equal(t, n, nnn, "not(not(f)) == f for %s", bdd.Print(n))
		x, err := bdd.Xor(n, n)
		require.NoError(t, err)
		assert.Equal(t, bdd.False(), x)
	}
	checkInvariants(t, bdd)
}

func TestAndOrEmpty(t *testing.T) {
	bdd, _ := mustVars(t, []string{"a"})
	n, err := bdd.And()
	require.NoError(t, err)
	assert.Equal(t, bdd.True(), n)
	n, err = bdd.Or()
	require.NoError(t, err)
	assert.Equal(t, bdd.False(), n)
}

//********************************************************************************************

func TestApply(t *testing.T) {
	bdd, v := mustVars(t, []string{"a", "b", "c"})
	f, err := bdd.Or(v[0], v[1])
	require.NoError(t, err)
	g, err := bdd.Xor(v[1], v[2])
	require.NoError(t, err)

	for op := OPand; op <= OPinvimp; op++ {
		t.Run(op.String(), func(t *testing.T) {
			// constants
			for l := 0; l < 2; l++ {
				for r := 0; r < 2; r++ {
					res, err := bdd.Apply(bdd.Terminal(l == 1), bdd.Terminal(r == 1), op)
					require.NoError(t, err)
					assert.Equal(t, opres[op][l][r], res.ID())
				}
			}
			res, err := bdd.Apply(f, g, op)
			require.NoError(t, err)
			assignments(3, func(a []bool) {
				fv, _ := bdd.Eval(f, a)
				gv, _ := bdd.Eval(g, a)
				actual, err := bdd.Eval(res, a)
				require.NoError(t, err)
				expected := opres[op][btoi(fv)][btoi(gv)] == 1
				assert.Equal(t, expected, actual, "%s at %v", op, a)
			})
		})
	}
	_, err = bdd.Apply(f, g, Operator(42))
	assert.ErrorIs(t, err, ErrMalformedInput)
	assert.Equal(t, "Operator(42)", Operator(42).String())
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}

//********************************************************************************************

// TestOperations implements the same tests than the bddtest program in the
// Buddy distribution. It uses function Allsat for checking that all assignments
// are detected.
func TestOperations(t *testing.T) {
	varnum := 4
	bdd, v := mustVars(t, []string{"a", "b", "c", "d"})

	check := func(x Node) {
		t.Helper()
		allsatBDD := x
		allsatSumBDD := bdd.False()
		// Calculate whole set of asignments and remove all assignments
		// from original set
		err := bdd.Allsat(x, func(varset []int) error {
			y := bdd.True()
			for k, val := range varset {
				if val == -1 {
					continue
				}
				lit := v[k]
				if val == 0 {
					nv, err := bdd.Not(v[k])
					if err != nil {
						return err
					}
					lit = nv
				}
				var err error
				if y, err = bdd.And(y, lit); err != nil {
					return err
				}
			}
			// Sum up all assignments
			var err error
			if allsatSumBDD, err = bdd.Or(allsatSumBDD, y); err != nil {
				return err
			}
			// Remove assignment from initial set
			allsatBDD, err = bdd.Apply(allsatBDD, y, OPdiff)
			return err
		})
		require.NoError(t, err)

		// Now the summed set should be equal to the original set and the
		// subtracted set should be empty
		assert.Equal(t, x, allsatSumBDD, "AllSat sum is not the initial BDD")
		assert.Equal(t, bdd.False(), allsatBDD, "AllSat is not False")
	}

	must := func(n Node, err error) Node {
		t.Helper()
		require.NoError(t, err)
		return n
	}
	na := must(bdd.Not(v[0]))
	nb := must(bdd.Not(v[1]))
	nc := must(bdd.Not(v[2]))
	nd := must(bdd.Not(v[3]))

	check(bdd.True())
	check(bdd.False())
	// a & b | !a & !b
	check(must(bdd.Or(must(bdd.And(v[0], v[1])), must(bdd.And(na, nb)))))
	// a & b | c & d
	check(must(bdd.Or(must(bdd.And(v[0], v[1])), must(bdd.And(v[2], v[3])))))
	// a & !b | a & !d | a & b & !c
	check(must(bdd.Or(must(bdd.And(v[0], nb)), must(bdd.And(v[0], nd)), must(bdd.And(v[0], v[1], nc)))))

	for i := 0; i < varnum; i++ {
		check(v[i])
		check(must(bdd.Not(v[i])))
	}

	rnd := rand.New(rand.NewSource(42))
	set := bdd.True()
	for i := 0; i < 50; i++ {
		k := rnd.Intn(varnum)
		if rnd.Intn(2) == 0 {
			set = must(bdd.Or(set, v[k]))
		} else {
			set = must(bdd.And(set, must(bdd.Not(v[k]))))
		}
		check(set)
	}
	checkInvariants(t, bdd)
}

func TestSatcount(t *testing.T) {
	bdd, v := mustVars(t, []string{"a", "b", "c", "d", "e"})
	rnd := rand.New(rand.NewSource(7))
	f := bdd.False()
	for i := 0; i < 20; i++ {
		x, err := bdd.Apply(v[rnd.Intn(5)], v[rnd.Intn(5)], Operator(rnd.Intn(10)))
		require.NoError(t, err)
		f, err = bdd.Apply(f, x, Operator(rnd.Intn(10)))
		require.NoError(t, err)

		expected := int64(0)
		assignments(5, func(a []bool) {
			if ok, _ := bdd.Eval(f, a); ok {
				expected++
			}
		})
		actual, err := bdd.Satcount(f)
		require.NoError(t, err)
		assert.Equal(t, 0, big.NewInt(expected).Cmp(actual), "satcount of %s: expected %d, actual %s", bdd.Print(f), expected, actual)
	}
	n, err := bdd.Satcount(bdd.True())
	require.NoError(t, err)
	assert.Equal(t, int64(32), n.Int64())
}

//********************************************************************************************

func TestDanglingReference(t *testing.T) {
	bdd1, v1 := mustVars(t, []string{"a", "b"})
	bdd2, v2 := mustVars(t, []string{"a", "b"})

	_, err := bdd1.Ite(v1[0], v2[1], bdd1.False())
	assert.ErrorIs(t, err, ErrDanglingReference)
	_, err = bdd2.And(v2[0], v1[1])
	assert.ErrorIs(t, err, ErrDanglingReference)
	_, err = bdd1.Not(Node{})
	assert.ErrorIs(t, err, ErrDanglingReference)
	_, err = bdd1.And(Node{})
	assert.ErrorIs(t, err, ErrDanglingReference)
	_, err = bdd1.Eval(v2[0], []bool{true, true})
	assert.ErrorIs(t, err, ErrDanglingReference)
	_, err = bdd1.Low(Node{id: 1 << 20, arena: bdd1.id})
	assert.ErrorIs(t, err, ErrDanglingReference)
	// constants are not shared between sessions either
	assert.NotEqual(t, bdd1.True(), bdd2.True())
}

func TestUnknownVariable(t *testing.T) {
	bdd, _ := mustVars(t, []string{"a", "b"})
	_, err := bdd.Variable("z")
	assert.ErrorIs(t, err, ErrUnknownVariable)
	_, err = bdd.Ithvar(2)
	assert.ErrorIs(t, err, ErrUnknownVariable)
	_, err = bdd.Ithvar(-1)
	assert.ErrorIs(t, err, ErrUnknownVariable)
}

func TestNewErrors(t *testing.T) {
	var newTests = []struct {
		names []string
		err   error
	}{
		{[]string{"a", "a"}, ErrMalformedInput},
		{[]string{"a", ""}, ErrMalformedInput},
		{[]string{"a b"}, ErrMalformedInput},
	}
	for _, tt := range newTests {
		_, err := New(tt.names)
		assert.ErrorIs(t, err, tt.err, "New(%q)", tt.names)
	}
	_, err := New([]string{"a", "b"}, Maxnodesize(3))
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestDeclare(t *testing.T) {
	bdd, v := mustVars(t, []string{"a"})
	level, err := bdd.Declare("b")
	require.NoError(t, err)
	assert.Equal(t, 1, level)
	b, err := bdd.Variable("b")
	require.NoError(t, err)
	f, err := bdd.And(v[0], b)
	require.NoError(t, err)
	n, err := bdd.Satcount(f)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n.Int64())
	assert.Equal(t, []string{"a", "b"}, bdd.Varnames())
	assert.Equal(t, "b", bdd.VarName(1))
	assert.Equal(t, "", bdd.VarName(2))
	_, err = bdd.Declare("a")
	assert.ErrorIs(t, err, ErrMalformedInput)
}

//********************************************************************************************

func TestResize(t *testing.T) {
	bdd, v := mustVars(t, []string{"a", "b", "c", "d", "e", "f"}, Nodesize(8), Maxnodeincrease(4))
	f := bdd.False()
	for i := 0; i < len(v); i += 2 {
		x, err := bdd.Xor(v[i], v[i+1])
		require.NoError(t, err)
		f, err = bdd.Or(f, x)
		require.NoError(t, err)
	}
	st := bdd.Stats()
	assert.Greater(t, st.Resizes, 0)
	assert.LessOrEqual(t, st.Used, st.Allocated)
	checkInvariants(t, bdd, f)
}

func TestMaxnodesize(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	bdd, v := mustVars(t, []string{"a", "b", "c", "d", "e", "f", "g", "h"}, Maxnodesize(16), Logger(zap.New(core)))
	f := bdd.False()
	var err error
	for i := 0; i < len(v) && err == nil; i++ {
		f, err = bdd.Xor(f, v[i])
	}
	require.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, Node{}, f)
	assert.Equal(t, 16, bdd.Stats().Used)
	assert.GreaterOrEqual(t, logs.FilterMessage("node table at max capacity").Len(), 1)
	// nodes built before the failure are still valid
	checkInvariants(t, bdd)
}

func TestItebudget(t *testing.T) {
	names := make([]string, 16)
	for k := range names {
		names[k] = fmt.Sprintf("x%d", k)
	}
	// the conjunction of two interleaved parity functions needs many more
	// expansions than building each of them
	bdd, v := mustVars(t, names, Itebudget(20))
	f := bdd.False()
	g := bdd.False()
	var err error
	for i := 0; i < 16; i += 2 {
		f, err = bdd.Xor(f, v[i])
		require.NoError(t, err)
		g, err = bdd.Xor(g, v[i+1])
		require.NoError(t, err)
	}
	_, err = bdd.And(f, g)
	assert.ErrorIs(t, err, ErrResourceExhausted)

	// memoization keeps the parity over many variables linear
	names = make([]string, 64)
	for k := range names {
		names[k] = fmt.Sprintf("x%d", k)
	}
	bdd, v = mustVars(t, names, Itebudget(1000))
	h := bdd.False()
	for i := range v {
		h, err = bdd.Xor(v[i], h)
		require.NoError(t, err)
	}
	x, err := bdd.Xor(h, v[0])
	require.NoError(t, err)
	_, err = bdd.And(h, x)
	require.NoError(t, err)
	assert.Greater(t, bdd.Stats().OpHit, 0)
}
