package gate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatcherResolvedValue(t *testing.T) {
	g := NewGraph()
	b := NewBuilder(g)

	k32 := b.Int32(-7)
	k64 := b.Int64(-7)
	x := g.New(Arg, I32)

	assert.True(t, Match[int32](g, k32).HasResolvedValue())
	assert.Equal(t, int32(-7), Match[int32](g, k32).ResolvedValue())
	assert.Equal(t, uint32(0xfffffff9), Match[uint32](g, k32).ResolvedValue())

	assert.False(t, Match[int64](g, k32).HasResolvedValue(), "width mismatch")
	assert.True(t, Match[int64](g, k64).Is(-7))
	assert.False(t, Match[int32](g, x).HasResolvedValue())
	assert.False(t, Match[int32](g, x).Is(0))

	assert.Panics(t, func() { Match[int32](g, x).ResolvedValue() })
	assert.Panics(t, func() { Match[int32](g, k64).ResolvedValue() })

	f := b.Double(1)
	assert.False(t, Match[int64](g, f).HasResolvedValue())
}

func TestMatcherPredicates(t *testing.T) {
	g := NewGraph()
	b := NewBuilder(g)

	for _, v := range []int32{1, 2, 64, 1 << 30, math.MinInt32} {
		assert.True(t, Match[int32](g, b.Int32(v)).IsPowerOf2(), "%d", v)
	}

	for _, v := range []int32{0, 3, -1, -2, math.MaxInt32} {
		assert.False(t, Match[int32](g, b.Int32(v)).IsPowerOf2(), "%d", v)
	}

	assert.Equal(t, 31, WhichPowerOfTwo[int32](math.MinInt32))
	assert.Equal(t, 63, WhichPowerOfTwo[int64](math.MinInt64))
	assert.Equal(t, 4, WhichPowerOfTwo[int64](16))

	k := Match[int32](g, b.Int32(5))
	assert.True(t, k.IsInRange(1, 31))
	assert.False(t, k.IsInRange(6, 31))

	x := g.New(Arg, I64)
	add := b.Int64Add(x, x)
	m := Match[int64](g, add)

	assert.True(t, m.IsAdd())
	assert.False(t, m.IsSub())
	assert.False(t, Match[int32](g, add).IsAdd(), "width mismatch")
	assert.Equal(t, Add, m.Opcode())
	assert.Equal(t, x, m.InputAt(1))

	assert.Equal(t, 32, Width[int32]())
	assert.Equal(t, 64, Width[uint64]())
}

func TestBinopMatcher(t *testing.T) {
	g := NewGraph()
	b := NewBuilder(g)

	x := g.New(Arg, I32)
	k := b.Int32(3)
	add := b.Int32Add(x, k)
	sq := b.Int32Mul(add, add)

	m := MatchBinop[int32](g, add)
	assert.Equal(t, x, m.Left().Gate())
	assert.True(t, m.Right().Is(3))
	assert.False(t, m.IsFoldable())
	assert.False(t, m.LeftEqualsRight())

	ms := MatchBinop[int32](g, sq)
	assert.True(t, ms.LeftEqualsRight())
	assert.True(t, ms.OwnsInput(add))
	assert.False(t, ms.OwnsInput(x))
	assert.False(t, ms.OwnsInput(sq), "no uses")

	g.New(Return, NoValue, add)
	assert.False(t, ms.OwnsInput(add))

	ms.SetLeft(k)
	assert.Equal(t, k, ms.Left().Gate())
	assert.Equal(t, k, g.ValueIn(add, 1), "graph is not changed")
	assert.Equal(t, add, g.ValueIn(sq, 0))

	cmp := b.Compare(NE, x, k)
	assert.Equal(t, NE, MatchBinop[int32](g, cmp).Cond())
	assert.True(t, Match[int32](g, cmp).IsIcmp())
}

func TestFloat64Matcher(t *testing.T) {
	g := NewGraph()
	b := NewBuilder(g)

	nan := b.NanValue()
	two := b.Double(2)
	x := g.New(Arg, F64)

	assert.True(t, MatchFloat64(g, nan).IsNaN())
	assert.False(t, MatchFloat64(g, two).IsNaN())
	assert.True(t, MatchFloat64(g, two).Is(2))
	assert.False(t, MatchFloat64(g, x).HasResolvedValue())
	assert.False(t, MatchFloat64(g, b.Int64(2)).Is(2))

	m := MatchFloat64Binop(g, b.DoubleMul(x, two))
	assert.False(t, m.IsFoldable())
	assert.Equal(t, 2.0, m.Right().ResolvedValue())

	assert.Panics(t, func() { m.Left().ResolvedValue() })
}
