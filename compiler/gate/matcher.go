package gate

import (
	"fmt"
	"math"
	"math/bits"
	"unsafe"

	"golang.org/x/exp/constraints"
)

type (
	// Matcher is a read-only view of a gate as a value of type T.
	Matcher[T constraints.Integer] struct {
		g *Graph
		x Gate
	}

	// BinopMatcher views a two-input gate and its operands as T.
	BinopMatcher[T constraints.Integer] struct {
		Matcher[T]

		left  Matcher[T]
		right Matcher[T]
	}

	Float64Matcher struct {
		g *Graph
		x Gate
	}

	Float64BinopMatcher struct {
		Float64Matcher

		left  Float64Matcher
		right Float64Matcher
	}

	Int32BinopMatcher  = BinopMatcher[int32]
	Int64BinopMatcher  = BinopMatcher[int64]
	Uint32BinopMatcher = BinopMatcher[uint32]
	Uint64BinopMatcher = BinopMatcher[uint64]
)

func Match[T constraints.Integer](g *Graph, x Gate) Matcher[T] {
	return Matcher[T]{g: g, x: x}
}

func MatchBinop[T constraints.Integer](g *Graph, x Gate) BinopMatcher[T] {
	return BinopMatcher[T]{
		Matcher: Matcher[T]{g: g, x: x},
		left:    Matcher[T]{g: g, x: g.ValueIn(x, 0)},
		right:   Matcher[T]{g: g, x: g.ValueIn(x, 1)},
	}
}

// Width is the number of bits in T.
func Width[T constraints.Integer]() int {
	var zero T
	return int(unsafe.Sizeof(zero)) * 8
}

// WhichPowerOfTwo is the index of the lowest set bit of v.
func WhichPowerOfTwo[T constraints.Integer](v T) int {
	if Width[T]() == 64 {
		return bits.TrailingZeros64(uint64(v))
	}

	return bits.TrailingZeros32(uint32(v))
}

func (m Matcher[T]) Gate() Gate    { return m.x }
func (m Matcher[T]) Opcode() Op    { return m.g.Op(m.x) }
func (m Matcher[T]) Graph() *Graph { return m.g }

func (m Matcher[T]) InputAt(i int) Gate {
	return m.g.ValueIn(m.x, i)
}

func (m Matcher[T]) HasResolvedValue() bool {
	if m.g.Op(m.x) != Constant {
		return false
	}

	mt := m.g.MachineType(m.x)

	return mt.IsInt() && mt.Bits() == Width[T]()
}

// ResolvedValue must only be called after HasResolvedValue reported true.
func (m Matcher[T]) ResolvedValue() T {
	if !m.HasResolvedValue() {
		panic(fmt.Sprintf("gate: %d (%v %v) has no resolved %d-bit value", m.x, m.g.Op(m.x), m.g.MachineType(m.x), Width[T]()))
	}

	return T(m.g.ConstantValue(m.x))
}

func (m Matcher[T]) Is(k T) bool {
	return m.HasResolvedValue() && m.ResolvedValue() == k
}

func (m Matcher[T]) IsPowerOf2() bool {
	if !m.HasResolvedValue() {
		return false
	}

	v := m.ResolvedValue()

	return v != 0 && v&(v-1) == 0
}

func (m Matcher[T]) IsInRange(lo, hi T) bool {
	if !m.HasResolvedValue() {
		return false
	}

	v := m.ResolvedValue()

	return lo <= v && v <= hi
}

// IsOp reports whether the gate is op producing an integer of T's width.
func (m Matcher[T]) IsOp(op Op) bool {
	if m.g.Op(m.x) != op {
		return false
	}

	mt := m.g.MachineType(m.x)

	return mt.IsInt() && mt.Bits() == Width[T]()
}

func (m Matcher[T]) IsAdd() bool { return m.IsOp(Add) }
func (m Matcher[T]) IsSub() bool { return m.IsOp(Sub) }
func (m Matcher[T]) IsMul() bool { return m.IsOp(Mul) }
func (m Matcher[T]) IsAnd() bool { return m.IsOp(And) }
func (m Matcher[T]) IsOr() bool  { return m.IsOp(Or) }
func (m Matcher[T]) IsXor() bool { return m.IsOp(Xor) }
func (m Matcher[T]) IsLsl() bool { return m.IsOp(Lsl) }
func (m Matcher[T]) IsLsr() bool { return m.IsOp(Lsr) }
func (m Matcher[T]) IsAsr() bool { return m.IsOp(Asr) }

func (m Matcher[T]) IsIcmp() bool             { return m.g.Op(m.x) == ICmp }
func (m Matcher[T]) IsLoad() bool             { return m.g.Op(m.x) == Load }
func (m Matcher[T]) IsInt64ToTagged() bool    { return m.g.Op(m.x) == Int64ToTagged }
func (m Matcher[T]) IsTaggedToInt64() bool    { return m.g.Op(m.x) == TaggedToInt64 }
func (m Matcher[T]) IsSignedIntToFloat() bool { return m.g.Op(m.x) == SignedIntToFloat }
func (m Matcher[T]) IsFloatToSignedInt() bool { return m.g.Op(m.x) == FloatToSignedInt }

func (m BinopMatcher[T]) Left() Matcher[T]  { return m.left }
func (m BinopMatcher[T]) Right() Matcher[T] { return m.right }

// SetLeft looks at x instead of the gate's first input. The graph is not changed.
func (m *BinopMatcher[T]) SetLeft(x Gate) {
	m.left = Matcher[T]{g: m.g, x: x}
}

func (m BinopMatcher[T]) Cond() Cond { return m.g.Cond(m.x) }

// IsFoldable reports whether both operands are constants.
func (m BinopMatcher[T]) IsFoldable() bool {
	return m.left.HasResolvedValue() && m.right.HasResolvedValue()
}

// LeftEqualsRight compares operand identity, not value.
func (m BinopMatcher[T]) LeftEqualsRight() bool {
	return m.left.x == m.right.x
}

// OwnsInput reports whether the matched gate is the only consumer of in.
// Only then in may be absorbed by rewriting the matched gate's inputs.
func (m BinopMatcher[T]) OwnsInput(in Gate) bool {
	uses := m.g.Uses(in)
	if len(uses) == 0 {
		return false
	}

	for _, u := range uses {
		if u.Gate != m.x {
			return false
		}
	}

	return true
}

func MatchFloat64(g *Graph, x Gate) Float64Matcher {
	return Float64Matcher{g: g, x: x}
}

func MatchFloat64Binop(g *Graph, x Gate) Float64BinopMatcher {
	return Float64BinopMatcher{
		Float64Matcher: Float64Matcher{g: g, x: x},
		left:           Float64Matcher{g: g, x: g.ValueIn(x, 0)},
		right:          Float64Matcher{g: g, x: g.ValueIn(x, 1)},
	}
}

func (m Float64Matcher) Gate() Gate { return m.x }

func (m Float64Matcher) HasResolvedValue() bool {
	return m.g.Op(m.x) == Constant && m.g.MachineType(m.x) == F64
}

func (m Float64Matcher) ResolvedValue() float64 {
	if !m.HasResolvedValue() {
		panic(fmt.Sprintf("gate: %d (%v %v) has no resolved f64 value", m.x, m.g.Op(m.x), m.g.MachineType(m.x)))
	}

	return math.Float64frombits(m.g.ConstantValue(m.x))
}

func (m Float64Matcher) Is(k float64) bool {
	return m.HasResolvedValue() && m.ResolvedValue() == k
}

func (m Float64Matcher) IsNaN() bool {
	return m.HasResolvedValue() && math.IsNaN(m.ResolvedValue())
}

func (m Float64BinopMatcher) Left() Float64Matcher  { return m.left }
func (m Float64BinopMatcher) Right() Float64Matcher { return m.right }

func (m Float64BinopMatcher) IsFoldable() bool {
	return m.left.HasResolvedValue() && m.right.HasResolvedValue()
}
