package combine

import (
	"math"

	"github.com/clipsheep6/ability-runtime-sub005/compiler/gate"
)

// NaN operands are checked before folding so the result is always the
// canonical NaN, whatever payload the operand had.

func (c *Combiner) reduceDoubleAdd(x gate.Gate) gate.Gate {
	m := gate.MatchFloat64Binop(c.g, x)

	// x + NaN => NaN
	// NaN + x => NaN
	if m.Right().IsNaN() || m.Left().IsNaN() {
		return c.b.NanValue()
	}

	if m.IsFoldable() {
		return c.b.Double(m.Left().ResolvedValue() + m.Right().ResolvedValue())
	}

	return gate.Nil
}

func (c *Combiner) reduceDoubleSub(x gate.Gate) gate.Gate {
	m := gate.MatchFloat64Binop(c.g, x)

	// x - NaN => NaN
	// NaN - x => NaN
	if m.Right().IsNaN() || m.Left().IsNaN() {
		return c.b.NanValue()
	}

	if m.IsFoldable() {
		return c.b.Double(m.Left().ResolvedValue() - m.Right().ResolvedValue())
	}

	return gate.Nil
}

func (c *Combiner) reduceDoubleMul(x gate.Gate) gate.Gate {
	m := gate.MatchFloat64Binop(c.g, x)

	// x * NaN => NaN
	if m.Right().IsNaN() {
		return c.b.NanValue()
	}

	if m.IsFoldable() {
		return c.b.Double(m.Left().ResolvedValue() * m.Right().ResolvedValue())
	}

	// x * -1.0 => -0.0 - x
	if m.Right().Is(-1) {
		return c.b.DoubleSub(c.b.Double(math.Copysign(0, -1)), m.Left().Gate())
	}

	// x * 2.0 => x + x
	if m.Right().Is(2) {
		return c.b.DoubleAdd(m.Left().Gate(), m.Left().Gate())
	}

	return gate.Nil
}

func (c *Combiner) reduceDoubleDiv(x gate.Gate) gate.Gate {
	m := gate.MatchFloat64Binop(c.g, x)

	// x / NaN => NaN
	// NaN / x => NaN
	if m.Right().IsNaN() || m.Left().IsNaN() {
		return c.b.NanValue()
	}

	if m.IsFoldable() {
		return c.b.Double(Divide(m.Left().ResolvedValue(), m.Right().ResolvedValue()))
	}

	return gate.Nil
}

// reduceDoubleMod leaves general folding to the runtime helper.
func (c *Combiner) reduceDoubleMod(x gate.Gate) gate.Gate {
	m := gate.MatchFloat64Binop(c.g, x)

	// x % 0 => NaN
	// x % NaN => NaN
	// NaN % x => NaN
	if m.Right().Is(0) || m.Right().IsNaN() || m.Left().IsNaN() {
		return c.b.NanValue()
	}

	return gate.Nil
}
