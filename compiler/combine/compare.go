package combine

import (
	"github.com/clipsheep6/ability-runtime-sub005/compiler/gate"
)

func (c *Combiner) visitICmp(x gate.Gate) gate.Gate {
	r := c.g.ValueIn(x, 1)

	switch c.g.MachineType(r).Bits() {
	case 32:
		return reduceICmp[int32](c, x)
	case 64:
		return reduceICmp[int64](c, x)
	}

	return gate.Nil
}

// reduceICmp proves equality compares false by bit disjointness.
func reduceICmp[T Word](c *Combiner, x gate.Gate) gate.Gate {
	m := gate.MatchBinop[T](c.g, x)

	if m.Cond() != gate.EQ || !m.Right().HasResolvedValue() {
		return gate.Nil
	}

	if m.Left().IsInt64ToTagged() {
		m.SetLeft(m.Left().InputAt(0))
	}

	// EQ(x | K1, K2) => false if K1 | K2 != K2
	if m.Left().IsOr() {
		mor := gate.MatchBinop[T](c.g, m.Left().Gate())

		if mor.Right().HasResolvedValue() {
			k1 := mor.Right().ResolvedValue()
			k2 := m.Right().ResolvedValue()

			if k1|k2 != k2 {
				return c.b.False()
			}
		}
	}

	// EQ((x | K1) & K2, 0) => false if K2 != 0 and K1 & K2 != 0
	if m.Left().IsAnd() && m.Right().Is(0) {
		mand := gate.MatchBinop[T](c.g, m.Left().Gate())

		if mand.Left().IsOr() && mand.Right().HasResolvedValue() && !mand.Right().Is(0) {
			mor := gate.MatchBinop[T](c.g, mand.Left().Gate())

			var k1 T
			if mor.Right().HasResolvedValue() {
				k1 = mor.Right().ResolvedValue()
			}

			if k1&mand.Right().ResolvedValue() != 0 {
				return c.b.False()
			}
		}
	}

	return gate.Nil
}

func (c *Combiner) visitRev(x gate.Gate) gate.Gate {
	in := c.g.ValueIn(x, 0)

	// REV K => !K
	if c.g.Op(in) == gate.Constant && c.g.MachineType(in) == gate.I1 {
		if c.g.ConstantValue(in) == 0 {
			return c.b.True()
		}

		return c.b.False()
	}

	return gate.Nil
}
