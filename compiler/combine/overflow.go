package combine

import (
	"fmt"

	"github.com/clipsheep6/ability-runtime-sub005/compiler/gate"
)

// visitExtractValue reduces reading the result (index 0) or the overflow
// flag (index 1) of an overflow checked add, sub or mul.
func (c *Combiner) visitExtractValue(x gate.Gate) gate.Gate {
	n := gate.MatchBinop[int32](c.g, x)

	index := n.Right().ResolvedValue()
	if index != 0 && index != 1 {
		panic(fmt.Sprintf("combine: extract value %d: index %d out of range", x, index))
	}

	tuple := n.Left().Gate()

	switch c.g.Op(tuple) {
	case gate.AddWithOverflow, gate.SubWithOverflow, gate.MulWithOverflow:
	default:
		return gate.Nil
	}

	switch c.g.MachineType(tuple) {
	case gate.I32:
		return reduceOverflow[int32](c, tuple, index == 1)
	case gate.I64:
		return reduceOverflow[int64](c, tuple, index == 1)
	}

	return gate.Nil
}

func reduceOverflow[T Word](c *Combiner, tuple gate.Gate, flag bool) gate.Gate {
	m := gate.MatchBinop[T](c.g, tuple)

	if m.IsFoldable() {
		l, r := m.Left().ResolvedValue(), m.Right().ResolvedValue()

		var val T
		var ovf bool

		switch c.g.Op(tuple) {
		case gate.AddWithOverflow:
			val, ovf = SignedAddOverflow(l, r)
		case gate.SubWithOverflow:
			val, ovf = SignedSubOverflow(l, r)
		case gate.MulWithOverflow:
			val, ovf = SignedMulOverflow(l, r)
		}

		if flag {
			return c.b.Boolean(ovf)
		}

		return intConst(c, val)
	}

	switch c.g.Op(tuple) {
	case gate.AddWithOverflow, gate.SubWithOverflow:
		// x +- 0 => (x, false)
		if m.Right().Is(0) {
			if flag {
				return c.b.False()
			}

			return m.Left().Gate()
		}
	case gate.MulWithOverflow:
		// x * 0 => (0, false)
		if m.Right().Is(0) {
			if flag {
				return c.b.False()
			}

			return intConst[T](c, 0)
		}

		// x * 1 => (x, false)
		if m.Right().Is(1) {
			if flag {
				return c.b.False()
			}

			return m.Left().Gate()
		}
	}

	return gate.Nil
}
