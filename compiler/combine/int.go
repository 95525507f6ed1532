package combine

import (
	"github.com/clipsheep6/ability-runtime-sub005/compiler/gate"
)

func reduceAdd[T Word](c *Combiner, x gate.Gate) gate.Gate {
	m := gate.MatchBinop[T](c.g, x)

	// x + 0 => x
	if m.Right().Is(0) {
		return m.Left().Gate()
	}

	// K + K => K
	if m.IsFoldable() {
		return intConst(c, AddWithWraparound(m.Left().ResolvedValue(), m.Right().ResolvedValue()))
	}

	// (0 - x) + y => y - x
	if m.Left().IsSub() {
		ml := gate.MatchBinop[T](c.g, m.Left().Gate())

		if ml.Left().Is(0) {
			return c.b.Binary(gate.Sub, wordType[T](), m.Right().Gate(), ml.Right().Gate())
		}
	}

	// y + (0 - x) => y - x
	if m.Right().IsSub() {
		mr := gate.MatchBinop[T](c.g, m.Right().Gate())

		if mr.Left().Is(0) {
			return c.b.Binary(gate.Sub, wordType[T](), m.Left().Gate(), mr.Right().Gate())
		}
	}

	// (x + a) + b => x + (a + b)
	if m.Right().HasResolvedValue() && m.Left().IsAdd() {
		ml := gate.MatchBinop[T](c.g, m.Left().Gate())

		if ml.Right().HasResolvedValue() && m.OwnsInput(ml.Gate()) {
			k := intConst(c, AddWithWraparound(ml.Right().ResolvedValue(), m.Right().ResolvedValue()))

			c.g.ReplaceValueIn(x, ml.Left().Gate(), 0)
			c.g.ReplaceValueIn(x, k, 1)

			return x
		}
	}

	return gate.Nil
}

func reduceSub[T Word](c *Combiner, x gate.Gate) gate.Gate {
	m := gate.MatchBinop[T](c.g, x)

	// x - 0 => x
	if m.Right().Is(0) {
		return m.Left().Gate()
	}

	if m.IsFoldable() {
		return intConst(c, SubWithWraparound(m.Left().ResolvedValue(), m.Right().ResolvedValue()))
	}

	// x - x => 0
	if m.LeftEqualsRight() {
		return intConst[T](c, 0)
	}

	// x - K => x + -K
	if m.Right().HasResolvedValue() {
		k := intConst(c, NegateWithWraparound(m.Right().ResolvedValue()))

		return c.b.Binary(gate.Add, wordType[T](), m.Left().Gate(), k)
	}

	return gate.Nil
}

func reduceMul[T Word](c *Combiner, x gate.Gate) gate.Gate {
	m := gate.MatchBinop[T](c.g, x)

	// x * 0 => 0
	if m.Right().Is(0) {
		return m.Right().Gate()
	}

	// x * 1 => x
	if m.Right().Is(1) {
		return m.Left().Gate()
	}

	if m.IsFoldable() {
		return intConst(c, MulWithWraparound(m.Left().ResolvedValue(), m.Right().ResolvedValue()))
	}

	// x * -1 => 0 - x
	if m.Right().Is(-1) {
		return c.b.Binary(gate.Sub, wordType[T](), intConst[T](c, 0), m.Left().Gate())
	}

	// x * 2^n => x << n
	if m.Right().IsPowerOf2() {
		n := T(gate.WhichPowerOfTwo(m.Right().ResolvedValue()))

		return c.b.Binary(gate.Lsl, wordType[T](), m.Left().Gate(), intConst(c, n))
	}

	// (x * a) * b => x * (a * b)
	if m.Right().HasResolvedValue() && m.Left().IsMul() {
		ml := gate.MatchBinop[T](c.g, m.Left().Gate())

		if ml.Right().HasResolvedValue() && m.OwnsInput(ml.Gate()) {
			k := intConst(c, MulWithWraparound(ml.Right().ResolvedValue(), m.Right().ResolvedValue()))

			c.g.ReplaceValueIn(x, ml.Left().Gate(), 0)
			c.g.ReplaceValueIn(x, k, 1)

			return x
		}
	}

	return gate.Nil
}

func reduceDiv[T Word](c *Combiner, x gate.Gate) gate.Gate {
	m := gate.MatchBinop[T](c.g, x)

	// 0 / x => 0
	if m.Left().Is(0) {
		return m.Left().Gate()
	}

	// x / 0 => 0
	if m.Right().Is(0) {
		return m.Right().Gate()
	}

	// x / 1 => x
	if m.Right().Is(1) {
		return m.Left().Gate()
	}

	if m.IsFoldable() {
		return intConst(c, SignedDiv(m.Left().ResolvedValue(), m.Right().ResolvedValue()))
	}

	// x / -1 => 0 - x
	if m.Right().Is(-1) {
		return c.b.Binary(gate.Sub, wordType[T](), intConst[T](c, 0), m.Left().Gate())
	}

	// x / -K => 0 - (x / K)
	// MIN has no positive counterpart, leave it be.
	if m.Right().HasResolvedValue() {
		k := m.Right().ResolvedValue()

		if k < 0 && k != minOf[T]() {
			div := c.b.Binary(gate.SDiv, wordType[T](), m.Left().Gate(), intConst(c, -k))

			return c.b.Binary(gate.Sub, wordType[T](), intConst[T](c, 0), div)
		}
	}

	return gate.Nil
}

func reduceMod[T Word](c *Combiner, x gate.Gate) gate.Gate {
	m := gate.MatchBinop[T](c.g, x)

	// 0 % x => 0
	if m.Left().Is(0) {
		return m.Left().Gate()
	}

	// x % 0 => 0
	if m.Right().Is(0) {
		return m.Right().Gate()
	}

	// x % 1 => 0
	// x % -1 => 0
	if m.Right().Is(1) || m.Right().Is(-1) {
		return intConst[T](c, 0)
	}

	// x % x => 0
	if m.LeftEqualsRight() {
		return intConst[T](c, 0)
	}

	if m.IsFoldable() {
		return intConst(c, SignedMod(m.Left().ResolvedValue(), m.Right().ResolvedValue()))
	}

	return gate.Nil
}

func reduceAnd[T Word](c *Combiner, x gate.Gate) gate.Gate {
	m := gate.MatchBinop[T](c.g, x)

	// x & 0 => 0
	if m.Right().Is(0) {
		return m.Right().Gate()
	}

	// x & -1 => x
	if m.Right().Is(-1) {
		return m.Left().Gate()
	}

	// CMP & 1 => CMP
	if m.Left().IsIcmp() && m.Right().Is(1) {
		return m.Left().Gate()
	}

	if m.IsFoldable() {
		return intConst(c, m.Left().ResolvedValue()&m.Right().ResolvedValue())
	}

	// x & x => x
	if m.LeftEqualsRight() {
		return m.Left().Gate()
	}

	// (x & K1) & K2 => x & (K1 & K2)
	if m.Left().IsAnd() && m.Right().HasResolvedValue() {
		ml := gate.MatchBinop[T](c.g, m.Left().Gate())

		if ml.Right().HasResolvedValue() && m.OwnsInput(ml.Gate()) {
			k := intConst(c, ml.Right().ResolvedValue()&m.Right().ResolvedValue())

			return c.b.Binary(gate.And, wordType[T](), ml.Left().Gate(), k)
		}
	}

	return gate.Nil
}

func reduceOr[T Word](c *Combiner, x gate.Gate) gate.Gate {
	m := gate.MatchBinop[T](c.g, x)

	// x | 0 => x
	if m.Right().Is(0) {
		return m.Left().Gate()
	}

	// x | -1 => -1
	if m.Right().Is(-1) {
		return m.Right().Gate()
	}

	if m.IsFoldable() {
		return intConst(c, m.Left().ResolvedValue()|m.Right().ResolvedValue())
	}

	// x | x => x
	if m.LeftEqualsRight() {
		return m.Left().Gate()
	}

	// (x & K1) | K2 => x | K2 if K2 has ones for every zero bit in K1
	if m.Right().HasResolvedValue() && m.Left().IsAnd() {
		ml := gate.MatchBinop[T](c.g, m.Left().Gate())

		if ml.Right().HasResolvedValue() && ml.Right().ResolvedValue()|m.Right().ResolvedValue() == -1 {
			c.g.ReplaceValueIn(x, ml.Left().Gate(), 0)

			return x
		}
	}

	return gate.Nil
}

func reduceXor[T Word](c *Combiner, x gate.Gate) gate.Gate {
	m := gate.MatchBinop[T](c.g, x)

	// x ^ 0 => x
	if m.Right().Is(0) {
		return m.Left().Gate()
	}

	if m.IsFoldable() {
		return intConst(c, m.Left().ResolvedValue()^m.Right().ResolvedValue())
	}

	// x ^ x => 0
	if m.LeftEqualsRight() {
		return intConst[T](c, 0)
	}

	// (x ^ -1) ^ -1 => x
	if m.Left().IsXor() && m.Right().Is(-1) {
		ml := gate.MatchBinop[T](c.g, m.Left().Gate())

		if ml.Right().Is(-1) {
			return ml.Left().Gate()
		}
	}

	return gate.Nil
}

func reduceLsr[T UWord](c *Combiner, x gate.Gate) gate.Gate {
	m := gate.MatchBinop[T](c.g, x)
	mask := T(gate.Width[T]() - 1)

	// x >>> 0 => x
	if m.Right().Is(0) {
		return m.Left().Gate()
	}

	if m.IsFoldable() {
		return intConst(c, m.Left().ResolvedValue()>>(m.Right().ResolvedValue()&mask))
	}

	// (K >>> s) == 0 implies ((x & K) >>> s) == 0
	if m.Left().IsAnd() && m.Right().HasResolvedValue() {
		ml := gate.MatchBinop[T](c.g, m.Left().Gate())

		if ml.Right().HasResolvedValue() && ml.Right().ResolvedValue()>>(m.Right().ResolvedValue()&mask) == 0 {
			return intConst[T](c, 0)
		}
	}

	return gate.Nil
}

func reduceAsr[T Word](c *Combiner, x gate.Gate) gate.Gate {
	m := gate.MatchBinop[T](c.g, x)
	w := gate.Width[T]()
	mask := T(w - 1)

	// x >> 0 => x
	if m.Right().Is(0) {
		return m.Left().Gate()
	}

	if m.IsFoldable() {
		return intConst(c, m.Left().ResolvedValue()>>(m.Right().ResolvedValue()&mask))
	}

	if !m.Left().IsLsl() {
		return gate.Nil
	}

	ml := gate.MatchBinop[T](c.g, m.Left().Gate())

	switch {
	case ml.Left().IsIcmp():
		// (CMP << w-1) >> w-1 => 0 - CMP
		if m.Right().Is(T(w-1)) && ml.Right().Is(T(w-1)) {
			return c.b.Binary(gate.Sub, wordType[T](), intConst[T](c, 0), ml.Left().Gate())
		}
	case ml.Left().IsLoad():
		// (i8 load << w-8) >> w-8 => i8 load
		if m.Right().Is(T(w-8)) && ml.Right().Is(T(w-8)) && c.g.MachineType(ml.Left().Gate()) == gate.I8 {
			return ml.Left().Gate()
		}
	}

	return gate.Nil
}

func reduceLsl[T Word](c *Combiner, x gate.Gate) gate.Gate {
	m := gate.MatchBinop[T](c.g, x)
	w := T(gate.Width[T]())

	// x << 0 => x
	if m.Right().Is(0) {
		return m.Left().Gate()
	}

	if m.IsFoldable() {
		return intConst(c, ShlWithWraparound(m.Left().ResolvedValue(), m.Right().ResolvedValue()))
	}

	// (x >>> K) << K => x & ~(2^K - 1)
	// (x >> K) << K => x & ~(2^K - 1)
	if m.Right().IsInRange(1, w-1) && (m.Left().IsAsr() || m.Left().IsLsr()) {
		ml := gate.MatchBinop[T](c.g, m.Left().Gate())
		k := m.Right().ResolvedValue()

		if ml.Right().Is(k) {
			return c.b.Binary(gate.And, wordType[T](), ml.Left().Gate(), intConst(c, T(-1)<<k))
		}
	}

	return gate.Nil
}
