package combine

import (
	"github.com/clipsheep6/ability-runtime-sub005/compiler/gate"
)

// visitConvert only cancels a conversion applied to its exact inverse.
// Folding conversions of constants is not done yet.
func (c *Combiner) visitConvert(x gate.Gate) gate.Gate {
	in := gate.Match[int64](c.g, c.g.ValueIn(x, 0))

	switch c.g.Op(x) {
	case gate.TaggedToInt64:
		if in.IsInt64ToTagged() {
			return in.InputAt(0)
		}
	case gate.Int64ToTagged:
		if in.IsTaggedToInt64() {
			return in.InputAt(0)
		}
	case gate.SignedIntToFloat:
		if in.IsFloatToSignedInt() {
			return in.InputAt(0)
		}
	case gate.FloatToSignedInt:
		if in.IsSignedIntToFloat() {
			return in.InputAt(0)
		}
	case gate.UnsignedFloatToInt,
		gate.Bitcast, gate.Zext, gate.Sext, gate.Trunc, gate.Fext, gate.Ftrunc:
	}

	return gate.Nil
}
