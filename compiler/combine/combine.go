package combine

import (
	"context"
	"fmt"

	"tlog.app/go/tlog"

	"github.com/clipsheep6/ability-runtime-sub005/compiler/gate"
)

type (
	// Combiner rewrites single gates into simpler equivalent ones.
	// It keeps no state between VisitGate calls.
	Combiner struct {
		g *gate.Graph
		b *gate.Builder

		tr tlog.Span
	}
)

func New(ctx context.Context, g *gate.Graph) *Combiner {
	return &Combiner{
		g:  g,
		b:  gate.NewBuilder(g),
		tr: tlog.SpanFromContext(ctx),
	}
}

// VisitGate returns gate.Nil if x can't be simplified.
// Otherwise it returns x itself if x was rewritten in place, or the gate all
// users of x should be redirected to. Redirecting is up to the caller.
func (c *Combiner) VisitGate(x gate.Gate) (res gate.Gate) {
	op := c.g.Op(x)

	switch op {
	case gate.Add:
		res = c.visitAdd(x)
	case gate.Sub:
		res = c.visitSub(x)
	case gate.Mul:
		res = c.visitMul(x)
	case gate.SDiv:
		res = c.visitSDiv(x)
	case gate.FDiv:
		res = c.visitFDiv(x)
	case gate.SMod:
		res = c.visitSMod(x)
	case gate.And:
		res = c.visitAnd(x)
	case gate.Or:
		res = c.visitOr(x)
	case gate.Xor:
		res = c.visitXor(x)
	case gate.Asr:
		res = c.visitAsr(x)
	case gate.Lsl:
		res = c.visitLsl(x)
	case gate.Lsr:
		res = c.visitLsr(x)
	case gate.ICmp:
		res = c.visitICmp(x)
	case gate.Rev:
		res = c.visitRev(x)
	case gate.IfBranch:
		res = c.visitBranch(x)
	case gate.ExtractValue:
		res = c.visitExtractValue(x)
	case gate.TaggedToInt64, gate.Int64ToTagged, gate.SignedIntToFloat, gate.FloatToSignedInt,
		gate.UnsignedFloatToInt, gate.Bitcast, gate.Zext, gate.Sext, gate.Trunc, gate.Fext, gate.Ftrunc:
		res = c.visitConvert(x)
	case gate.Nop, gate.Constant, gate.Arg, gate.Load, gate.Return,
		gate.AddWithOverflow, gate.SubWithOverflow, gate.MulWithOverflow:
		return gate.Nil
	default:
		panic(fmt.Sprintf("combine: unsupported op %v of gate %d", op, x))
	}

	if res != gate.Nil && c.tr.If("combine") {
		c.tr.Printw("combine", "gate", x, "op", op, "type", c.g.MachineType(x),
			"result", res, "result_op", c.g.Op(res), "in_place", res == x, "from", c.g.From(res))
	}

	return res
}

// Sweep visits once every gate which exists when it starts, in id order,
// and redirects users of replaced gates. A gate which has no users by the
// time it is reached is skipped.
// It is not a fixpoint driver: newly built gates are left for the next sweep.
func (c *Combiner) Sweep(ctx context.Context) (changed int) {
	tr, _ := tlog.SpawnFromContextAndWrap(ctx, "combine: sweep", "gates", c.g.Len())
	defer tr.Finish()

	n := c.g.Len()

	for id := 0; id < n; id++ {
		x := gate.Gate(id)

		if c.g.UseCount(x) == 0 {
			continue
		}

		res := c.VisitGate(x)
		if res == gate.Nil {
			continue
		}

		changed++

		if res != x {
			c.g.UpdateAllUses(x, res)
		}
	}

	tr.Printw("sweep done", "changed", changed, "gates", c.g.Len())

	return changed
}

func (c *Combiner) visitAdd(x gate.Gate) gate.Gate {
	switch c.g.MachineType(x) {
	case gate.I32:
		return reduceAdd[int32](c, x)
	case gate.I64:
		return reduceAdd[int64](c, x)
	case gate.F64:
		return c.reduceDoubleAdd(x)
	}

	return gate.Nil
}

func (c *Combiner) visitSub(x gate.Gate) gate.Gate {
	switch c.g.MachineType(x) {
	case gate.I32:
		return reduceSub[int32](c, x)
	case gate.I64:
		return reduceSub[int64](c, x)
	case gate.F64:
		return c.reduceDoubleSub(x)
	}

	return gate.Nil
}

func (c *Combiner) visitMul(x gate.Gate) gate.Gate {
	switch c.g.MachineType(x) {
	case gate.I32:
		return reduceMul[int32](c, x)
	case gate.I64:
		return reduceMul[int64](c, x)
	case gate.F64:
		return c.reduceDoubleMul(x)
	}

	return gate.Nil
}

func (c *Combiner) visitSDiv(x gate.Gate) gate.Gate {
	switch c.g.MachineType(x) {
	case gate.I32:
		return reduceDiv[int32](c, x)
	case gate.I64:
		return reduceDiv[int64](c, x)
	}

	return gate.Nil
}

func (c *Combiner) visitFDiv(x gate.Gate) gate.Gate {
	switch c.g.MachineType(x) {
	case gate.F64:
		return c.reduceDoubleDiv(x)
	}

	return gate.Nil
}

func (c *Combiner) visitSMod(x gate.Gate) gate.Gate {
	switch c.g.MachineType(x) {
	case gate.I32:
		return reduceMod[int32](c, x)
	case gate.I64:
		return reduceMod[int64](c, x)
	case gate.F64:
		return c.reduceDoubleMod(x)
	}

	return gate.Nil
}

func (c *Combiner) visitAnd(x gate.Gate) gate.Gate {
	switch c.g.MachineType(x) {
	case gate.I32:
		return reduceAnd[int32](c, x)
	case gate.I64:
		return reduceAnd[int64](c, x)
	}

	return gate.Nil
}

func (c *Combiner) visitOr(x gate.Gate) gate.Gate {
	switch c.g.MachineType(x) {
	case gate.I32:
		return reduceOr[int32](c, x)
	case gate.I64:
		return reduceOr[int64](c, x)
	}

	return gate.Nil
}

func (c *Combiner) visitXor(x gate.Gate) gate.Gate {
	switch c.g.MachineType(x) {
	case gate.I32:
		return reduceXor[int32](c, x)
	case gate.I64:
		return reduceXor[int64](c, x)
	}

	return gate.Nil
}

func (c *Combiner) visitLsr(x gate.Gate) gate.Gate {
	switch c.g.MachineType(x) {
	case gate.I32:
		return reduceLsr[uint32](c, x)
	case gate.I64:
		return reduceLsr[uint64](c, x)
	}

	return gate.Nil
}

func (c *Combiner) visitAsr(x gate.Gate) gate.Gate {
	switch c.g.MachineType(x) {
	case gate.I32:
		return reduceAsr[int32](c, x)
	case gate.I64:
		return reduceAsr[int64](c, x)
	}

	return gate.Nil
}

func (c *Combiner) visitLsl(x gate.Gate) gate.Gate {
	switch c.g.MachineType(x) {
	case gate.I32:
		return reduceLsl[int32](c, x)
	case gate.I64:
		return reduceLsl[int64](c, x)
	}

	return gate.Nil
}

// visitBranch is where branch folding would go. Nothing is done yet.
func (c *Combiner) visitBranch(x gate.Gate) gate.Gate {
	return gate.Nil
}

func wordType[T Word | UWord]() gate.MachineType {
	if gate.Width[T]() == 32 {
		return gate.I32
	}

	return gate.I64
}

func intConst[T Word | UWord](c *Combiner, v T) gate.Gate {
	return c.b.Int(wordType[T](), int64(v))
}
