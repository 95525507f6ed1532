package gate

import (
	"math"

	"tlog.app/go/loc"
)

type (
	// Builder materializes new gates. It never touches existing edges.
	Builder struct {
		g *Graph
	}
)

// NaNBits is the canonical quiet NaN.
const NaNBits = 0x7ff8000000000000

func NewBuilder(g *Graph) *Builder {
	return &Builder{g: g}
}

func (b *Builder) Graph() *Graph { return b.g }

func (b *Builder) Int32(v int32) Gate {
	return b.g.add(loc.Caller(1), Constant, I32, EQ, uint64(uint32(v)), nil)
}

func (b *Builder) Int64(v int64) Gate {
	return b.g.add(loc.Caller(1), Constant, I64, EQ, uint64(v), nil)
}

// Int makes an integer constant of type mt truncated to its width.
func (b *Builder) Int(mt MachineType, v int64) Gate {
	return b.g.add(loc.Caller(1), Constant, mt, EQ, truncate(mt, uint64(v)), nil)
}

func (b *Builder) Double(v float64) Gate {
	return b.g.add(loc.Caller(1), Constant, F64, EQ, math.Float64bits(v), nil)
}

func (b *Builder) NanValue() Gate {
	return b.g.add(loc.Caller(1), Constant, F64, EQ, NaNBits, nil)
}

func (b *Builder) Boolean(v bool) Gate {
	var x uint64
	if v {
		x = 1
	}

	return b.g.add(loc.Caller(1), Constant, I1, EQ, x, nil)
}

func (b *Builder) True() Gate  { return b.g.add(loc.Caller(1), Constant, I1, EQ, 1, nil) }
func (b *Builder) False() Gate { return b.g.add(loc.Caller(1), Constant, I1, EQ, 0, nil) }

func (b *Builder) Binary(op Op, mt MachineType, l, r Gate) Gate {
	return b.g.add(loc.Caller(1), op, mt, EQ, 0, []Gate{l, r})
}

func (b *Builder) Unary(op Op, mt MachineType, x Gate) Gate {
	return b.g.add(loc.Caller(1), op, mt, EQ, 0, []Gate{x})
}

func (b *Builder) Compare(c Cond, l, r Gate) Gate {
	return b.g.add(loc.Caller(1), ICmp, I1, c, 0, []Gate{l, r})
}

func (b *Builder) binary(op Op, mt MachineType, l, r Gate) Gate {
	return b.g.add(loc.Caller(2), op, mt, EQ, 0, []Gate{l, r})
}

func (b *Builder) Int32Add(l, r Gate) Gate { return b.binary(Add, I32, l, r) }
func (b *Builder) Int64Add(l, r Gate) Gate { return b.binary(Add, I64, l, r) }
func (b *Builder) Int32Sub(l, r Gate) Gate { return b.binary(Sub, I32, l, r) }
func (b *Builder) Int64Sub(l, r Gate) Gate { return b.binary(Sub, I64, l, r) }
func (b *Builder) Int32Mul(l, r Gate) Gate { return b.binary(Mul, I32, l, r) }
func (b *Builder) Int64Mul(l, r Gate) Gate { return b.binary(Mul, I64, l, r) }
func (b *Builder) Int32Div(l, r Gate) Gate { return b.binary(SDiv, I32, l, r) }
func (b *Builder) Int64Div(l, r Gate) Gate { return b.binary(SDiv, I64, l, r) }
func (b *Builder) Int32Mod(l, r Gate) Gate { return b.binary(SMod, I32, l, r) }
func (b *Builder) Int32And(l, r Gate) Gate { return b.binary(And, I32, l, r) }
func (b *Builder) Int64And(l, r Gate) Gate { return b.binary(And, I64, l, r) }
func (b *Builder) Int32Or(l, r Gate) Gate  { return b.binary(Or, I32, l, r) }
func (b *Builder) Int64Or(l, r Gate) Gate  { return b.binary(Or, I64, l, r) }
func (b *Builder) Int32Xor(l, r Gate) Gate { return b.binary(Xor, I32, l, r) }
func (b *Builder) Int64Xor(l, r Gate) Gate { return b.binary(Xor, I64, l, r) }
func (b *Builder) Int32LSL(l, r Gate) Gate { return b.binary(Lsl, I32, l, r) }
func (b *Builder) Int64LSL(l, r Gate) Gate { return b.binary(Lsl, I64, l, r) }
func (b *Builder) Int32LSR(l, r Gate) Gate { return b.binary(Lsr, I32, l, r) }
func (b *Builder) Int64LSR(l, r Gate) Gate { return b.binary(Lsr, I64, l, r) }
func (b *Builder) Int32ASR(l, r Gate) Gate { return b.binary(Asr, I32, l, r) }
func (b *Builder) Int64ASR(l, r Gate) Gate { return b.binary(Asr, I64, l, r) }

func (b *Builder) DoubleAdd(l, r Gate) Gate { return b.binary(Add, F64, l, r) }
func (b *Builder) DoubleSub(l, r Gate) Gate { return b.binary(Sub, F64, l, r) }
func (b *Builder) DoubleMul(l, r Gate) Gate { return b.binary(Mul, F64, l, r) }
func (b *Builder) DoubleDiv(l, r Gate) Gate { return b.binary(FDiv, F64, l, r) }
func (b *Builder) DoubleMod(l, r Gate) Gate { return b.binary(SMod, F64, l, r) }

func truncate(mt MachineType, v uint64) uint64 {
	w := mt.Bits()
	if w == 0 || w >= 64 {
		return v
	}

	return v & (1<<w - 1)
}
