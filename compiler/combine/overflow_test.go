package combine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clipsheep6/ability-runtime-sub005/compiler/gate"
)

func (e *env) extract(tuple gate.Gate) (val, flag gate.Gate) {
	val = e.use(e.g.New(gate.ExtractValue, e.g.MachineType(tuple), tuple, e.b.Int32(0)))
	flag = e.use(e.g.New(gate.ExtractValue, gate.I1, tuple, e.b.Int32(1)))

	return
}

func TestExtractFoldsOverflow(t *testing.T) {
	e := newEnv(t)

	tuple := e.g.New(gate.AddWithOverflow, gate.I32, e.b.Int32(math.MaxInt32), e.b.Int32(1))
	val, flag := e.extract(tuple)

	assert.Equal(t, int32(math.MinInt32), e.int32Of(t, e.c.VisitGate(val)))
	assert.True(t, e.boolOf(t, e.c.VisitGate(flag)))

	tuple = e.g.New(gate.SubWithOverflow, gate.I64, e.b.Int64(10), e.b.Int64(3))
	val, flag = e.extract(tuple)

	assert.Equal(t, int64(7), e.int64Of(t, e.c.VisitGate(val)))
	assert.False(t, e.boolOf(t, e.c.VisitGate(flag)))

	tuple = e.g.New(gate.MulWithOverflow, gate.I64, e.b.Int64(1<<62), e.b.Int64(4))
	val, flag = e.extract(tuple)

	assert.Equal(t, int64(0), e.int64Of(t, e.c.VisitGate(val)))
	assert.True(t, e.boolOf(t, e.c.VisitGate(flag)))
}

func TestExtractIdentityOperand(t *testing.T) {
	e := newEnv(t)

	x := e.arg(gate.I32)

	for _, op := range []gate.Op{gate.AddWithOverflow, gate.SubWithOverflow} {
		tuple := e.g.New(op, gate.I32, x, e.b.Int32(0))
		val, flag := e.extract(tuple)

		assert.Equal(t, x, e.c.VisitGate(val), "%v", op)
		assert.False(t, e.boolOf(t, e.c.VisitGate(flag)), "%v", op)
	}

	tuple := e.g.New(gate.MulWithOverflow, gate.I32, x, e.b.Int32(0))
	val, flag := e.extract(tuple)

	assert.Equal(t, int32(0), e.int32Of(t, e.c.VisitGate(val)))
	assert.False(t, e.boolOf(t, e.c.VisitGate(flag)))

	tuple = e.g.New(gate.MulWithOverflow, gate.I32, x, e.b.Int32(1))
	val, flag = e.extract(tuple)

	assert.Equal(t, x, e.c.VisitGate(val))
	assert.False(t, e.boolOf(t, e.c.VisitGate(flag)))

	tuple = e.g.New(gate.SubWithOverflow, gate.I32, x, e.b.Int32(5))
	val, flag = e.extract(tuple)

	assert.Equal(t, gate.Nil, e.c.VisitGate(val))
	assert.Equal(t, gate.Nil, e.c.VisitGate(flag))
}

func TestExtractOtherTuple(t *testing.T) {
	e := newEnv(t)

	p := e.arg(gate.NoValue)
	ext := e.use(e.g.New(gate.ExtractValue, gate.I32, p, e.b.Int32(1)))

	assert.Equal(t, gate.Nil, e.c.VisitGate(ext))
}

func TestExtractBadIndexPanics(t *testing.T) {
	e := newEnv(t)

	tuple := e.g.New(gate.AddWithOverflow, gate.I32, e.b.Int32(1), e.b.Int32(2))
	ext := e.use(e.g.New(gate.ExtractValue, gate.I32, tuple, e.b.Int32(2)))

	assert.Panics(t, func() { e.c.VisitGate(ext) })
}
