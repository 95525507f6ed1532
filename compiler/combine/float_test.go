package combine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipsheep6/ability-runtime-sub005/compiler/gate"
)

func TestDoubleNaNPropagates(t *testing.T) {
	e := newEnv(t)

	x := e.arg(gate.F64)
	payload := e.g.NewConstant(gate.F64, 0x7ff8000000000123)

	for name, g := range map[string]gate.Gate{
		"add_right": e.b.DoubleAdd(x, payload),
		"add_left":  e.b.DoubleAdd(payload, x),
		"sub_right": e.b.DoubleSub(x, payload),
		"sub_left":  e.b.DoubleSub(payload, x),
		"mul_right": e.b.DoubleMul(x, payload),
		"div_right": e.b.DoubleDiv(x, payload),
		"div_left":  e.b.DoubleDiv(payload, x),
		"mod_right": e.b.DoubleMod(x, payload),
		"mod_left":  e.b.DoubleMod(payload, x),
	} {
		res := e.c.VisitGate(e.use(g))
		require.NotEqual(t, gate.Nil, res, name)

		assert.Equal(t, uint64(gate.NaNBits), e.g.ConstantValue(res), name)
	}
}

func TestDoubleFold(t *testing.T) {
	e := newEnv(t)

	add := e.use(e.b.DoubleAdd(e.b.Double(1.5), e.b.Double(2.25)))
	assert.Equal(t, 3.75, e.float64Of(t, e.c.VisitGate(add)))

	sub := e.use(e.b.DoubleSub(e.b.Double(1.5), e.b.Double(2.25)))
	assert.Equal(t, -0.75, e.float64Of(t, e.c.VisitGate(sub)))

	mul := e.use(e.b.DoubleMul(e.b.Double(1.5), e.b.Double(3)))
	assert.Equal(t, 4.5, e.float64Of(t, e.c.VisitGate(mul)))

	div := e.use(e.b.DoubleDiv(e.b.Double(1), e.b.Double(0)))
	assert.True(t, math.IsInf(e.float64Of(t, e.c.VisitGate(div)), 1))

	div = e.use(e.b.DoubleDiv(e.b.Double(-1), e.b.Double(0)))
	assert.True(t, math.IsInf(e.float64Of(t, e.c.VisitGate(div)), -1))

	div = e.use(e.b.DoubleDiv(e.b.Double(0), e.b.Double(0)))
	assert.True(t, math.IsNaN(e.float64Of(t, e.c.VisitGate(div))))

	mod := e.use(e.b.DoubleMod(e.b.Double(5), e.b.Double(3)))
	assert.Equal(t, gate.Nil, e.c.VisitGate(mod))
}

func TestDoubleMulRules(t *testing.T) {
	e := newEnv(t)

	x := e.arg(gate.F64)

	mul := e.use(e.b.DoubleMul(x, e.b.Double(-1)))
	l, r := e.requireBinary(t, e.c.VisitGate(mul), gate.Sub, gate.F64)

	zero := e.float64Of(t, l)
	assert.Equal(t, 0.0, zero)
	assert.True(t, math.Signbit(zero))
	assert.Equal(t, x, r)

	mul = e.use(e.b.DoubleMul(x, e.b.Double(2)))
	l, r = e.requireBinary(t, e.c.VisitGate(mul), gate.Add, gate.F64)
	assert.Equal(t, x, l)
	assert.Equal(t, x, r)

	mul = e.use(e.b.DoubleMul(x, e.b.Double(3)))
	assert.Equal(t, gate.Nil, e.c.VisitGate(mul))
}

func TestDoubleMulConstantByMinusOneFolds(t *testing.T) {
	e := newEnv(t)

	mul := e.use(e.b.DoubleMul(e.b.Double(2.5), e.b.Double(-1)))
	assert.Equal(t, -2.5, e.float64Of(t, e.c.VisitGate(mul)))

	mul = e.use(e.b.DoubleMul(e.b.NanValue(), e.b.Double(-1)))
	assert.True(t, math.IsNaN(e.float64Of(t, e.c.VisitGate(mul))))
}

func TestDoubleModByZero(t *testing.T) {
	e := newEnv(t)

	x := e.arg(gate.F64)

	mod := e.use(e.b.DoubleMod(x, e.b.Double(0)))
	assert.True(t, math.IsNaN(e.float64Of(t, e.c.VisitGate(mod))))

	mod = e.use(e.b.DoubleMod(x, e.b.Double(3)))
	assert.Equal(t, gate.Nil, e.c.VisitGate(mod))
}

func TestDoubleIgnoresIntConstants(t *testing.T) {
	e := newEnv(t)

	// an i64 operand is not a double even if its bits are
	x := e.arg(gate.F64)
	add := e.use(e.b.DoubleAdd(x, e.b.Int64(int64(gate.NaNBits))))

	assert.Equal(t, gate.Nil, e.c.VisitGate(add))
}
