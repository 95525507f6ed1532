package format

import (
	"context"
	"math"
	"path"
	"strconv"
	"strings"

	"github.com/nikandfor/hacked/hfmt"
	"github.com/oleiade/lane"
	"nikand.dev/go/heap"
	"tlog.app/go/errors"
	"tlog.app/go/loc"
	"tlog.app/go/tlog"

	"github.com/clipsheep6/ability-runtime-sub005/compiler/gate"
	"github.com/clipsheep6/ability-runtime-sub005/compiler/set"
)

type (
	Options struct {
		// Origin appends the place each gate was created at as a comment.
		Origin bool
	}
)

// Graph prints gates reachable from Return gates.
// Inputs go before users, and among ready gates the smallest id goes first.
func Graph(ctx context.Context, b []byte, g *gate.Graph, opts Options) (_ []byte, err error) {
	tr, _ := tlog.SpawnFromContextAndWrap(ctx, "format", "gates", g.Len())
	defer tr.Finish("err", &err)

	live := Reachable(g)

	order, err := Order(g, live)
	if err != nil {
		return nil, err
	}

	if tr.If("format") {
		tr.Printw("order", "live", live, "order", order)
	}

	for _, x := range order {
		b = formatGate(b, g, x)

		if opts.Origin {
			b = appendOrigin(b, g.From(x))
		}

		b = append(b, '\n')
	}

	return b, nil
}

// Reachable is the set of gates Return gates depend on, roots included.
func Reachable(g *gate.Graph) set.Bits[gate.Gate] {
	live := set.MakeBits[gate.Gate](g.Len())
	q := lane.NewQueue()

	for id := 0; id < g.Len(); id++ {
		if x := gate.Gate(id); g.Op(x) == gate.Return && live.Add(x) {
			q.Enqueue(x)
		}
	}

	for !q.Empty() {
		x := q.Dequeue().(gate.Gate)

		for i := 0; i < g.NumValueIn(x); i++ {
			if in := g.ValueIn(x, i); live.Add(in) {
				q.Enqueue(in)
			}
		}
	}

	return live
}

// Order sorts live gates topologically.
func Order(g *gate.Graph, live set.Bits[gate.Gate]) ([]gate.Gate, error) {
	wait := make([]int, g.Len())
	ready := heap.Heap[gate.Gate]{Less: gateLess}

	live.Range(func(x gate.Gate) bool {
		wait[x] = g.NumValueIn(x)

		if wait[x] == 0 {
			ready.Push(x)
		}

		return true
	})

	order := make([]gate.Gate, 0, live.Size())

	for ready.Len() != 0 {
		x := ready.Pop()
		order = append(order, x)

		for _, u := range g.Uses(x) {
			if !live.IsSet(u.Gate) {
				continue
			}

			wait[u.Gate]--

			if wait[u.Gate] == 0 {
				ready.Push(u.Gate)
			}
		}
	}

	if len(order) != live.Size() {
		return nil, errors.New("cycle: %d of %d gates ordered", len(order), live.Size())
	}

	return order, nil
}

func gateLess(d []gate.Gate, i, j int) bool {
	return d[i] < d[j]
}

func formatGate(b []byte, g *gate.Graph, x gate.Gate) []byte {
	op := g.Op(x)
	mt := g.MachineType(x)

	if op == gate.Return {
		return hfmt.Appendf(b, "ret v%d", int(g.ValueIn(x, 0)))
	}

	b = hfmt.Appendf(b, "v%d = %s %s", int(x), op.String(), mt.String())

	switch op {
	case gate.Constant:
		b = append(b, ' ')
		return AppendConstant(b, mt, g.ConstantValue(x))
	case gate.ICmp:
		b = hfmt.Appendf(b, " %s", g.Cond(x).String())
	}

	for i := 0; i < g.NumValueIn(x); i++ {
		b = hfmt.Appendf(b, " v%d", int(g.ValueIn(x, i)))
	}

	return b
}

// AppendConstant prints raw as a literal of type mt which parses back to the same bits.
// NaN payloads are not preserved.
func AppendConstant(b []byte, mt gate.MachineType, raw uint64) []byte {
	switch {
	case mt == gate.I1:
		return strconv.AppendBool(b, raw&1 != 0)
	case mt == gate.F64:
		return appendFloat(b, math.Float64frombits(raw), 64)
	case mt == gate.F32:
		return appendFloat(b, float64(math.Float32frombits(uint32(raw))), 32)
	case mt.IsInt():
		w := mt.Bits()
		v := int64(raw<<(64-w)) >> (64 - w)

		return strconv.AppendInt(b, v, 10)
	default:
		return strconv.AppendUint(append(b, "0x"...), raw, 16)
	}
}

func appendFloat(b []byte, f float64, size int) []byte {
	switch {
	case math.IsNaN(f):
		return append(b, "nan"...)
	case math.IsInf(f, 1):
		return append(b, "inf"...)
	case math.IsInf(f, -1):
		return append(b, "-inf"...)
	}

	return strconv.AppendFloat(b, f, 'g', -1, size)
}

func appendOrigin(b []byte, pc loc.PC) []byte {
	if pc == 0 {
		return b
	}

	name, _, line := pc.NameFileLine()

	name = path.Base(name)
	if p := strings.IndexByte(name, '.'); p >= 0 {
		name = name[p+1:]
	}

	return hfmt.Appendf(b, "\t# %s:%d", name, line)
}

// ParseConstant is the inverse of AppendConstant.
// Integers may be written signed or as the unsigned bit pattern.
func ParseConstant(mt gate.MachineType, s string) (uint64, error) {
	switch {
	case mt == gate.I1:
		switch s {
		case "true", "1":
			return 1, nil
		case "false", "0":
			return 0, nil
		}

		return 0, errors.New("bad %v literal: %q", mt, s)
	case mt.IsFloat():
		if strings.TrimLeft(s, "+-") == "nan" {
			s = "nan"
		}

		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, errors.Wrap(err, "bad %v literal", mt)
		}

		switch {
		case math.IsNaN(f):
			if mt == gate.F32 {
				return uint64(math.Float32bits(float32(math.NaN()))), nil
			}

			return gate.NaNBits, nil
		case mt == gate.F32:
			return uint64(math.Float32bits(float32(f))), nil
		}

		return math.Float64bits(f), nil
	case mt.IsInt():
		v, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			u, uerr := strconv.ParseUint(s, 0, 64)
			if uerr != nil {
				return 0, errors.Wrap(err, "bad %v literal", mt)
			}

			v = int64(u)
		}

		w := mt.Bits()
		if w == 64 {
			return uint64(v), nil
		}

		if v < -1<<(w-1) || v > 1<<w-1 {
			return 0, errors.New("%v literal out of range: %s", mt, s)
		}

		return uint64(v) & (1<<w - 1), nil
	}

	return 0, errors.New("no literals of type %v", mt)
}
