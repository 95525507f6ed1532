package gate

import (
	"fmt"

	"tlog.app/go/errors"
	"tlog.app/go/loc"
)

type (
	// Gate is a node id in the graph it was created by.
	Gate int

	Use struct {
		Gate  Gate
		Index int
	}

	Graph struct {
		gates []node
	}

	node struct {
		op   Op
		mt   MachineType
		cond Cond

		in   []Gate
		uses []Use

		val uint64

		from loc.PC
	}
)

// Nil means no gate. Visitors return it to report that nothing changed.
const Nil Gate = -1

func NewGraph() *Graph {
	return &Graph{}
}

func (g *Graph) Len() int { return len(g.gates) }

// New appends a gate and registers it as a user of its inputs.
func (g *Graph) New(op Op, mt MachineType, in ...Gate) Gate {
	return g.add(loc.Caller(1), op, mt, EQ, 0, in)
}

func (g *Graph) NewConstant(mt MachineType, raw uint64) Gate {
	return g.add(loc.Caller(1), Constant, mt, EQ, raw, nil)
}

func (g *Graph) NewCompare(c Cond, l, r Gate) Gate {
	return g.add(loc.Caller(1), ICmp, I1, c, 0, []Gate{l, r})
}

func (g *Graph) add(from loc.PC, op Op, mt MachineType, c Cond, val uint64, in []Gate) Gate {
	if len(in) != op.Arity() {
		panic(fmt.Sprintf("gate: %v takes %d inputs, got %d", op, op.Arity(), len(in)))
	}

	id := Gate(len(g.gates))

	g.gates = append(g.gates, node{
		op:   op,
		mt:   mt,
		cond: c,
		in:   append([]Gate(nil), in...),
		val:  val,
		from: from,
	})

	for i, x := range in {
		g.node(x).uses = append(g.node(x).uses, Use{Gate: id, Index: i})
	}

	return id
}

func (g *Graph) node(x Gate) *node {
	if x < 0 || int(x) >= len(g.gates) {
		panic(fmt.Sprintf("gate: no gate %d", x))
	}

	return &g.gates[x]
}

func (g *Graph) Op(x Gate) Op                   { return g.node(x).op }
func (g *Graph) MachineType(x Gate) MachineType { return g.node(x).mt }
func (g *Graph) NumValueIn(x Gate) int          { return len(g.node(x).in) }
func (g *Graph) From(x Gate) loc.PC             { return g.node(x).from }

func (g *Graph) ValueIn(x Gate, i int) Gate {
	return g.node(x).in[i]
}

// Cond is the condition of an ICmp gate.
func (g *Graph) Cond(x Gate) Cond {
	n := g.node(x)
	if n.op != ICmp {
		panic(fmt.Sprintf("gate: cond of %v gate %d", n.op, x))
	}

	return n.cond
}

// ConstantValue is the raw bit pattern of a constant gate.
// Only the low MachineType.Bits() bits are meaningful.
func (g *Graph) ConstantValue(x Gate) uint64 {
	n := g.node(x)
	if n.op != Constant {
		panic(fmt.Sprintf("gate: constant value of %v gate %d", n.op, x))
	}

	return n.val
}

// Uses returns the consumers of x. The slice must not be modified.
func (g *Graph) Uses(x Gate) []Use {
	return g.node(x).uses
}

func (g *Graph) UseCount(x Gate) int {
	return len(g.node(x).uses)
}

// ReplaceValueIn makes in the i-th input of x.
func (g *Graph) ReplaceValueIn(x, in Gate, i int) {
	n := g.node(x)
	old := n.in[i]

	if old == in {
		return
	}

	g.removeUse(old, Use{Gate: x, Index: i})

	n.in[i] = in
	g.node(in).uses = append(g.node(in).uses, Use{Gate: x, Index: i})
}

// UpdateAllUses redirects every consumer of old to new.
// A use of old by new itself is left in place.
func (g *Graph) UpdateAllUses(old, new Gate) {
	if old == new {
		return
	}

	o := g.node(old)
	nn := g.node(new)

	keep := o.uses[:0]

	for _, u := range o.uses {
		if u.Gate == new {
			keep = append(keep, u)
			continue
		}

		g.node(u.Gate).in[u.Index] = new
		nn.uses = append(nn.uses, u)
	}

	o.uses = keep
}

func (g *Graph) removeUse(x Gate, u Use) {
	n := g.node(x)

	for i, q := range n.uses {
		if q == u {
			n.uses = append(n.uses[:i], n.uses[i+1:]...)
			return
		}
	}

	panic(fmt.Sprintf("gate: %d is not used by %d at %d", x, u.Gate, u.Index))
}

// Verify checks arity of every gate and that input edges and use lists mirror each other.
func (g *Graph) Verify() error {
	for id := range g.gates {
		x := Gate(id)
		n := &g.gates[id]

		if len(n.in) != n.op.Arity() {
			return errors.New("gate %d: %v has %d inputs, want %d", x, n.op, len(n.in), n.op.Arity())
		}

		for i, in := range n.in {
			if in < 0 || int(in) >= len(g.gates) {
				return errors.New("gate %d: input %d: no gate %d", x, i, in)
			}

			cnt := 0

			for _, u := range g.gates[in].uses {
				if u == (Use{Gate: x, Index: i}) {
					cnt++
				}
			}

			if cnt != 1 {
				return errors.New("gate %d: input %d: found %d times in uses of %d", x, i, cnt, in)
			}
		}

		for _, u := range n.uses {
			if u.Gate < 0 || int(u.Gate) >= len(g.gates) {
				return errors.New("gate %d: used by missing gate %d", x, u.Gate)
			}

			in := g.gates[u.Gate].in
			if u.Index >= len(in) || in[u.Index] != x {
				return errors.New("gate %d: stale use by %d at %d", x, u.Gate, u.Index)
			}
		}
	}

	return nil
}
