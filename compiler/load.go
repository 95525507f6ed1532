package compiler

import (
	"context"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/clipsheep6/ability-runtime-sub005/compiler/ast"
	"github.com/clipsheep6/ability-runtime-sub005/compiler/format"
	"github.com/clipsheep6/ability-runtime-sub005/compiler/gate"
)

type (
	loader struct {
		g *gate.Graph

		names map[string]gate.Gate
	}
)

// Load builds a gate graph out of a parsed listing.
// Gates get ids in the order they are defined. Literal operands become
// constants defined right before the gate using them.
func Load(ctx context.Context, f *ast.File) (g *gate.Graph, err error) {
	tr, _ := tlog.SpawnFromContextAndWrap(ctx, "load", "name", f.Name, "stmts", len(f.Stmts))
	defer tr.Finish("err", &err)

	l := &loader{
		g:     gate.NewGraph(),
		names: make(map[string]gate.Gate),
	}

	for _, s := range f.Stmts {
		var line int

		switch s := s.(type) {
		case ast.Def:
			line = s.Line
			err = l.def(s)
		case ast.Ret:
			line = s.Line
			err = l.ret(s)
		default:
			panic(s)
		}

		if err != nil {
			return nil, errors.Wrap(err, "%v:%d", f.Name, line)
		}
	}

	tr.Printw("loaded", "gates", l.g.Len())

	return l.g, nil
}

func (l *loader) def(d ast.Def) error {
	name := d.Name.Name

	if _, ok := l.names[name]; ok {
		return errors.New("%v redefined", name)
	}

	op, ok := gate.ParseOp(d.Op.Name)
	if !ok {
		return errors.New("unknown op: %v", d.Op.Name)
	}

	mt, ok := gate.ParseMachineType(d.Type.Name)
	if !ok {
		return errors.New("unknown type: %v", d.Type.Name)
	}

	var x gate.Gate

	switch op {
	case gate.Return:
		return errors.New("%v: use ret statement", name)
	case gate.Constant:
		if len(d.Args) != 1 {
			return errors.New("%v: const takes one literal, got %d args", name, len(d.Args))
		}

		lit, ok := d.Args[0].(ast.Literal)
		if !ok {
			return errors.New("%v: literal expected", name)
		}

		raw, err := format.ParseConstant(mt, lit.Text)
		if err != nil {
			return errors.Wrap(err, "%v", name)
		}

		x = l.g.NewConstant(mt, raw)
	case gate.ICmp:
		if len(d.Args) != 3 {
			return errors.New("%v: icmp takes cond and 2 args, got %d args", name, len(d.Args))
		}

		cid, ok := d.Args[0].(ast.Ident)
		if !ok {
			return errors.New("%v: condition expected", name)
		}

		c, ok := gate.ParseCond(cid.Name)
		if !ok {
			return errors.New("%v: unknown condition: %v", name, cid.Name)
		}

		in, err := l.operands(op, mt, d.Args[1:])
		if err != nil {
			return errors.Wrap(err, "%v", name)
		}

		x = l.g.NewCompare(c, in[0], in[1])
	default:
		if len(d.Args) != op.Arity() {
			return errors.New("%v: %v takes %d args, got %d", name, op, op.Arity(), len(d.Args))
		}

		in, err := l.operands(op, mt, d.Args)
		if err != nil {
			return errors.Wrap(err, "%v", name)
		}

		if op == gate.ExtractValue && !l.isIndex(in[1]) {
			return errors.New("%v: extract index must be i32 const 0 or 1", name)
		}

		x = l.g.New(op, mt, in...)
	}

	l.names[name] = x

	return nil
}

func (l *loader) ret(r ast.Ret) error {
	x, err := l.ref(r.Value)
	if err != nil {
		return err
	}

	l.g.New(gate.Return, gate.NoValue, x)

	return nil
}

func (l *loader) operands(op gate.Op, mt gate.MachineType, args []ast.Node) ([]gate.Gate, error) {
	in := make([]gate.Gate, len(args))

	for i, a := range args {
		in[i] = gate.Nil

		if id, ok := a.(ast.Ident); ok {
			x, err := l.ref(id)
			if err != nil {
				return nil, err
			}

			in[i] = x
		}
	}

	for i, a := range args {
		lit, ok := a.(ast.Literal)
		if !ok {
			continue
		}

		lt, err := literalType(l.g, op, mt, in, i)
		if err != nil {
			return nil, errors.Wrap(err, "arg %d", i)
		}

		raw, err := format.ParseConstant(lt, lit.Text)
		if err != nil {
			return nil, errors.Wrap(err, "arg %d", i)
		}

		in[i] = l.g.NewConstant(lt, raw)
	}

	return in, nil
}

// literalType is the type literal operand i of op gets.
// Named operands are already resolved in in, the rest are gate.Nil.
func literalType(g *gate.Graph, op gate.Op, mt gate.MachineType, in []gate.Gate, i int) (gate.MachineType, error) {
	switch {
	case op == gate.ICmp:
		if other := in[1-i]; other != gate.Nil {
			return g.MachineType(other), nil
		}

		return gate.NoValue, errors.New("both compare operands are literals")
	case op == gate.ExtractValue && i == 1:
		return gate.I32, nil
	case op == gate.Load, op == gate.ExtractValue, op == gate.IfBranch, op.IsConvert():
		return gate.NoValue, errors.New("%v operand can't be a literal", op)
	}

	return mt, nil
}

func (l *loader) isIndex(x gate.Gate) bool {
	if l.g.Op(x) != gate.Constant || l.g.MachineType(x) != gate.I32 {
		return false
	}

	v := l.g.ConstantValue(x)

	return v == 0 || v == 1
}

func (l *loader) ref(id ast.Ident) (gate.Gate, error) {
	x, ok := l.names[id.Name]
	if !ok {
		return gate.Nil, errors.New("undefined: %v", id.Name)
	}

	return x, nil
}
