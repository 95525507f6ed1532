package parse

import (
	"context"

	"github.com/clipsheep6/ability-runtime-sub005/compiler/ast"
)

type (
	// Def is `name = op type args...`.
	Def struct{}

	// Ret is `ret name`.
	Ret struct{}

	// Operand is a gate name or a literal.
	Operand struct{}
)

func (p Def) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := AllOf{
		Ident{},
		Spaced(Const("="), SpaceTab),
		Spaced(Ident{}, SpaceTab),
		Spaced(Ident{}, SpaceTab),
		Many{Of: Spaced(Operand{}, SpaceTab)},
	}

	x, i, err = r.Parse(ctx, b, st)
	if err != nil {
		return nil, i, err
	}

	xt := x.([]ast.Node)
	args, _ := xt[4].([]ast.Node)

	return ast.Def{
		Base: ast.Base{Pos: st, End: i},
		Name: xt[0].(ast.Ident),
		Op:   xt[2].(ast.Ident),
		Type: xt[3].(ast.Ident),
		Args: args,
	}, i, nil
}

func (p Ret) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := AllOf{
		Word("ret"),
		Spaced(Ident{}, SpaceTab),
	}

	x, i, err = r.Parse(ctx, b, st)
	if err != nil {
		return nil, i, err
	}

	xt := x.([]ast.Node)

	return ast.Ret{
		Base:  ast.Base{Pos: st, End: i},
		Value: xt[1].(ast.Ident),
	}, i, nil
}

func (p Operand) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	return AnyOf{Literal{}, Ident{}}.Parse(ctx, b, st)
}
