package parse

import (
	"context"
	"fmt"
	"strings"

	"tlog.app/go/errors"

	"github.com/clipsheep6/ability-runtime-sub005/compiler/ast"
)

type (
	// AllOf parses all the parsers in order and returns []ast.Node.
	AllOf []Parser

	// AnyOf returns the first alternative that succeeds.
	// An alternative which failed after consuming input wins the error report.
	AnyOf []Parser

	// Many parses Of zero or more times and returns []ast.Node.
	Many struct {
		Of Parser
	}
)

func (p AllOf) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	i = st

	res := make([]ast.Node, len(p))

	for j, r := range p {
		res[j], i, err = r.Parse(ctx, b, i)
		if err != nil {
			return nil, i, errors.Wrap(err, "%v (%d)", name(r), j)
		}
	}

	return res, i, nil
}

func (p AnyOf) Parse(ctx context.Context, b []byte, st int) (_ ast.Node, i int, err error) {
	for _, r := range p {
		x, j, e := r.Parse(ctx, b, st)
		if e == nil {
			return x, j, nil
		}

		if j == st || err != nil {
			continue
		}

		i = j
		err = errors.Wrap(e, "%v", name(r))
	}

	if err != nil {
		return nil, i, err
	}

	return nil, st, errors.New("expected %v", joinHuman(p...))
}

func (p Many) Parse(ctx context.Context, b []byte, st int) (_ ast.Node, i int, err error) {
	var res []ast.Node

	i = st

	for {
		x, j, err := p.Of.Parse(ctx, b, i)
		if err != nil && j == i {
			return res, i, nil
		}
		if err != nil {
			return nil, j, err
		}

		res = append(res, x)
		i = j
	}
}

func name(p Parser) string {
	if s, ok := p.(fmt.Stringer); ok {
		return s.String()
	}

	return strings.TrimPrefix(fmt.Sprintf("%T", p), "parse.")
}

func joinHuman(l ...Parser) string {
	switch len(l) {
	case 0:
		return "<none>"
	case 1:
		return name(l[0])
	}

	var b strings.Builder

	for i, r := range l {
		if i+1 == len(l) {
			b.WriteString(" or ")
		} else if i != 0 {
			b.WriteString(", ")
		}

		b.WriteString(name(r))
	}

	return b.String()
}
