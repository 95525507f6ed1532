package parse

import (
	"context"
	"os"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/clipsheep6/ability-runtime-sub005/compiler/ast"
)

type (
	// State holds one gate listing being parsed.
	State struct {
		name string
		b    []byte

		Stmt Parser
	}

	Parser interface {
		Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error)
	}
)

func ParseFile(ctx context.Context, name string) (*ast.File, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	return Parse(ctx, name, data)
}

func Parse(ctx context.Context, name string, text []byte) (*ast.File, error) {
	return New(name, text).Parse(ctx)
}

func New(name string, text []byte) *State {
	return &State{
		name: name,
		b:    text,
		Stmt: AnyOf{Ret{}, Def{}},
	}
}

// Parse reads the listing line by line.
// Empty lines and # comments are skipped, every other line is one statement.
func (s *State) Parse(ctx context.Context) (f *ast.File, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "parse", "name", s.name, "size", len(s.b))
	defer tr.Finish("err", &err)

	f = &ast.File{Name: s.name}

	b := s.b
	line := 1
	bol := 0

	for i := 0; i < len(b); {
		i = skipComment(b, SpaceTab.Skip(b, i))

		if i == len(b) {
			break
		}

		if b[i] == '\r' || b[i] == '\n' {
			if b[i] == '\n' {
				line++
				bol = i + 1
			}

			i++

			continue
		}

		var x ast.Node

		x, i, err = s.Stmt.Parse(ctx, b, i)
		if err != nil {
			return nil, errors.Wrap(err, "%v:%d:%d", s.name, line, i-bol+1)
		}

		switch x := x.(type) {
		case ast.Def:
			x.Line = line
			f.Stmts = append(f.Stmts, x)
		case ast.Ret:
			x.Line = line
			f.Stmts = append(f.Stmts, x)
		default:
			panic(x)
		}

		i = skipComment(b, SpaceTab.Skip(b, i))

		if i < len(b) && b[i] != '\r' && b[i] != '\n' {
			return nil, errors.New("%v:%d:%d: unexpected %q", s.name, line, i-bol+1, b[i])
		}
	}

	if tr.If("parse") {
		tr.Printw("parsed", "stmts", len(f.Stmts), "lines", line)
	}

	return f, nil
}

func skipComment(b []byte, i int) int {
	if i == len(b) || b[i] != '#' {
		return i
	}

	for i < len(b) && b[i] != '\n' {
		i++
	}

	return i
}
