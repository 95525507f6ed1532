package parse

import (
	"bytes"
	"context"

	"tlog.app/go/errors"

	"github.com/clipsheep6/ability-runtime-sub005/compiler/ast"
)

type (
	Const []byte

	// Word is a keyword. It must not be followed by an identifier character.
	Word string

	Ident struct{}
)

func (p Const) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	if bytes.HasPrefix(b[st:], p) {
		return p, st + len(p), nil
	}

	return nil, st, errors.New("%q expected", []byte(p))
}

func (p Const) String() string { return "\"" + string(p) + "\"" }

func (p Word) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	if !hasWord(b, st, string(p)) {
		return nil, st, errors.New("%q expected", string(p))
	}

	return p, st + len(p), nil
}

func (p Word) String() string { return string(p) }

func (p Ident) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	if st == len(b) || !isIdentStart(b[st]) {
		return nil, st, errors.New("Ident expected")
	}

	i = st + 1

	for i < len(b) && isIdentChar(b[i]) {
		i++
	}

	return ast.Ident{
		Base: ast.Base{Pos: st, End: i},
		Name: string(b[st:i]),
	}, i, nil
}

func hasWord(b []byte, st int, w string) bool {
	if !bytes.HasPrefix(b[st:], []byte(w)) {
		return false
	}

	end := st + len(w)

	return end == len(b) || !isIdentChar(b[end])
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}
