package parse

import (
	"context"

	"tlog.app/go/errors"

	"github.com/clipsheep6/ability-runtime-sub005/compiler/ast"
)

type (
	// Literal is a signed integer in decimal, 0x, 0o or 0b form,
	// a decimal float, nan, inf, true or false.
	Literal struct{}
)

var words = []string{"nan", "inf", "true", "false"}

func (p Literal) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	i = st

	if i < len(b) && (b[i] == '-' || b[i] == '+') {
		i++
	}

	for _, w := range words {
		if (i == st || w == "nan" || w == "inf") && hasWord(b, i, w) {
			return literal(b, st, i+len(w)), i + len(w), nil
		}
	}

	dst := i

	if i+1 < len(b) && b[i] == '0' && base(b[i+1]) != 0 {
		bs := base(b[i+1])
		i += 2

		for i < len(b) && (digit(b[i]) < bs || b[i] == '_') {
			i++
		}

		if i == dst+2 {
			return nil, st, errors.New("digits expected")
		}
	} else {
		i = digits(b, i)

		if i == dst {
			return nil, st, errors.New("Literal expected")
		}

		if i < len(b) && b[i] == '.' {
			i = digits(b, i+1)
		}

		if i < len(b) && (b[i] == 'e' || b[i] == 'E') {
			i++

			if i < len(b) && (b[i] == '-' || b[i] == '+') {
				i++
			}

			est := i

			i = digits(b, i)
			if i == est {
				return nil, st, errors.New("exponent expected")
			}
		}
	}

	if i < len(b) && isIdentChar(b[i]) {
		return nil, st, errors.New("bad number")
	}

	return literal(b, st, i), i, nil
}

func literal(b []byte, st, end int) ast.Literal {
	return ast.Literal{
		Base: ast.Base{Pos: st, End: end},
		Text: string(b[st:end]),
	}
}

func digits(b []byte, i int) int {
	for i < len(b) && b[i] >= '0' && b[i] <= '9' {
		i++
	}

	return i
}

func base(c byte) int {
	switch c {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	}

	return 0
}

func digit(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}

	return 100
}
