package ast

type (
	Node interface{}

	Base struct {
		Pos int
		End int

		// Line is only set for statements.
		Line int
	}

	File struct {
		Name string

		// Stmts are Def and Ret in source order.
		Stmts []Node
	}

	// Def is `name = op type args...`.
	Def struct {
		Base `tlog:",embed"`

		Name Ident
		Op   Ident
		Type Ident
		Args []Node
	}

	// Ret is `ret name`.
	Ret struct {
		Base `tlog:",embed"`

		Value Ident
	}

	Ident struct {
		Base `tlog:",embed"`

		Name string
	}

	// Literal is a number or a word like nan or true.
	// Its meaning depends on the type it is used as.
	Literal struct {
		Base `tlog:",embed"`

		Text string
	}
)

func (x Ident) String() string   { return x.Name }
func (x Literal) String() string { return x.Text }
