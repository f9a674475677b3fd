package decode

import (
	"fmt"
)

const (
	kwSet     = "set"
	kwLoad    = "load"
	kwBind    = "bind"
	kwUsing   = "using"
	kwLabel   = "label"
	kwRender  = "render"
	kwInclude = "include"
	kwDefine  = "define"
	kwTo      = "to"
)

func isKeyword(str string) bool {
	switch str {
	default:
		return false
	case kwSet:
	case kwLoad:
	case kwBind:
	case kwUsing:
	case kwLabel:
	case kwRender:
	case kwInclude:
	case kwDefine:
	case kwTo:
	}
	return true
}

const (
	Invalid rune = -(iota + 1)
	Keyword
	Literal
	Variable
	Command
	Comment
	Comma
	EOL
	EOF
)

type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Token struct {
	Literal string
	Type    rune
	Position
}

func (t Token) String() string {
	var prefix string
	switch t.Type {
	default:
		prefix = "unknown"
	case Invalid:
		prefix = "invalid"
	case Literal:
		prefix = "literal"
	case Comment:
		prefix = "comment"
	case Keyword:
		prefix = "keyword"
	case Variable:
		prefix = "variable"
	case Command:
		prefix = "command"
	case Comma:
		return "<comma>"
	case EOL:
		return "<eol>"
	case EOF:
		return "<eof>"
	}
	return fmt.Sprintf("%s(%s)", prefix, t.Literal)
}
