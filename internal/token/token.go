package token

import (
	"fmt"
	"strings"

	"sniper/internal/source"
)

// Token is one lexed unit of original source.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// HasNewline reports whether the token spans a line break.
func (t Token) HasNewline() bool {
	return strings.IndexByte(t.Text, '\n') >= 0
}

// Op is a single write requested by the printer.
type Op struct {
	Kind Kind
	Text string
}

func (op Op) String() string {
	switch op.Kind {
	case Space, Newline, IncTab, DecTab:
		return op.Kind.String()
	default:
		return fmt.Sprintf("%s %q", op.Kind, op.Text)
	}
}

// ListSeparator reports separators that may appear between collection items.
func ListSeparator(text string) bool {
	return text == "," || text == ";"
}
