package token

// Kind is the category of a token or a printer write.
type Kind uint8

const (
	// Invalid marks a byte the lexer could not classify.
	Invalid Kind = iota
	// EOF ends a lexed range.
	EOF
	Keyword
	Identifier
	Literal
	Operator
	Separator
	// CodeSnippet is opaque source text printed as one unit.
	CodeSnippet
	Comment
	Space
	Newline
	// IncTab and DecTab change the sink's indentation level.
	IncTab
	DecTab
)

var kindNames = [...]string{
	Invalid:     "invalid",
	EOF:         "eof",
	Keyword:     "keyword",
	Identifier:  "identifier",
	Literal:     "literal",
	Operator:    "operator",
	Separator:   "separator",
	CodeSnippet: "snippet",
	Comment:     "comment",
	Space:       "space",
	Newline:     "newline",
	IncTab:      "inc-tab",
	DecTab:      "dec-tab",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(?)"
}

// IsWhitespace reports kinds that only move the output position.
func (k Kind) IsWhitespace() bool {
	return k == Space || k == Newline
}

// IsTab reports indentation changes.
func (k Kind) IsTab() bool {
	return k == IncTab || k == DecTab
}

// IsSpaceLike reports kinds that may be dropped or copied as layout: whitespace and comments.
func (k Kind) IsSpaceLike() bool {
	return k == Space || k == Newline || k == Comment
}
