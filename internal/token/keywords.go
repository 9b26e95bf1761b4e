package token

var keywords = map[string]Kind{
	"abstract": Keyword, "assert": Keyword, "boolean": Keyword, "break": Keyword,
	"byte": Keyword, "case": Keyword, "catch": Keyword, "char": Keyword,
	"class": Keyword, "const": Keyword, "continue": Keyword, "default": Keyword,
	"do": Keyword, "double": Keyword, "else": Keyword, "enum": Keyword,
	"extends": Keyword, "final": Keyword, "finally": Keyword, "float": Keyword,
	"for": Keyword, "goto": Keyword, "if": Keyword, "implements": Keyword,
	"import": Keyword, "instanceof": Keyword, "int": Keyword, "interface": Keyword,
	"long": Keyword, "native": Keyword, "new": Keyword, "package": Keyword,
	"private": Keyword, "protected": Keyword, "public": Keyword, "return": Keyword,
	"short": Keyword, "static": Keyword, "strictfp": Keyword, "super": Keyword,
	"switch": Keyword, "synchronized": Keyword, "this": Keyword, "throw": Keyword,
	"throws": Keyword, "transient": Keyword, "try": Keyword, "void": Keyword,
	"volatile": Keyword, "while": Keyword,
	"true": Literal, "false": Literal, "null": Literal,
}

// Lookup classifies a word as keyword, literal or identifier.
// Contextual words (var, record, sealed, permits, yield) stay identifiers.
func Lookup(word string) Kind {
	if k, ok := keywords[word]; ok {
		return k
	}
	return Identifier
}

// modifierRank orders modifiers the way the printer emits them.
var modifierRank = map[string]int{
	"public": 1, "protected": 2, "private": 3,
	"abstract": 4, "static": 5, "final": 6,
	"transient": 7, "volatile": 8, "synchronized": 9,
	"native": 10, "strictfp": 11, "default": 12,
	"sealed": 13, "non-sealed": 14,
}

// ModifierRank returns the canonical position of a modifier keyword, or 0
// for words that are not modifiers.
func ModifierRank(word string) int {
	return modifierRank[word]
}
