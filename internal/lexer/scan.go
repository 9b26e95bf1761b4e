package lexer

import (
	"unicode"
	"unicode/utf8"

	"sniper/internal/token"
)

const utf8RuneSelf = utf8.RuneSelf

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:lx.cursor.Limit])
		if !isIdentContinueRune(r) {
			break
		}
		lx.cursor.Off += uint32(size) // #nosec G115 -- size <= utf8.UTFMax
	}
	if lx.cursor.Off == uint32(start) {
		// a non-letter rune outside ASCII
		_, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:lx.cursor.Limit])
		lx.cursor.Off += uint32(size) // #nosec G115 -- size <= utf8.UTFMax
		return lx.emit(token.Invalid, start)
	}
	tok := lx.emit(token.Identifier, start)
	tok.Kind = token.Lookup(tok.Text)
	return tok
}

// scanNumber accepts the Java numeric forms loosely: digits, underscores,
// hex/binary prefixes, a fraction, an exponent with sign and type suffixes.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case isIdentContinueByte(b):
			lx.cursor.Bump()
		case b == '.' && !isIdentStartByte(lx.cursor.PeekAt(1)) && lx.cursor.PeekAt(1) != '.':
			lx.cursor.Bump()
		case (b == '+' || b == '-') && lx.cursor.Off > uint32(start) && isExponent(lx.file.Content[lx.cursor.Off-1]):
			lx.cursor.Bump()
		default:
			return lx.emit(token.Literal, start)
		}
	}
	return lx.emit(token.Literal, start)
}

// scanString reads "...", '...' and """ text blocks """.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()
	if quote == '"' && lx.cursor.Peek() == '"' && lx.cursor.PeekAt(1) == '"' {
		lx.cursor.Bump()
		lx.cursor.Bump()
		for !lx.cursor.EOF() {
			b := lx.cursor.Bump()
			if b == '\\' {
				lx.cursor.Bump()
				continue
			}
			if b == '"' && lx.cursor.Peek() == '"' && lx.cursor.PeekAt(1) == '"' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				break
			}
		}
		return lx.emit(token.Literal, start)
	}
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == '\\' {
			lx.cursor.Bump()
			continue
		}
		if b == quote || b == '\n' {
			break
		}
	}
	return lx.emit(token.Literal, start)
}

var (
	ops3 = []string{">>>=", "<<=", ">>=", "...", "->", "::", "++", "--", "&&", "||", "==", "!=", "<=", ">=", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<"}
	seps = "(){}[];,."
)

// scanOperatorOrPunct is greedy: longer operators win. Right shifts stay two
// '>' tokens since they usually close nested type arguments.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	for _, op := range ops3 {
		if lx.hasPrefix(op) {
			lx.cursor.Off += uint32(len(op)) // #nosec G115 -- short literal
			return lx.emit(token.Operator, start)
		}
	}
	b := lx.cursor.Bump()
	for i := 0; i < len(seps); i++ {
		if seps[i] == b {
			return lx.emit(token.Separator, start)
		}
	}
	switch b {
	case '=', '<', '>', '!', '~', '?', ':', '+', '-', '*', '/', '&', '|', '^', '%', '@':
		return lx.emit(token.Operator, start)
	}
	return lx.emit(token.Invalid, start)
}

func (lx *Lexer) hasPrefix(s string) bool {
	for i := 0; i < len(s); i++ {
		if lx.cursor.PeekAt(uint32(i)) != s[i] { // #nosec G115 -- short literal
			return false
		}
	}
	return true
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

func isIdentStartByte(b byte) bool {
	return b == '_' || b == '$' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isIdentContinueRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isExponent(b byte) bool { return b == 'e' || b == 'E' || b == 'p' || b == 'P' }
