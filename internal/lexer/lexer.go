// Package lexer splits the text between structured fragments (keywords,
// punctuation, whitespace, comments) into tokens. It only sees gaps of
// source the front-end already parsed, so it never reports errors: bytes it
// cannot classify come back as single Invalid tokens.
package lexer

import (
	"sniper/internal/source"
	"sniper/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
}

// New creates a lexer over span of file.
func New(file *source.File, span source.Span) *Lexer {
	return &Lexer{file: file, cursor: NewCursor(file, span)}
}

// Next returns the next token; after the limit it always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off},
		}
	}

	ch := lx.cursor.Peek()
	switch {
	case isSpace(ch):
		return lx.scanSpace()
	case ch == '/' && (lx.cursor.PeekAt(1) == '/' || lx.cursor.PeekAt(1) == '*'):
		return lx.scanComment()
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		return lx.scanIdentOrKeyword()
	case isDec(ch), ch == '.' && isDec(lx.cursor.PeekAt(1)):
		return lx.scanNumber()
	case ch == '"' || ch == '\'':
		return lx.scanString()
	default:
		return lx.scanOperatorOrPunct()
	}
}

// All collects every token up to EOF.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return out
		}
		out = append(out, tok)
	}
}

// Scan lexes span of file in one call.
func Scan(file *source.File, span source.Span) []token.Token {
	return New(file, span).All()
}

func (lx *Lexer) emit(kind token.Kind, m Mark) token.Token {
	sp := lx.cursor.SpanFrom(m)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) scanSpace() token.Token {
	start := lx.cursor.Mark()
	for isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.emit(token.Space, start)
}

// scanComment reads // up to the line end (newline excluded) or a /* */ block.
// An unterminated block runs to the limit.
func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	if lx.cursor.Bump() == '/' {
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		return lx.emit(token.Comment, start)
	}
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() == '*' && lx.cursor.Peek() == '/' {
			lx.cursor.Bump()
			break
		}
	}
	return lx.emit(token.Comment, start)
}
