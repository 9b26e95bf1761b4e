// Package token defines the token taxonomy shared by the structural printer,
// the token proxy and the gap lexer.
// Invariants:
//   - Token.Text is a slice of the original source; Token.Span matches it.
//   - Whitespace runs (spaces, tabs and line breaks together) are one Space token.
//   - Op values carry no position: they are what the printer asks to write.
//   - IncTab and DecTab are never produced by the lexer.
package token
