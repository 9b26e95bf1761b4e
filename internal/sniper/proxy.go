package sniper

import (
	"sniper/internal/format"
	"sniper/internal/token"
)

// TokenListener receives every write that reaches the proxy.
type TokenListener interface {
	OnToken(op token.Op)
}

// Proxy is the format.TokenWriter handed to the printer. It forwards each
// write as an op to its listener; the listener decides whether to Commit it.
type Proxy struct {
	w        *format.Writer
	listener TokenListener
	muted    bool
}

var _ format.TokenWriter = (*Proxy)(nil)

// NewProxy wraps w. With a nil listener every op is committed.
func NewProxy(w *format.Writer, l TokenListener) *Proxy {
	return &Proxy{w: w, listener: l}
}

func (p *Proxy) emit(kind token.Kind, text string) {
	op := token.Op{Kind: kind, Text: text}
	if p.listener == nil {
		p.Commit(op)
		return
	}
	p.listener.OnToken(op)
}

func (p *Proxy) WriteKeyword(s string) { p.emit(token.Keyword, s) }

func (p *Proxy) WriteIdentifier(s string) { p.emit(token.Identifier, s) }

func (p *Proxy) WriteLiteral(s string) { p.emit(token.Literal, s) }

func (p *Proxy) WriteOperator(s string) { p.emit(token.Operator, s) }

func (p *Proxy) WriteSeparator(s string) { p.emit(token.Separator, s) }

func (p *Proxy) WriteCodeSnippet(s string) { p.emit(token.CodeSnippet, s) }

func (p *Proxy) WriteComment(s string) { p.emit(token.Comment, s) }

func (p *Proxy) WriteSpace() { p.emit(token.Space, " ") }

func (p *Proxy) WriteNewline() { p.emit(token.Newline, "\n") }

func (p *Proxy) IncTab() { p.emit(token.IncTab, "") }

func (p *Proxy) DecTab() { p.emit(token.DecTab, "") }

// Commit performs op on the writer. Indentation changes always apply so the
// level stays right after a muted stretch; everything else is dropped while
// muted.
func (p *Proxy) Commit(op token.Op) {
	switch op.Kind {
	case token.IncTab:
		p.w.IndentPush()
		return
	case token.DecTab:
		p.w.IndentPop()
		return
	}
	if p.muted {
		return
	}
	switch op.Kind {
	case token.Space:
		p.w.Space()
	case token.Newline:
		p.w.Newline()
	default:
		p.w.WriteString(op.Text)
	}
}

// DirectPrint writes original text, bypassing the mute.
func (p *Proxy) DirectPrint(s string) {
	p.w.Raw(s)
}

// Muted reports whether committed writes are dropped.
func (p *Proxy) Muted() bool { return p.muted }

// SetMuted sets the mute and returns the previous value.
func (p *Proxy) SetMuted(m bool) bool {
	prev := p.muted
	p.muted = m
	return prev
}
