package format

import "bytes"

// Options control default layout. InferTabs lets Resolve pick UseTabs from
// the indentation of the printed source.
type Options struct {
	IndentWidth int
	UseTabs     bool
	InferTabs   bool
}

// Resolve fills in what opt leaves to the source: with InferTabs set, tabs
// are used when more indented lines of src start with a tab than with spaces.
func (o Options) Resolve(src []byte) Options {
	if !o.InferTabs {
		return o
	}
	tabs, spaces := 0, 0
	for line := range bytes.Lines(src) {
		switch {
		case bytes.HasPrefix(line, []byte("\t")):
			tabs++
		case bytes.HasPrefix(line, []byte("  ")):
			spaces++
		}
	}
	o.UseTabs = tabs > spaces
	o.InferTabs = false
	return o
}

func (o Options) withDefaults() Options {
	if o.IndentWidth <= 0 {
		o.IndentWidth = 4
	}
	return o
}

// Writer accumulates output. Indentation is written lazily at the start of a
// line.
type Writer struct {
	opt          Options
	buf          []byte
	indentLevel  int
	atLineStart  bool
	pendingSpace bool
}

// NewWriter creates a writer; sizeHint preallocates the buffer.
func NewWriter(opt Options, sizeHint int) *Writer {
	return &Writer{
		opt: opt.withDefaults(),
		buf: make([]byte, 0, sizeHint),
	}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// String returns the accumulated output as a string.
func (w *Writer) String() string {
	return string(w.buf)
}

// Indent reports the current indentation level.
func (w *Writer) Indent() int {
	return w.indentLevel
}

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	if w.opt.UseTabs {
		for range w.indentLevel {
			w.buf = append(w.buf, '\t')
		}
	} else {
		for range w.indentLevel * w.opt.IndentWidth {
			w.buf = append(w.buf, ' ')
		}
	}
	w.atLineStart = false
}

func (w *Writer) flushSpace() {
	if !w.pendingSpace {
		return
	}
	w.pendingSpace = false
	if len(w.buf) == 0 {
		return
	}
	switch w.buf[len(w.buf)-1] {
	case ' ', '\t', '\n':
		return
	}
	w.buf = append(w.buf, ' ')
}

// WriteString writes s, indenting first when at the start of a line.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.flushSpace()
	w.writeIndent()
	w.buf = append(w.buf, s...)
	w.atLineStart = s[len(s)-1] == '\n'
}

// Raw copies original text as is. Text that lands at the start of a line
// and does not bring its own leading whitespace is indented first.
func (w *Writer) Raw(s string) {
	if s == "" {
		return
	}
	w.flushSpace()
	switch s[0] {
	case ' ', '\t', '\n', '\r':
		w.atLineStart = false
	default:
		w.writeIndent()
	}
	w.buf = append(w.buf, s...)
	w.atLineStart = false
}

// Space asks for one space before the next text. Consecutive requests and
// requests after whitespace collapse; a newline cancels it.
func (w *Writer) Space() {
	w.pendingSpace = true
}

// Newline ends the line.
func (w *Writer) Newline() {
	w.pendingSpace = false
	w.buf = append(w.buf, '\n')
	w.atLineStart = true
}

// IndentPush increases the indentation level.
func (w *Writer) IndentPush() {
	w.indentLevel++
}

// IndentPop decreases the indentation level.
func (w *Writer) IndentPop() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

// Writer is itself a TokenWriter for plain pretty printing.

func (w *Writer) WriteKeyword(s string) { w.WriteString(s) }
func (w *Writer) WriteIdentifier(s string) { w.WriteString(s) }
func (w *Writer) WriteLiteral(s string) { w.WriteString(s) }
func (w *Writer) WriteOperator(s string) { w.WriteString(s) }
func (w *Writer) WriteSeparator(s string) { w.WriteString(s) }
func (w *Writer) WriteCodeSnippet(s string) { w.WriteString(s) }
func (w *Writer) WriteComment(s string) { w.WriteString(s) }
func (w *Writer) WriteSpace() { w.Space() }
func (w *Writer) WriteNewline() { w.Newline() }
func (w *Writer) IncTab() { w.IndentPush() }
func (w *Writer) DecTab() { w.IndentPop() }
