package lexer_test

import (
	"strings"
	"testing"

	"sniper/internal/lexer"
	"sniper/internal/source"
	"sniper/internal/token"
)

func scan(t *testing.T, text string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("T.java", []byte(text)))
	return lexer.Scan(f, f.Span())
}

func describe(toks []token.Token) string {
	parts := make([]string, 0, len(toks))
	for _, tok := range toks {
		parts = append(parts, tok.Kind.String()+":"+tok.Text)
	}
	return strings.Join(parts, " | ")
}

func TestScanGaps(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "class header",
			in:   " class ",
			want: "space:  | keyword:class | space: ",
		},
		{
			name: "method parens and body start",
			in:   "(String a, int... b) {",
			want: "separator:( | identifier:String | space:  | identifier:a | separator:, | space:  | keyword:int | operator:... | space:  | identifier:b | separator:) | space:  | separator:{",
		},
		{
			name: "comments keep their text",
			in:   "// one\n\t/* two */",
			want: "comment:// one | space:\n\t | comment:/* two */",
		},
		{
			name: "numbers and strings",
			in:   `1.5f 0x1F 1e-3 "a\"b" 'c'`,
			want: `literal:1.5f | space:  | literal:0x1F | space:  | literal:1e-3 | space:  | literal:"a\"b" | space:  | literal:'c'`,
		},
		{
			name: "operators are greedy",
			in:   "a>>>=b->c::d",
			want: "identifier:a | operator:>>>= | identifier:b | operator:-> | identifier:c | operator::: | identifier:d",
		},
		{
			name: "generic closers stay split",
			in:   "List<List<String>>",
			want: "identifier:List | operator:< | identifier:List | operator:< | identifier:String | operator:> | operator:>",
		},
		{
			name: "unterminated block comment",
			in:   "/* open",
			want: "comment:/* open",
		},
		{
			name: "annotation marker",
			in:   "@Override",
			want: "operator:@ | identifier:Override",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describe(scan(t, tt.in)); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestScanSubRangeSpans(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("T.java", []byte("int x = 1;")))
	toks := lexer.Scan(f, source.Span{Start: 4, End: 9})

	if got := describe(toks); got != "identifier:x | space:  | operator:= | space:  | literal:1" {
		t.Fatalf("tokens = %s", got)
	}
	last := toks[len(toks)-1]
	if last.Span.Start != 8 || last.Span.End != 9 {
		t.Errorf("literal span = %v", last.Span)
	}
}

func TestTokensCoverInput(t *testing.T) {
	in := "public  static\n\t/** doc */ final int[] xs = {1, 2};// tail"
	var b strings.Builder
	for _, tok := range scan(t, in) {
		b.WriteString(tok.Text)
	}
	if b.String() != in {
		t.Fatalf("concatenated tokens %q differ from input", b.String())
	}
}
