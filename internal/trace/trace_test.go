package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "debug"} {
		l, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if l.String() != s {
			t.Errorf("ParseLevel(%q) = %s", s, l)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)
	span := Begin(tr, ScopeFile, "file:A.java", 0)
	Point(tr, ScopeNode, "reuse:parameter", "") // filtered at detail
	span.WithExtra("bytes", "12").End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	var end map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &end); err != nil {
		t.Fatal(err)
	}
	if end["kind"] != "end" || end["scope"] != "file" || end["detail"] != "ok" {
		t.Errorf("unexpected end event %v", end)
	}
}

func TestStreamChromeIsValidJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatChrome)
	Begin(tr, ScopePass, "print", 0).End("")
	Point(tr, ScopeNode, "reprint:name", "x")
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	var doc struct {
		TraceEvents []map[string]any `json:"traceEvents"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid chrome trace: %v\n%s", err, buf.String())
	}
	if len(doc.TraceEvents) != 3 {
		t.Errorf("got %d events", len(doc.TraceEvents))
	}
}

func TestRingWrapsAround(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(r, ScopeNode, name, "")
	}
	snap := r.Snapshot()
	var names []string
	for _, ev := range snap {
		names = append(names, ev.Name)
	}
	if got := strings.Join(names, ","); got != "c,d,e" {
		t.Errorf("snapshot = %s", got)
	}
}

func TestMultiCopiesEvents(t *testing.T) {
	a := NewRingTracer(4, LevelDebug)
	b := NewRingTracer(4, LevelDebug)
	m := NewMultiTracer(LevelDebug, a, b)
	Point(m, ScopePass, "parse", "")
	if m.Ring() != a {
		t.Error("Ring should return the first ring tracer")
	}
	if len(a.Snapshot()) != 1 || len(b.Snapshot()) != 1 {
		t.Fatal("both tracers should hold the event")
	}
	if a.Snapshot()[0].Seq == b.Snapshot()[0].Seq {
		t.Error("each tracer numbers its own copy")
	}
}

func TestContextDefaultsToNop(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Error("empty context should give Nop")
	}
	r := NewRingTracer(1, LevelPhase)
	ctx := WithTracer(context.Background(), r)
	if FromContext(ctx) != Tracer(r) {
		t.Error("tracer not found in context")
	}
	span := Begin(r, ScopePass, "edit", 0)
	ctx = WithSpan(ctx, span)
	if CurrentSpan(ctx).SpanID != span.ID() {
		t.Error("span not found in context")
	}
}

func TestNewAutoFormat(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"", FormatText},
		{"-", FormatText},
		{"out.ndjson", FormatNDJSON},
		{"out.json", FormatChrome},
		{"out.log", FormatText},
	}
	for _, tt := range tests {
		if got := formatForPath(tt.path); got != tt.want {
			t.Errorf("formatForPath(%q) = %d, want %d", tt.path, got, tt.want)
		}
	}
}
