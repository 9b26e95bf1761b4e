package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetLatestVersion(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("A.java", []byte("class A {}"), 0)
	id2 := fs.Add("./A.java", []byte("class A { int x; }"), 0)
	if id1 == id2 {
		t.Fatalf("expected a new id for the second Add, got %d twice", id1)
	}

	latest, ok := fs.GetLatest("A.java")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d, %v; want %d, true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "class A {}" {
		t.Errorf("old version content = %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d, want 2", fs.Len())
	}
}

func TestLoadNormalizesAndRestores(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		content string
		flags   FileFlags
	}{
		{"plain", "class A {}\n", "class A {}\n", 0},
		{"crlf", "class A {\r\n}\r\n", "class A {\n}\n", FileNormalizedCRLF},
		{"bom", "\xEF\xBB\xBFclass A {}", "class A {}", FileHadBOM},
		{"bom and crlf", "\xEF\xBB\xBFclass A {\r\n}", "class A {\n}", FileHadBOM | FileNormalizedCRLF},
		{"lone cr kept", "a\rb", "a\rb", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "A.java")
			if err := os.WriteFile(path, []byte(tt.raw), 0o600); err != nil {
				t.Fatalf("write: %v", err)
			}
			fs := NewFileSet()
			id, err := fs.Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			f := fs.Get(id)
			if string(f.Content) != tt.content {
				t.Errorf("content = %q, want %q", f.Content, tt.content)
			}
			if f.Flags != tt.flags {
				t.Errorf("flags = %b, want %b", f.Flags, tt.flags)
			}
			if got := string(f.Restore(f.Content)); got != tt.raw {
				t.Errorf("Restore = %q, want %q", got, tt.raw)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "missing.java")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestPositionAndResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("A.java", []byte("class A {\n\tint x;\n}\n"))
	f := fs.Get(id)

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{9, LineCol{1, 10}},
		{10, LineCol{2, 1}},
		{11, LineCol{2, 2}},
		{18, LineCol{3, 1}},
	}
	for _, tt := range tests {
		if got := f.Position(tt.off); got != tt.want {
			t.Errorf("Position(%d) = %v, want %v", tt.off, got, tt.want)
		}
	}

	start, end := fs.Resolve(Span{File: id, Start: 11, End: 17})
	if start != (LineCol{2, 2}) || end != (LineCol{2, 8}) {
		t.Errorf("Resolve = %v..%v", start, end)
	}
	if f.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag")
	}
}

func TestFileText(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("A.java", []byte("int x;")))

	if got := f.Text(Span{Start: 4, End: 5}); got != "x" {
		t.Errorf("Text = %q", got)
	}
	if got := f.Text(Span{Start: 4, End: 100}); got != "x;" {
		t.Errorf("clamped Text = %q", got)
	}
	if got := f.Text(Span{Start: 5, End: 4}); got != "" {
		t.Errorf("inverted Text = %q", got)
	}
	if f.Span().Len() != 6 {
		t.Errorf("Span().Len() = %d", f.Span().Len())
	}
}
