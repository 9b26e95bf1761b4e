package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"sniper/internal/driver"
	"sniper/internal/fragment"
	"sniper/internal/javafront"
)

const pointSrc = `package geo;

public class Point {
    private int x;

    int getX() {
        return x;
    }
}
`

// execute runs the root command with args after resetting every flag to its
// default, so tests do not leak flag values into each other.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	reset(rootCmd.PersistentFlags())
	for _, c := range rootCmd.Commands() {
		reset(c.Flags())
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	_, err := rootCmd.ExecuteC()
	return out.String(), err
}

func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"sniper.toml":           "[run]\nexclude = [\"*Generated.java\"]\n",
		"src/Point.java":        pointSrc,
		"src/BadGenerated.java": "class Bad {\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestPrintCommandJSON(t *testing.T) {
	dir := writeProject(t)
	out, err := execute(t, "print", "--ui", "off", "--config", filepath.Join(dir, "sniper.toml"),
		"--format", "json", filepath.Join(dir, "src"))
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	var got []struct {
		Path      string `json:"path"`
		Identical bool   `json:"identical"`
		Fragments int    `json:"fragments"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(got) != 1 {
		t.Fatalf("want 1 file (generated one excluded), got %+v", got)
	}
	if !got[0].Identical || got[0].Fragments == 0 || !strings.HasSuffix(got[0].Path, "Point.java") {
		t.Fatalf("unexpected result %+v", got[0])
	}
}

func TestPrintCommandStdout(t *testing.T) {
	dir := writeProject(t)
	out, err := execute(t, "print", "--ui", "off", "--config", filepath.Join(dir, "sniper.toml"),
		"--stdout", filepath.Join(dir, "src", "Point.java"))
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if out != pointSrc {
		t.Fatalf("stdout = %q, want the original source", out)
	}

	_, err = execute(t, "print", "--stdout", "--check", dir)
	if err == nil {
		t.Fatal("--stdout with --check should fail")
	}
}

func TestEditCommandStdout(t *testing.T) {
	dir := writeProject(t)
	script := filepath.Join(dir, "rename.toml")
	if err := os.WriteFile(script, []byte("[[edit]]\nop = \"rename\"\ntarget = \"Point.x\"\nname = \"left\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "edit", "--ui", "off", "--config", filepath.Join(dir, "sniper.toml"),
		"--stdout", script, filepath.Join(dir, "src"))
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if !strings.Contains(out, "    private int left;\n") {
		t.Fatalf("field not renamed:\n%s", out)
	}
	if !strings.Contains(out, "        return x;\n") {
		t.Fatalf("method body should be untouched:\n%s", out)
	}
	data, err := os.ReadFile(filepath.Join(dir, "src", "Point.java"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != pointSrc {
		t.Fatal("--stdout must not rewrite the file")
	}
}

func TestFragmentsCommand(t *testing.T) {
	dir := writeProject(t)
	path := filepath.Join(dir, "src", "Point.java")

	out, err := execute(t, "fragments", "--format", "json", path)
	if err != nil {
		t.Fatalf("fragments: %v", err)
	}
	var snap fragment.Snapshot
	if err := json.Unmarshal([]byte(out), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasSuffix(snap.Path, "Point.java") || len(snap.Nodes) == 0 || len(snap.Nodes[0].Children) == 0 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	child := snap.Nodes[0].Children[0]
	at := strconv.FormatUint(uint64(child.Start), 10) + ":" + strconv.FormatUint(uint64(child.End), 10)
	out, err = execute(t, "fragments", "--format", "json", "--at", at, path)
	if err != nil {
		t.Fatalf("fragments --at %s: %v", at, err)
	}
	var one fragment.Snapshot
	if err := json.Unmarshal([]byte(out), &one); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(one.Nodes) != 1 || one.Nodes[0].Start != child.Start || one.Nodes[0].End != child.End {
		t.Fatalf("--at %s returned %+v", at, one.Nodes)
	}

	text, err := execute(t, "fragments", "--width", "60", path)
	if err != nil {
		t.Fatalf("fragments text: %v", err)
	}
	if !strings.HasPrefix(text, "[0,") {
		t.Fatalf("outline should start at the root fragment:\n%s", text)
	}
}

func TestParseRange(t *testing.T) {
	cases := []struct {
		in         string
		start, end uint32
		bad        bool
	}{
		{in: "3:10", start: 3, end: 10},
		{in: " 0 : 0 ", start: 0, end: 0},
		{in: "10:3", bad: true},
		{in: "7", bad: true},
		{in: "a:3", bad: true},
		{in: "-1:3", bad: true},
	}
	for _, tc := range cases {
		start, end, err := parseRange(tc.in)
		if tc.bad {
			if err == nil {
				t.Errorf("parseRange(%q) should fail", tc.in)
			}
			continue
		}
		if err != nil || start != tc.start || end != tc.end {
			t.Errorf("parseRange(%q) = %d, %d, %v", tc.in, start, end, err)
		}
	}
}

func TestReadUIMode(t *testing.T) {
	cases := map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff}
	for in, want := range cases {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Error("expected an error for an unknown mode")
	}
	if shouldUseTUI(uiModeOn, 5, true) {
		t.Error("stdout output never gets a progress UI")
	}
	if shouldUseTUI(uiModeOff, 5, false) {
		t.Error("off means off")
	}
}

func TestRenderPrintText(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = saved }()

	results := []driver.FileResult{
		{Path: "A.java"},
		{Path: "B.java", Cached: true},
		{Path: "C.java", Err: fmt.Errorf("%w: C.java", driver.ErrRoundTrip)},
	}
	var out bytes.Buffer
	hasErrors, hasChanges := renderPrintText(&out, results, true, false)
	if hasErrors || !hasChanges {
		t.Fatalf("hasErrors=%v hasChanges=%v", hasErrors, hasChanges)
	}
	want := "ok A.java\nok B.java (cached)\ndiffers C.java\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}

func TestVersionCommandJSON(t *testing.T) {
	out, err := execute(t, "version", "--format", "json", "--full")
	if err != nil {
		t.Fatal(err)
	}
	var info buildInfo
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("invalid json %q: %v", out, err)
	}
	if info.Grammar.Language != "java" || info.Grammar.Module != "github.com/smacker/go-tree-sitter" || info.Grammar.Symbols == 0 {
		t.Fatalf("unexpected grammar %+v", info.Grammar)
	}
	if info.Formats["fragment_snapshot"] != fragment.SnapshotSchema || info.Formats["check_cache"] != driver.CacheSchema {
		t.Fatalf("unexpected formats %v", info.Formats)
	}
	if info.Build["commit"] == "" || info.Build["date"] == "" {
		t.Fatalf("full build metadata missing: %v", info.Build)
	}
}

func TestRenderVersionPretty(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	renderVersionPretty(&out, buildInfo{
		Version: "1.2.3",
		Tagline: versionTagline,
		Grammar: javafront.Grammar{Language: "java", Module: "m", Version: "v1", Symbols: 7},
		Formats: map[string]uint16{"fragment_snapshot": 2, "check_cache": 3},
	})
	want := "sniper 1.2.3, touch only what changed\n" +
		"grammar: java from m v1 (7 symbols)\n" +
		"formats: fragment snapshot v2, check cache v3\n"
	if out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
}

