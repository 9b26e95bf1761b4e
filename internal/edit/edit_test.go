package edit_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sniper/internal/change"
	"sniper/internal/edit"
	"sniper/internal/format"
	"sniper/internal/javafront"
	"sniper/internal/sniper"
	"sniper/internal/source"
)

const counter = `package app;

public class Counter {
    private int total;

    public void add(int n) {
        total += n;
    }
}
`

func run(t *testing.T, script string, opts edit.ApplyOptions) (string, *edit.ApplyResult, error) {
	t.Helper()
	s, err := edit.ParseScript("script.toml", script)
	require.NoError(t, err)

	fs := source.NewFileSet()
	u, err := javafront.Parse(context.Background(), fs.Get(fs.AddVirtual("Counter.java", []byte(counter))))
	require.NoError(t, err)
	col := change.NewCollector().Attach(u.Factory)

	res, applyErr := edit.Apply(u.Root, s, opts)
	out, err := sniper.NewPrinter(u.Fragments, change.NewResolver(col), format.Options{}).PrintUnit(context.Background(), u.Root)
	require.NoError(t, err)
	return string(out), res, applyErr
}

func TestApplyScript(t *testing.T) {
	out, res, err := run(t, `
[[edit]]
op = "add-parameter"
target = "Counter.add"
type = "int"
name = "times"

[[edit]]
op = "add-statement"
target = "Counter.add"
text = "log(n);"
index = 0

[[edit]]
op = "add-modifier"
target = "Counter.total"
modifier = "volatile"

[[edit]]
op = "rename"
target = "Counter.add"
name = "increment"
`, edit.ApplyOptions{})
	require.NoError(t, err)
	assert.Len(t, res.Applied, 4)
	assert.Empty(t, res.Skipped)

	want := `package app;

public class Counter {
    private volatile int total;

    public void increment(int n, int times) {
        log(n);
        total += n;
    }
}
`
	assert.Equal(t, want, out)
}

func TestApplyDeleteMember(t *testing.T) {
	out, _, err := run(t, `
[[edit]]
op = "delete"
target = "Counter.total"
`, edit.ApplyOptions{})
	require.NoError(t, err)
	want := `package app;

public class Counter {
    public void add(int n) {
        total += n;
    }
}
`
	assert.Equal(t, want, out)
}

func TestApplyRemoveStatementAndParameter(t *testing.T) {
	out, _, err := run(t, `
[[edit]]
op = "remove-statement"
target = "Counter.add"

[[edit]]
op = "delete"
target = "Counter.add/n"
`, edit.ApplyOptions{})
	require.NoError(t, err)
	want := `package app;

public class Counter {
    private int total;

    public void add() {
    }
}
`
	assert.Equal(t, want, out)
}

func TestApplySkips(t *testing.T) {
	out, res, err := run(t, `
[[edit]]
op = "remove-modifier"
target = "Counter.total"
modifier = "static"

[[edit]]
op = "rename"
target = "Counter.missing"
name = "x"

[[edit]]
op = "set-type"
target = "Counter.total"
type = "long"
`, edit.ApplyOptions{})
	require.NoError(t, err)
	require.Len(t, res.Applied, 1)
	assert.Equal(t, edit.OpSetType, res.Applied[0].Op)
	require.Len(t, res.Skipped, 2)
	assert.Equal(t, "modifier not present", res.Skipped[0].Reason)
	assert.Contains(t, res.Skipped[1].Reason, "not found")
	assert.Contains(t, out, "private long total;")
}

func TestApplyStrict(t *testing.T) {
	_, _, err := run(t, `
[[edit]]
op = "rename"
target = "Counter.missing"
name = "x"
`, edit.ApplyOptions{Strict: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, edit.ErrTargetNotFound))
}

func TestApplyNothing(t *testing.T) {
	out, res, err := run(t, `
[[edit]]
op = "add-modifier"
target = "Counter.total"
modifier = "private"
`, edit.ApplyOptions{})
	assert.True(t, errors.Is(err, edit.ErrNoEdits))
	assert.Equal(t, "modifier already present", res.Skipped[0].Reason)
	assert.Equal(t, counter, out)
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"unknown op", "[[edit]]\nop = \"move\"\ntarget = \"A\"\n", "unknown op"},
		{"missing target", "[[edit]]\nop = \"delete\"\n", "missing target"},
		{"missing name", "[[edit]]\nop = \"rename\"\ntarget = \"A.b\"\n", "rename needs name"},
		{"unknown key", "[[edit]]\nop = \"delete\"\ntarget = \"A\"\ncolour = 1\n", "unknown key"},
		{"bad selector", "[[edit]]\nop = \"delete\"\ntarget = \"A./x\"\n", "bad selector"},
		{"bad toml", "[[edit]\n", "script.toml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := edit.ParseScript("script.toml", tt.script)
			require.Error(t, err)
			assert.True(t, errors.Is(err, edit.ErrInvalidScript))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edits.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[edit]]\nop = \"remove-statement\"\ntarget = \"A.run\"\nindex = 2\n"), 0o600))
	s, err := edit.LoadScript(path)
	require.NoError(t, err)
	require.Len(t, s.Edits, 1)
	require.NotNil(t, s.Edits[0].Index)
	assert.Equal(t, 2, *s.Edits[0].Index)
}

func TestParseSelector(t *testing.T) {
	tests := []struct {
		in    string
		path  []string
		param string
		bad   bool
	}{
		{in: "A", path: []string{"A"}},
		{in: "A.b", path: []string{"A", "b"}},
		{in: "A.Inner.run/x", path: []string{"A", "Inner", "run"}, param: "x"},
		{in: "A/x", bad: true},
		{in: "A..b", bad: true},
		{in: "A.b/", bad: true},
		{in: "", bad: true},
	}
	for _, tt := range tests {
		sel, err := edit.ParseSelector(tt.in)
		if tt.bad {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.path, sel.Path)
		assert.Equal(t, tt.param, sel.Param)
		assert.Equal(t, tt.in, sel.String())
	}
}
