package fragment_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sniper/internal/fragment"
	"sniper/internal/model"
	"sniper/internal/source"
)

func newTree(t *testing.T, text string) *fragment.Tree {
	t.Helper()
	fs := source.NewFileSet()
	return fragment.New(fs.Get(fs.AddVirtual("T.java", []byte(text))))
}

func add(t *testing.T, tr *fragment.Tree, start, end uint32) fragment.ID {
	t.Helper()
	id, err := tr.Add(fragment.Fragment{Start: start, End: end})
	require.NoError(t, err)
	return id
}

type span struct{ start, end uint32 }

func chain(tr *fragment.Tree, head fragment.ID) []span {
	var out []span
	for c := head; c != fragment.NoID; c = tr.Get(c).NextSibling {
		out = append(out, span{tr.Get(c).Start, tr.Get(c).End})
	}
	return out
}

func leaves(tr *fragment.Tree) []span {
	var out []span
	tr.Walk(tr.Root(), func(id fragment.ID, _ int) {
		if f := tr.Get(id); f.FirstChild == fragment.NoID {
			out = append(out, span{f.Start, f.End})
		}
	})
	return out
}

func TestInsertBeforeInsideAndAfter(t *testing.T) {
	tr := newTree(t, strings.Repeat("x", 40))
	root := add(t, tr, 10, 20)
	add(t, tr, 10, 15)
	add(t, tr, 15, 20)
	add(t, tr, 5, 10)

	assert.Equal(t, []span{{5, 10}, {10, 20}}, chain(tr, tr.Root()))
	assert.Equal(t, []span{{10, 15}, {15, 20}}, chain(tr, tr.Get(root).FirstChild))
	assert.Equal(t, []span{{5, 10}, {10, 15}, {15, 20}}, leaves(tr))

	start, end, ok := tr.Cover(tr.Root())
	require.True(t, ok)
	assert.Equal(t, span{5, 20}, span{start, end})

	add(t, tr, 30, 35)
	assert.Equal(t, []span{{5, 10}, {10, 20}, {30, 35}}, chain(tr, tr.Root()))
}

func TestInsertWrapsContainedSiblings(t *testing.T) {
	tr := newTree(t, strings.Repeat("x", 40))
	add(t, tr, 10, 15)
	add(t, tr, 15, 20)
	add(t, tr, 22, 25)
	wrapper := add(t, tr, 8, 20)

	assert.Equal(t, []span{{8, 20}, {22, 25}}, chain(tr, tr.Root()))
	assert.Equal(t, []span{{10, 15}, {15, 20}}, chain(tr, tr.Get(wrapper).FirstChild))
}

func TestInsertMergesIntoExistingChildren(t *testing.T) {
	tr := newTree(t, strings.Repeat("x", 40))
	add(t, tr, 12, 14)
	add(t, tr, 16, 18)

	// a detached subtree with its own child, merged afterwards
	outer := tr.Alloc(fragment.Fragment{Start: 10, End: 20})
	inner := tr.Alloc(fragment.Fragment{Start: 11, End: 15})
	require.NoError(t, tr.InsertChild(outer, inner))

	root, err := tr.Insert(tr.Root(), outer)
	require.NoError(t, err)
	assert.Equal(t, outer, root)
	assert.Equal(t, []span{{11, 15}, {16, 18}}, chain(tr, tr.Get(outer).FirstChild))
	assert.Equal(t, []span{{12, 14}}, chain(tr, tr.Get(inner).FirstChild))
}

func TestEqualRangeNestsLaterUnderEarlier(t *testing.T) {
	tr := newTree(t, strings.Repeat("x", 20))
	first := add(t, tr, 0, 10)
	second := add(t, tr, 0, 10)

	assert.Equal(t, first, tr.Root())
	assert.Equal(t, second, tr.Get(first).FirstChild)
	assert.Equal(t, first, tr.Locate(tr.Root(), 0, 10), "locate returns the outermost match")
}

func TestPartialOverlapIsRejected(t *testing.T) {
	tests := []struct {
		name     string
		existing []span
		next     span
	}{
		{"crosses start", []span{{10, 20}}, span{5, 15}},
		{"crosses end", []span{{10, 20}}, span{15, 25}},
		{"wraps one and crosses next", []span{{10, 15}, {18, 25}}, span{8, 20}},
		{"crosses a nested child", []span{{0, 30}, {10, 20}}, span{5, 15}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTree(t, strings.Repeat("x", 40))
			for _, s := range tt.existing {
				add(t, tr, s.start, s.end)
			}
			_, err := tr.Add(fragment.Fragment{Start: tt.next.start, End: tt.next.end})
			assert.ErrorIs(t, err, fragment.ErrOverlap)
		})
	}
}

func TestAddRejectsEmptyAndOutOfRange(t *testing.T) {
	tr := newTree(t, "abc")
	_, err := tr.Add(fragment.Fragment{Start: 1, End: 1})
	assert.Error(t, err)
	_, err = tr.Add(fragment.Fragment{Start: 1, End: 9})
	assert.Error(t, err)
}

func TestLocate(t *testing.T) {
	tr := newTree(t, strings.Repeat("x", 40))
	outer := add(t, tr, 0, 30)
	mid := add(t, tr, 5, 20)
	leaf := add(t, tr, 6, 9)
	after := add(t, tr, 32, 35)

	tests := []struct {
		start, end uint32
		want       fragment.ID
	}{
		{0, 30, outer},
		{5, 20, mid},
		{6, 9, leaf},
		{32, 35, after},
		{6, 10, fragment.NoID},
		{1, 2, fragment.NoID},
		{36, 38, fragment.NoID},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tr.Locate(tr.Root(), tt.start, tt.end), "[%d,%d)", tt.start, tt.end)
	}
}

func TestDeclarationRegions(t *testing.T) {
	text := strings.Repeat(" ", 90) + "public" + " Ab " + "counterName" + " = new Ab();  // abc"
	require.Len(t, text, 131)
	tr := newTree(t, text)

	f := model.NewFactory()
	decl := f.Named(model.KindField, "counterName")
	decl.SetPosition(model.Position{
		Span:      source.Span{Start: 90, End: 131},
		Modifiers: source.Span{Start: 90, End: 96},
		Name:      source.Span{Start: 100, End: 111},
	})
	require.NoError(t, tr.AddElement(decl))

	root := tr.FragmentOf(decl)
	require.NotEqual(t, fragment.NoID, root)
	var got []string
	for _, c := range tr.Children(root) {
		fr := tr.Get(c)
		got = append(got, fr.Kind.String()+"="+tr.Text(c))
	}
	assert.Equal(t, []string{
		"modifiers=public",
		"before-name= Ab ",
		"name=counterName",
		"after-name= = new Ab();  // abc",
	}, got)
	assert.Equal(t, tr.Locate(tr.Root(), 100, 111), tr.Children(root)[2])
}

func TestDumpAndSnapshot(t *testing.T) {
	tr := newTree(t, "class A { int x; }")
	add(t, tr, 0, 18)
	add(t, tr, 10, 16)

	var buf bytes.Buffer
	require.NoError(t, tr.Dump(&buf, tr.Root(), 60))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "  [10,16)"), lines[1])
	assert.Contains(t, lines[1], "int x;")

	snap := tr.Snapshot(tr.Root())
	buf.Reset()
	require.NoError(t, fragment.EncodeSnapshot(&buf, snap))
	back, err := fragment.DecodeSnapshot(&buf)
	require.NoError(t, err)
	require.Len(t, back.Nodes, 1)
	assert.Equal(t, uint32(18), back.Size)
	assert.Equal(t, uint32(10), back.Nodes[0].Children[0].Start)
}
