package fragment

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/vmihailenco/msgpack/v5"
)

// SnapshotSchema is bumped whenever Node changes shape.
const SnapshotSchema uint16 = 1

// Snapshot is a serialisable view of a Tree.
type Snapshot struct {
	Schema uint16 `msgpack:"schema" json:"schema"`
	Path   string `msgpack:"path" json:"path"`
	Size   uint32 `msgpack:"size" json:"size"`
	Nodes  []Node `msgpack:"nodes" json:"nodes"`
}

// Node is one fragment of a Snapshot.
type Node struct {
	ID       uint32 `msgpack:"id" json:"id"`
	Start    uint32 `msgpack:"start" json:"start"`
	End      uint32 `msgpack:"end" json:"end"`
	Kind     string `msgpack:"kind,omitempty" json:"kind,omitempty"`
	Element  uint32 `msgpack:"element,omitempty" json:"element,omitempty"`
	Role     string `msgpack:"role,omitempty" json:"role,omitempty"`
	Children []Node `msgpack:"children,omitempty" json:"children,omitempty"`
}

// Snapshot captures the subtree chain at head (the whole tree for Root()).
func (t *Tree) Snapshot(head ID) Snapshot {
	return Snapshot{
		Schema: SnapshotSchema,
		Path:   t.file.Path,
		Size:   t.file.Len(),
		Nodes:  t.nodes(head),
	}
}

func (t *Tree) nodes(head ID) []Node {
	var out []Node
	for c := head; c != NoID; c = t.frags[c].NextSibling {
		f := t.frags[c]
		n := Node{ID: uint32(c), Start: f.Start, End: f.End, Kind: f.Kind.String(), Element: uint32(f.Element)}
		if f.Kind == KindNone && f.Element != 0 {
			n.Role = f.Role.String()
		}
		n.Children = t.nodes(f.FirstChild)
		out = append(out, n)
	}
	return out
}

// EncodeSnapshot writes s as msgpack.
func EncodeSnapshot(w io.Writer, s Snapshot) error {
	if err := msgpack.NewEncoder(w).Encode(&s); err != nil {
		return fmt.Errorf("fragment: encode snapshot: %w", err)
	}
	return nil
}

// DecodeSnapshot reads a msgpack snapshot written by EncodeSnapshot.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := msgpack.NewDecoder(r).Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("fragment: decode snapshot: %w", err)
	}
	if s.Schema != SnapshotSchema {
		return Snapshot{}, fmt.Errorf("fragment: snapshot schema %d, want %d", s.Schema, SnapshotSchema)
	}
	return s, nil
}

// Dump writes an indented outline of the chain at head, one fragment per
// line with a preview of its text clipped to width columns.
func (t *Tree) Dump(w io.Writer, head ID, width int) error {
	var err error
	t.Walk(head, func(id ID, depth int) {
		if err != nil {
			return
		}
		f := t.frags[id]
		label := f.Kind.String()
		if label == "" {
			label = f.Role.String()
		}
		if f.Element != 0 && f.Kind == KindNone {
			label = fmt.Sprintf("%s #%d", label, f.Element)
		}
		line := fmt.Sprintf("%s[%d,%d) %s", strings.Repeat("  ", depth), f.Start, f.End, label)
		if width > 0 {
			preview := strings.Join(strings.Fields(t.Text(id)), " ")
			room := width - runewidth.StringWidth(line) - 3
			if room > 8 {
				line += "  " + runewidth.Truncate(preview, room, "…")
			}
		}
		_, err = fmt.Fprintln(w, line)
	})
	return err
}
