// Package fragment indexes the original text of a compilation unit by byte
// range. Fragments form a tree in first-child/next-sibling form stored in an
// arena; any two fragments are either disjoint or nested and siblings are
// ordered by start offset. The tree is built once per unit and never follows
// model edits.
package fragment

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"sniper/internal/model"
	"sniper/internal/source"
)

// ErrOverlap reports two fragments that partially overlap.
var ErrOverlap = errors.New("fragment: partially overlapping ranges")

// ID indexes a fragment in its Tree. NoID is the empty link.
type ID uint32

const NoID ID = 0

// Kind tags the declaration sub-regions. Element fragments and plain
// ranges have KindNone.
type Kind uint8

const (
	KindNone Kind = iota
	KindModifiers
	KindBeforeName
	KindName
	KindAfterName
	KindBody
)

var kindNames = [...]string{
	KindNone:       "",
	KindModifiers:  "modifiers",
	KindBeforeName: "before-name",
	KindName:       "name",
	KindAfterName:  "after-name",
	KindBody:       "body",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(?)"
}

// Fragment is one indexed range [Start, End).
type Fragment struct {
	Start uint32
	End   uint32
	Kind  Kind
	// Element is the model element the range belongs to; used for identity
	// lookup only.
	Element     model.ElementID
	Role        model.Role
	FirstChild  ID
	NextSibling ID
}

func (f Fragment) contains(o Fragment) bool {
	return f.Start <= o.Start && o.End <= f.End
}

// Tree owns the fragments of one file.
type Tree struct {
	file      *source.File
	frags     []Fragment
	root      ID
	byElement map[model.ElementID]ID
}

// New creates an empty tree over file.
func New(file *source.File) *Tree {
	return &Tree{
		file:      file,
		frags:     make([]Fragment, 1, 64),
		byElement: make(map[model.ElementID]ID),
	}
}

// File returns the indexed file.
func (t *Tree) File() *source.File { return t.file }

// Root returns the first fragment of the top-level sibling chain.
func (t *Tree) Root() ID { return t.root }

// Len reports how many fragments were allocated.
func (t *Tree) Len() int { return len(t.frags) - 1 }

// Get returns a copy of fragment id.
func (t *Tree) Get(id ID) Fragment {
	return t.frags[id]
}

// Text returns the original text of fragment id.
func (t *Tree) Text(id ID) string {
	f := t.frags[id]
	return t.Slice(f.Start, f.End)
}

// Slice returns the original text of [start, end).
func (t *Tree) Slice(start, end uint32) string {
	return string(t.file.Content[start:end])
}

// Children lists the direct children of id in order.
func (t *Tree) Children(id ID) []ID {
	var out []ID
	for c := t.frags[id].FirstChild; c != NoID; c = t.frags[c].NextSibling {
		out = append(out, c)
	}
	return out
}

// Cover returns the range spanned by the sibling chain starting at head.
func (t *Tree) Cover(head ID) (start, end uint32, ok bool) {
	if head == NoID {
		return 0, 0, false
	}
	start = t.frags[head].Start
	for c := head; c != NoID; c = t.frags[c].NextSibling {
		end = t.frags[c].End
	}
	return start, end, true
}

// Alloc stores f detached from the tree and returns its id.
func (t *Tree) Alloc(f Fragment) ID {
	n, err := safecast.Conv[uint32](len(t.frags))
	if err != nil {
		panic(fmt.Errorf("fragment: arena overflow: %w", err))
	}
	f.FirstChild, f.NextSibling = NoID, NoID
	t.frags = append(t.frags, f)
	return ID(n)
}

// Add allocates f and inserts it into the top-level chain.
func (t *Tree) Add(f Fragment) (ID, error) {
	if f.End <= f.Start || f.End > t.file.Len() {
		return NoID, fmt.Errorf("fragment: invalid range [%d, %d) in file of %d bytes", f.Start, f.End, t.file.Len())
	}
	id := t.Alloc(f)
	root, err := t.Insert(t.root, id)
	if err != nil {
		return NoID, err
	}
	t.root = root
	if f.Element != model.NoElement && f.Kind == KindNone {
		if _, seen := t.byElement[f.Element]; !seen {
			t.byElement[f.Element] = id
		}
	}
	return id, nil
}

// Insert places fragment n (with whatever children it already has) into the
// sibling chain starting at head and returns the new head.
//
// A fragment before head becomes the new head. A fragment inside an existing
// one (equal ranges included) descends into it. A fragment that strictly
// contains a run of consecutive siblings takes their place and the run is
// merged into its own children one by one. Anything else overlaps partially
// and is rejected with ErrOverlap.
func (t *Tree) Insert(head, n ID) (ID, error) {
	nf := t.frags[n]
	var prev ID
	for cur := head; cur != NoID; prev, cur = cur, t.frags[cur].NextSibling {
		cf := t.frags[cur]
		switch {
		case nf.End <= cf.Start:
			t.frags[n].NextSibling = cur
			return t.link(head, prev, n), nil

		case nf.Start >= cf.End:
			continue

		case cf.contains(nf):
			child, err := t.Insert(cf.FirstChild, n)
			if err != nil {
				return head, err
			}
			t.frags[cur].FirstChild = child
			return head, nil

		case nf.contains(cf):
			return t.wrap(head, prev, cur, n)

		default:
			return head, fmt.Errorf("%w: [%d, %d) and [%d, %d)", ErrOverlap, nf.Start, nf.End, cf.Start, cf.End)
		}
	}
	t.frags[n].NextSibling = NoID
	return t.link(head, prev, n), nil
}

// InsertChild inserts n among the children of parent. It is how a subtree
// built on its own is merged into another.
func (t *Tree) InsertChild(parent, n ID) error {
	head, err := t.Insert(t.frags[parent].FirstChild, n)
	if err != nil {
		return err
	}
	t.frags[parent].FirstChild = head
	return nil
}

// wrap replaces the run of siblings starting at first that n contains.
func (t *Tree) wrap(head, prev, first, n ID) (ID, error) {
	nf := t.frags[n]
	last := first
	for next := t.frags[last].NextSibling; next != NoID && t.frags[next].Start < nf.End; next = t.frags[last].NextSibling {
		if t.frags[next].End > nf.End {
			nx := t.frags[next]
			return head, fmt.Errorf("%w: [%d, %d) and [%d, %d)", ErrOverlap, nf.Start, nf.End, nx.Start, nx.End)
		}
		last = next
	}
	t.frags[n].NextSibling = t.frags[last].NextSibling
	t.frags[last].NextSibling = NoID
	head = t.link(head, prev, n)

	for c := first; c != NoID; {
		next := t.frags[c].NextSibling
		t.frags[c].NextSibling = NoID
		child, err := t.Insert(t.frags[n].FirstChild, c)
		if err != nil {
			return head, err
		}
		t.frags[n].FirstChild = child
		c = next
	}
	return head, nil
}

func (t *Tree) link(head, prev, n ID) ID {
	if prev == NoID {
		return n
	}
	t.frags[prev].NextSibling = n
	return head
}

// Locate returns the outermost fragment whose range is exactly [start, end),
// searching the chain at head and below. It returns NoID when nothing matches.
func (t *Tree) Locate(head ID, start, end uint32) ID {
	for cur := head; cur != NoID; cur = t.frags[cur].NextSibling {
		f := t.frags[cur]
		if f.Start > start {
			return NoID
		}
		if f.Start == start && f.End == end {
			return cur
		}
		if f.Start <= start && end <= f.End {
			return t.Locate(f.FirstChild, start, end)
		}
	}
	return NoID
}

// FragmentOf returns the fragment of an element, or NoID when the element has
// no original text.
func (t *Tree) FragmentOf(el *model.Element) ID {
	if el == nil {
		return NoID
	}
	return t.byElement[el.ID()]
}

// Walk visits the chain at head and every descendant in source order.
func (t *Tree) Walk(head ID, fn func(id ID, depth int)) {
	t.walk(head, 0, fn)
}

func (t *Tree) walk(head ID, depth int, fn func(ID, int)) {
	for c := head; c != NoID; c = t.frags[c].NextSibling {
		fn(c, depth)
		t.walk(t.frags[c].FirstChild, depth+1, fn)
	}
}
