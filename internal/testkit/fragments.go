// Package testkit holds invariant checks shared by tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"sniper/internal/fragment"
	"sniper/internal/model"
)

// CheckFragmentInvariants walks a fragment tree and verifies:
//  1. every fragment is non-empty and within the file
//  2. siblings are ordered and do not overlap
//  3. children lie inside their parent
//
// Equal ranges are allowed between a parent and its first child.
func CheckFragmentInvariants(t *fragment.Tree) error {
	if t == nil || t.File() == nil {
		return fmt.Errorf("nil tree or file")
	}
	size, err := safecast.Conv[uint32](len(t.File().Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	outer := fragment.Fragment{Start: 0, End: size}
	return checkChain(t, t.Root(), outer, "file")
}

func checkChain(t *fragment.Tree, head fragment.ID, parent fragment.Fragment, where string) error {
	var prev *fragment.Fragment
	for id := head; id != fragment.NoID; id = t.Get(id).NextSibling {
		f := t.Get(id)
		if f.End <= f.Start {
			return fmt.Errorf("fragment %d [%d,%d) is empty", id, f.Start, f.End)
		}
		if f.Start < parent.Start || f.End > parent.End {
			return fmt.Errorf("fragment %d [%d,%d) is outside %s [%d,%d)", id, f.Start, f.End, where, parent.Start, parent.End)
		}
		if prev != nil && f.Start < prev.End {
			return fmt.Errorf("fragment %d [%d,%d) overlaps its previous sibling [%d,%d)", id, f.Start, f.End, prev.Start, prev.End)
		}
		if err := checkChain(t, f.FirstChild, f, fmt.Sprintf("fragment %d", id)); err != nil {
			return err
		}
		prev = &f
	}
	return nil
}

// CheckElementFragments verifies that every positioned element below root
// has a fragment whose range matches its span.
func CheckElementFragments(t *fragment.Tree, root *model.Element) error {
	var err error
	root.Walk(func(el *model.Element) bool {
		if err != nil {
			return false
		}
		pos := el.Position()
		if !pos.Valid() {
			return true
		}
		id := t.FragmentOf(el)
		if id == fragment.NoID {
			err = fmt.Errorf("%s has no fragment", el)
			return false
		}
		if f := t.Get(id); f.Start != pos.Span.Start || f.End != pos.Span.End {
			err = fmt.Errorf("%s fragment [%d,%d) differs from span %s", el, f.Start, f.End, pos.Span)
			return false
		}
		return true
	})
	return err
}
