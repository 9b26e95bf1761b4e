package fragment

import (
	"fmt"

	"sniper/internal/model"
	"sniper/internal/source"
)

// Build indexes every positioned element below root, coarsest first.
func Build(file *source.File, root *model.Element) (*Tree, error) {
	t := New(file)
	var err error
	root.Walk(func(el *model.Element) bool {
		if err != nil {
			return false
		}
		err = t.AddElement(el)
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// AddElement inserts the fragment of el and, for declarations, its
// sub-regions. Elements without source text are skipped.
func (t *Tree) AddElement(el *model.Element) error {
	pos := el.Position()
	if !pos.Valid() {
		return nil
	}
	if _, err := t.Add(Fragment{Start: pos.Span.Start, End: pos.Span.End, Element: el.ID(), Role: el.Role()}); err != nil {
		return fmt.Errorf("fragment: %s: %w", el, err)
	}
	if !pos.IsDeclaration() {
		return nil
	}
	for _, sub := range declarationRegions(pos) {
		if sub.End <= sub.Start {
			continue
		}
		sub.Element = el.ID()
		if _, err := t.Add(sub); err != nil {
			return fmt.Errorf("fragment: %s %s: %w", el, sub.Kind, err)
		}
	}
	return nil
}

// declarationRegions splits a declaration into
// MODIFIERS, BEFORE_NAME, NAME, AFTER_NAME and BODY; some may be empty.
func declarationRegions(pos model.Position) []Fragment {
	start, end := pos.Span.Start, pos.Span.End
	modsEnd := start
	if pos.Modifiers.End > start && pos.Modifiers.End <= pos.Name.Start {
		modsEnd = pos.Modifiers.End
	}
	afterEnd := end
	hasBody := pos.Body.End > pos.Body.Start && pos.Body.Start >= pos.Name.End
	if hasBody {
		afterEnd = pos.Body.Start
	}
	regions := []Fragment{
		{Start: start, End: modsEnd, Kind: KindModifiers},
		{Start: modsEnd, End: pos.Name.Start, Kind: KindBeforeName},
		{Start: pos.Name.Start, End: pos.Name.End, Kind: KindName},
		{Start: pos.Name.End, End: afterEnd, Kind: KindAfterName},
	}
	if hasBody {
		regions = append(regions, Fragment{Start: pos.Body.Start, End: end, Kind: KindBody})
	}
	return regions
}
