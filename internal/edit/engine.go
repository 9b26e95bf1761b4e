package edit

import (
	"errors"
	"fmt"
	"slices"

	"sniper/internal/model"
)

var (
	// ErrNoEdits is returned when no edit of a script was applied.
	ErrNoEdits = errors.New("no applicable edits found")
	// ErrTargetNotFound is returned in strict mode for a selector that
	// matches nothing.
	ErrTargetNotFound = errors.New("edit target not found")
)

// ApplyOptions configures how edits are applied.
type ApplyOptions struct {
	// Strict fails on the first edit that cannot be applied instead of
	// skipping it.
	Strict bool
}

// AppliedEdit records a successfully applied edit.
type AppliedEdit struct {
	Index  int
	Op     Op
	Target string
}

// SkippedEdit captures an edit that was not applied with a reason.
type SkippedEdit struct {
	Index  int
	Op     Op
	Target string
	Reason string
}

// ApplyResult aggregates applied and skipped edits.
type ApplyResult struct {
	Applied []AppliedEdit
	Skipped []SkippedEdit
}

// skip is an edit that does not fit its target.
type skip string

func (s skip) Error() string { return string(s) }

// Apply runs the edits of script against cu in order. Mutations go through
// the model so an attached change collector sees every one of them.
func Apply(cu *model.Element, script *Script, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{
		Applied: make([]AppliedEdit, 0, len(script.Edits)),
		Skipped: make([]SkippedEdit, 0),
	}
	if cu == nil || cu.Kind() != model.KindCompilationUnit {
		return result, fmt.Errorf("edit: target is not a compilation unit")
	}

	for i, e := range script.Edits {
		err := applyOne(cu, e)
		if err == nil {
			result.Applied = append(result.Applied, AppliedEdit{Index: i, Op: e.Op, Target: e.Target})
			continue
		}
		var reason skip
		if !errors.As(err, &reason) && !errors.Is(err, ErrTargetNotFound) {
			return result, err
		}
		if opts.Strict {
			return result, fmt.Errorf("edit %d (%s): %w", i+1, e, err)
		}
		result.Skipped = append(result.Skipped, SkippedEdit{Index: i, Op: e.Op, Target: e.Target, Reason: err.Error()})
	}

	if len(result.Applied) == 0 {
		return result, ErrNoEdits
	}
	return result, nil
}

func applyOne(cu *model.Element, e Edit) error {
	sel, err := ParseSelector(e.Target)
	if err != nil {
		return err
	}
	el := sel.Resolve(cu)
	if el == nil {
		return fmt.Errorf("%w: %s", ErrTargetNotFound, sel)
	}
	f := cu.Factory()

	switch e.Op {
	case OpRename:
		if !el.Kind().IsNamed() {
			return skip("target has no name")
		}
		el.SetName(e.Name)

	case OpDelete:
		if !el.Delete() {
			return skip("target is detached")
		}

	case OpAddModifier:
		if !el.Kind().IsNamed() {
			return skip("target takes no modifiers")
		}
		if findModifier(el, e.Modifier) != nil {
			return skip("modifier already present")
		}
		el.Add(model.RoleModifier, f.Modifier(e.Modifier))

	case OpRemoveModifier:
		m := findModifier(el, e.Modifier)
		if m == nil {
			return skip("modifier not present")
		}
		el.Remove(m)

	case OpSetType:
		switch el.Kind() {
		case model.KindField, model.KindMethod, model.KindParameter:
		default:
			return skip(fmt.Sprintf("%s has no type", el.Kind()))
		}
		el.Set(model.RoleType, f.Text(model.KindTypeRef, e.Type))

	case OpAddField:
		if !el.Kind().IsType() {
			return skip("fields can only be added to types")
		}
		el.Add(model.RoleTypeMember, f.Field(e.Type, e.Name, e.Value, e.Modifiers...))

	case OpAddParameter:
		if !isExecutable(el) {
			return skip("parameters can only be added to methods and constructors")
		}
		if el.Parameter(e.Name) != nil {
			return skip(fmt.Sprintf("parameter %s already exists", e.Name))
		}
		p := f.Parameter(e.Type, e.Name, e.Varargs)
		for _, m := range e.Modifiers {
			p.Attach(model.RoleModifier, f.Modifier(m))
		}
		el.Insert(model.RoleParameter, index(e.Index, el.Len(model.RoleParameter)), p)

	case OpAddStatement:
		body, err := bodyOf(el)
		if err != nil {
			return err
		}
		body.Insert(model.RoleStatement, index(e.Index, body.Len(model.RoleStatement)), f.Text(model.KindStatement, e.Text))

	case OpRemoveStatement:
		body, err := bodyOf(el)
		if err != nil {
			return err
		}
		stmts := body.Children(model.RoleStatement)
		i := len(stmts) - 1
		if e.Index != nil {
			i = *e.Index
		}
		if i < 0 || i >= len(stmts) {
			return skip(fmt.Sprintf("no statement %d", i))
		}
		body.Remove(stmts[i])

	default:
		return fmt.Errorf("edit: unknown op %q", e.Op)
	}
	return nil
}

func findModifier(el *model.Element, text string) *model.Element {
	mods := el.Children(model.RoleModifier)
	if i := slices.IndexFunc(mods, func(m *model.Element) bool { return m.Value() == text }); i >= 0 {
		return mods[i]
	}
	return nil
}

func isExecutable(el *model.Element) bool {
	return el.Kind() == model.KindMethod || el.Kind() == model.KindConstructor
}

func bodyOf(el *model.Element) (*model.Element, error) {
	if !isExecutable(el) {
		return nil, skip("statements live in method and constructor bodies")
	}
	body := el.Child(model.RoleBody)
	if body == nil {
		return nil, skip("target has no body")
	}
	return body, nil
}

// index maps an optional script index onto [0, n]; nil and out of range
// values append.
func index(i *int, n int) int {
	if i == nil || *i < 0 || *i > n {
		return n
	}
	return *i
}
