// Package model is the mutable program-element tree the re-printer works on.
// Elements are created by a Factory; every mutation after construction is
// reported to the factory's Listener as (element, role).
package model

import (
	"fmt"

	"fortio.org/safecast"
)

// Listener receives every model mutation. role is the role of element that
// changed; RoleNone means the element's own value.
type Listener interface {
	OnChange(element *Element, role Role)
}

// Factory allocates elements and dispatches change notifications.
type Factory struct {
	count    int
	listener Listener
}

func NewFactory() *Factory {
	return &Factory{}
}

// SetListener installs l; pass nil to stop reporting. Front-ends install the
// listener only after the model is complete.
func (f *Factory) SetListener(l Listener) {
	f.listener = l
}

// New creates a detached element.
func (f *Factory) New(kind Kind) *Element {
	f.count++
	id, err := safecast.Conv[uint32](f.count)
	if err != nil {
		panic(fmt.Errorf("model: element id overflow: %w", err))
	}
	return &Element{id: ElementID(id), kind: kind, factory: f}
}

// Named creates a named declaration element.
func (f *Factory) Named(kind Kind, name string) *Element {
	e := f.New(kind)
	e.name = name
	return e
}

// Text creates a leaf element printed from value.
func (f *Factory) Text(kind Kind, value string) *Element {
	e := f.New(kind)
	e.value = value
	return e
}

// Parameter creates a parameter of the given type.
func (f *Factory) Parameter(typ, name string, varargs bool) *Element {
	p := f.Named(KindParameter, name)
	p.varargs = varargs
	p.attach(RoleType, f.Text(KindTypeRef, typ))
	return p
}

// Field creates a field with optional initializer and modifiers.
func (f *Factory) Field(typ, name, init string, modifiers ...string) *Element {
	fd := f.Named(KindField, name)
	for _, m := range modifiers {
		fd.attach(RoleModifier, f.Modifier(m))
	}
	fd.attach(RoleType, f.Text(KindTypeRef, typ))
	if init != "" {
		fd.attach(RoleDefaultExpression, f.Text(KindExpression, init))
	}
	return fd
}

// Modifier creates a modifier keyword or, for text starting with '@', an annotation.
func (f *Factory) Modifier(text string) *Element {
	if len(text) > 0 && text[0] == '@' {
		return f.Text(KindAnnotation, text)
	}
	return f.Text(KindModifier, text)
}

// Count reports how many elements were allocated.
func (f *Factory) Count() int {
	return f.count
}

// attach links child without notifying; used while building detached
// elements and by front-ends.
func (e *Element) attach(role Role, child *Element) {
	child.parent, child.role = e, role
	e.slots[role] = append(e.slots[role], child)
}

// Attach links child under role without reporting a change. It is meant for
// front-ends building the initial model.
func (e *Element) Attach(role Role, child *Element) {
	e.attach(role, child)
}
