package model

import (
	"fmt"
	"slices"

	"sniper/internal/source"
)

// ElementID identifies an element within its Factory. Zero is never assigned.
type ElementID uint32

// NoElement is the zero ElementID.
const NoElement ElementID = 0

// Position records where an element came from. Elements created by edits have
// the zero Position.
type Position struct {
	Span source.Span
	// Modifiers ends where the modifier region (including a leading doc
	// comment) of a declaration ends; it starts at Span.Start.
	Modifiers source.Span
	Name      source.Span
	Body      source.Span
}

// Valid reports whether the element has source text.
func (p Position) Valid() bool {
	return p.Span.End > p.Span.Start
}

// IsDeclaration reports whether sub-regions were recorded.
func (p Position) IsDeclaration() bool {
	return p.Name.End > p.Name.Start
}

// Element is a node of the mutable program model.
type Element struct {
	id      ElementID
	kind    Kind
	name    string
	value   string
	varargs bool
	parent  *Element
	role    Role
	pos     Position
	slots   [roleCount][]*Element
	factory *Factory
}

func (e *Element) ID() ElementID { return e.id }
func (e *Element) Kind() Kind { return e.kind }
func (e *Element) Name() string { return e.name }
func (e *Element) Value() string { return e.value }
func (e *Element) Varargs() bool { return e.varargs }
func (e *Element) Parent() *Element { return e.parent }
func (e *Element) Role() Role { return e.role }
func (e *Element) Position() Position { return e.pos }
func (e *Element) Factory() *Factory { return e.factory }
func (e *Element) SetPosition(p Position) { e.pos = p }

func (e *Element) String() string {
	switch {
	case e.name != "":
		return fmt.Sprintf("%s %s#%d", e.kind, e.name, e.id)
	case e.value != "":
		return fmt.Sprintf("%s %q#%d", e.kind, e.value, e.id)
	default:
		return fmt.Sprintf("%s#%d", e.kind, e.id)
	}
}

// Child returns the single child held in role, or nil.
func (e *Element) Child(role Role) *Element {
	if len(e.slots[role]) == 0 {
		return nil
	}
	return e.slots[role][0]
}

// Children returns a copy of the children held in role, in model order.
func (e *Element) Children(role Role) []*Element {
	return slices.Clone(e.slots[role])
}

// Len reports how many children role holds.
func (e *Element) Len(role Role) int {
	return len(e.slots[role])
}

// Index returns the position of child within its role, or -1.
func (e *Element) Index(child *Element) int {
	return slices.Index(e.slots[child.role], child)
}

// SetName renames the element.
func (e *Element) SetName(name string) {
	if e.name == name {
		return
	}
	e.name = name
	e.notify(e, RoleName)
}

// SetValue replaces the text of a leaf element.
func (e *Element) SetValue(value string) {
	if e.value == value {
		return
	}
	e.value = value
	e.notify(e, RoleNone)
}

// SetVarargs toggles the variable-arity marker of a parameter.
func (e *Element) SetVarargs(v bool) {
	if e.varargs == v {
		return
	}
	e.varargs = v
	e.notify(e, RoleType)
}

// Set replaces the single child of role; a nil child clears it.
func (e *Element) Set(role Role, child *Element) {
	if role.IsCollection() {
		panic(fmt.Errorf("model: Set on collection role %s", role))
	}
	old := e.Child(role)
	if old == child {
		return
	}
	if old != nil {
		old.parent, old.role = nil, RoleNone
	}
	e.slots[role] = nil
	if child != nil {
		child.detach()
		child.parent, child.role = e, role
		e.slots[role] = []*Element{child}
	}
	e.notify(e, role)
}

// Add appends child to a collection role.
func (e *Element) Add(role Role, child *Element) {
	e.Insert(role, len(e.slots[role]), child)
}

// Insert places child at index i of a collection role.
func (e *Element) Insert(role Role, i int, child *Element) {
	if !role.IsCollection() {
		panic(fmt.Errorf("model: Insert on single role %s", role))
	}
	child.detach()
	if i < 0 || i > len(e.slots[role]) {
		i = len(e.slots[role])
	}
	child.parent, child.role = e, role
	e.slots[role] = slices.Insert(e.slots[role], i, child)
	e.notify(e, role)
}

// Remove detaches child from e. It reports whether child was found.
func (e *Element) Remove(child *Element) bool {
	if child == nil || child.parent != e {
		return false
	}
	role := child.role
	i := slices.Index(e.slots[role], child)
	if i < 0 {
		return false
	}
	e.slots[role] = slices.Delete(e.slots[role], i, i+1)
	child.parent, child.role = nil, RoleNone
	e.notify(e, role)
	return true
}

// Delete removes the element from its parent.
func (e *Element) Delete() bool {
	if e.parent == nil {
		return false
	}
	return e.parent.Remove(e)
}

func (e *Element) detach() {
	if e.parent != nil {
		e.parent.Remove(e)
	}
}

func (e *Element) notify(target *Element, role Role) {
	if e.factory != nil && e.factory.listener != nil {
		e.factory.listener.OnChange(target, role)
	}
}

// Walk visits e and its descendants pre-order, roles in declaration order.
// Returning false from fn skips the children of that element.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for r := range e.slots {
		for _, c := range e.slots[r] {
			c.Walk(fn)
		}
	}
}

// Roles lists the roles that currently hold children.
func (e *Element) Roles() []Role {
	var out []Role
	for r := range e.slots {
		if len(e.slots[r]) > 0 {
			out = append(out, Role(r)) // #nosec G115 -- bounded by roleCount
		}
	}
	return out
}

// Member returns the first type member with the given name.
func (e *Element) Member(name string) *Element {
	for _, m := range e.slots[RoleTypeMember] {
		if m.name == name {
			return m
		}
	}
	return nil
}

// Parameter returns the parameter with the given name.
func (e *Element) Parameter(name string) *Element {
	for _, p := range e.slots[RoleParameter] {
		if p.name == name {
			return p
		}
	}
	return nil
}

// DeclaredType returns the top-level type with the given name.
func (e *Element) DeclaredType(name string) *Element {
	for _, t := range e.slots[RoleDeclaredType] {
		if t.name == name {
			return t
		}
	}
	return nil
}
