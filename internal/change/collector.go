// Package change records which parts of the model were edited and answers,
// per (element, role), whether the original source text is still valid.
package change

import (
	"sniper/internal/model"
)

// Collector listens to model mutations. A change of (element, role) is
// recorded on element and on every ancestor under the role through which the
// changed element is reachable.
type Collector struct {
	touched map[model.ElementID]model.RoleSet
	direct  map[model.ElementID]model.RoleSet
	count   int
}

func NewCollector() *Collector {
	return &Collector{
		touched: make(map[model.ElementID]model.RoleSet),
		direct:  make(map[model.ElementID]model.RoleSet),
	}
}

// Attach installs c as the listener of f and returns c.
func (c *Collector) Attach(f *model.Factory) *Collector {
	f.SetListener(c)
	return c
}

// OnChange implements model.Listener.
func (c *Collector) OnChange(el *model.Element, role model.Role) {
	c.count++
	c.direct[el.ID()] = c.direct[el.ID()].With(role)
	for e, r := el, role; e != nil; e, r = e.Parent(), e.Role() {
		c.touched[e.ID()] = c.touched[e.ID()].With(r)
	}
}

// ChangedRoles returns every role of el touched directly or below it.
func (c *Collector) ChangedRoles(el *model.Element) model.RoleSet {
	return c.touched[el.ID()]
}

// DirectRoles returns the roles mutated on el itself.
func (c *Collector) DirectRoles(el *model.Element) model.RoleSet {
	return c.direct[el.ID()]
}

// WasRoleTouched reports whether (el, role) changed, directly or below.
func (c *Collector) WasRoleTouched(el *model.Element, role model.Role) bool {
	return c.touched[el.ID()].Has(role)
}

// Changes reports how many notifications were received.
func (c *Collector) Changes() int {
	return c.count
}

// Reset forgets everything recorded so far.
func (c *Collector) Reset() {
	clear(c.touched)
	clear(c.direct)
	c.count = 0
}
