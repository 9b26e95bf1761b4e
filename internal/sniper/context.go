package sniper

import (
	"slices"

	"sniper/internal/fragment"
	"sniper/internal/model"
	"sniper/internal/token"
)

type strategy uint8

const (
	strategyPretty strategy = iota
	strategyList
	strategySet
)

func (s strategy) String() string {
	switch s {
	case strategyList:
		return "list"
	case strategySet:
		return "set"
	default:
		return "pretty"
	}
}

// printContext matches the parts printed for one fragment against its
// original entries.
type printContext struct {
	strategy strategy
	owner    *model.Element
	role     model.Role
	entries  []fragment.Entry
	consumed []bool
	// cursor is the highest consumed entry, -1 before the first match.
	cursor int
	// pending holds whitespace and list separators not yet written; whether
	// they are needed depends on what is printed next.
	pending []token.Op

	collection bool
	// demoted sets print in printer order with default spacing.
	demoted bool

	printed    bool
	lastOrigin bool
}

func newPrettyContext() *printContext {
	return &printContext{strategy: strategyPretty, cursor: -1}
}

// newElementContext matches the children of one element fragment.
func newElementContext(owner *model.Element, entries []fragment.Entry) *printContext {
	return &printContext{
		strategy: strategyList,
		owner:    owner,
		entries:  entries,
		consumed: make([]bool, len(entries)),
		cursor:   -1,
	}
}

// newCollectionContext matches the items of a collection entry.
func newCollectionContext(owner *model.Element, role model.Role, e fragment.Entry, items []*model.Element) *printContext {
	c := newElementContext(owner, e.Items)
	c.role = role
	c.collection = true
	if role.IsSet() {
		c.strategy = strategySet
		c.demoted = !c.inOriginalOrder(items)
	}
	return c
}

// inOriginalOrder reports whether every item has an entry and the entries
// are in increasing order.
func (c *printContext) inOriginalOrder(items []*model.Element) bool {
	last := -1
	for _, it := range items {
		idx := c.indexOf(it.ID(), 0)
		if idx <= last {
			return false
		}
		last = idx
	}
	return true
}

func (c *printContext) indexOf(id model.ElementID, from int) int {
	for i := from; i < len(c.entries); i++ {
		e := c.entries[i]
		if e.Kind == fragment.EntryElement && e.Element == id && !c.consumed[i] {
			return i
		}
	}
	return -1
}

// find returns the entry ev addresses, or -1.
func (c *printContext) find(ev Event) int {
	switch ev.Kind {
	case EventAttribute:
		return c.findRole(fragment.EntryName, ev.Role)
	case EventCollection:
		return c.findRole(fragment.EntryCollection, ev.Role)
	case EventElement:
		if !c.collection {
			return c.findRole(fragment.EntryElement, ev.Role)
		}
		from := c.cursor + 1
		if c.strategy == strategySet {
			from = 0
		}
		return c.indexOf(ev.Element.ID(), from)
	case EventToken:
		return c.findToken(ev.Op)
	}
	return -1
}

func (c *printContext) findRole(kind fragment.EntryKind, role model.Role) int {
	for i := c.cursor + 1; i < len(c.entries); i++ {
		e := c.entries[i]
		if e.Kind == kind && e.Role == role && !c.consumed[i] {
			return i
		}
	}
	return -1
}

// findToken looks for the next identifier entry for identifiers and for the
// same text otherwise.
func (c *printContext) findToken(op token.Op) int {
	for i := c.cursor + 1; i < len(c.entries); i++ {
		e := c.entries[i]
		if e.Kind != fragment.EntryToken || e.IsSpace() || c.consumed[i] {
			continue
		}
		if op.Kind == token.Identifier {
			if e.Token == token.Identifier {
				return i
			}
			continue
		}
		if e.Text == op.Text {
			return i
		}
	}
	return -1
}

func (c *printContext) consume(i int) {
	c.consumed[i] = true
	if i > c.cursor {
		c.cursor = i
	}
}

// lead is the number of entries opening a collection with whitespace.
func (c *printContext) lead() int {
	n := 0
	for n < len(c.entries) && c.entries[n].IsSpace() {
		n++
	}
	return n
}

// spaceRun returns the start of the run of space entries ending at idx,
// not going below from.
func (c *printContext) spaceRun(from, idx int) int {
	start := idx
	for start > from && c.entries[start-1].IsSpace() {
		start--
	}
	return start
}

// trailer returns the end of the comments that share a line with the entry
// before from, or from when there are none.
func (c *printContext) trailer(from int) int {
	end := from
	for i := from; i < len(c.entries); i++ {
		e := c.entries[i]
		if !e.IsSpace() || e.HasNewline() {
			break
		}
		if e.Token == token.Comment {
			end = i + 1
		}
	}
	return end
}

// hasNewline reports whether entries [from, to) break the line.
func (c *printContext) hasNewline(from, to int) bool {
	return slices.ContainsFunc(c.entries[from:to], fragment.Entry.HasNewline)
}

// pendingNewline reports whether the queued writes break the line.
func (c *printContext) pendingNewline() bool {
	return slices.ContainsFunc(c.pending, func(op token.Op) bool {
		return op.Kind == token.Newline
	})
}
