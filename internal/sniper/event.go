package sniper

import (
	"fmt"

	"sniper/internal/model"
	"sniper/internal/token"
)

// EventKind is the closed set of things the printer reports.
type EventKind uint8

const (
	EventInvalid EventKind = iota
	// EventToken is a single write; Op holds it.
	EventToken
	// EventElement announces Element, held by Owner under Role.
	EventElement
	// EventAttribute announces the scalar Role of Owner (its name).
	EventAttribute
	// EventCollection announces the non-empty collection Role of Owner.
	EventCollection
)

func (k EventKind) String() string {
	switch k {
	case EventToken:
		return "token"
	case EventElement:
		return "element"
	case EventAttribute:
		return "attribute"
	case EventCollection:
		return "collection"
	default:
		return "invalid"
	}
}

// Event is one print event.
type Event struct {
	Kind    EventKind
	Op      token.Op
	Role    model.Role
	Owner   *model.Element
	Element *model.Element
	Items   []*model.Element
}

func (ev Event) String() string {
	switch ev.Kind {
	case EventToken:
		return ev.Op.String()
	case EventElement:
		return fmt.Sprintf("%s %s", ev.Role, ev.Element)
	case EventAttribute, EventCollection:
		return fmt.Sprintf("%s of %s", ev.Role, ev.Owner)
	default:
		return ev.Kind.String()
	}
}

// check rejects events no context can classify.
func (ev Event) check() {
	switch ev.Kind {
	case EventToken:
		switch ev.Op.Kind {
		case token.Invalid, token.EOF:
			invariant("unclassifiable token %s", ev.Op)
		}
	case EventElement:
		if ev.Element == nil || ev.Owner == nil || ev.Role == model.RoleNone {
			invariant("element event without element, owner or role: %s", ev)
		}
	case EventAttribute:
		if ev.Owner == nil || ev.Role != model.RoleName {
			invariant("unsupported attribute event: %s", ev)
		}
	case EventCollection:
		if ev.Owner == nil || !ev.Role.IsCollection() || len(ev.Items) == 0 {
			invariant("bad collection event: %s", ev)
		}
	default:
		invariant("unknown event kind %d", ev.Kind)
	}
}
