package change

import (
	"sniper/internal/model"
)

// Result classifies whether original text may be reused.
type Result uint8

const (
	// Unmodified means the original text of (element, role) is exact.
	Unmodified Result = iota
	// Modified means the role must be printed again.
	Modified
	// Unknown is returned for touched collections; which item changed is
	// decided item by item with IsElementModified.
	Unknown
)

func (r Result) String() string {
	switch r {
	case Unmodified:
		return "unmodified"
	case Modified:
		return "modified"
	case Unknown:
		return "unknown"
	default:
		return "result(?)"
	}
}

// Source is the narrow view of the change collector the resolver needs.
type Source interface {
	ChangedRoles(el *model.Element) model.RoleSet
}

// Resolver answers reuse questions against a Source.
type Resolver struct {
	src Source
}

func NewResolver(src Source) *Resolver {
	return &Resolver{src: src}
}

// IsRoleModified classifies (el, role).
func (r *Resolver) IsRoleModified(el *model.Element, role model.Role) Result {
	if el == nil || !r.src.ChangedRoles(el).Has(role) {
		return Unmodified
	}
	if role.IsCollection() {
		return Unknown
	}
	return Modified
}

// IsElementModified reports whether anything in el or below it changed.
func (r *Resolver) IsElementModified(el *model.Element) bool {
	return el != nil && !r.src.ChangedRoles(el).Empty()
}

// ModifiedRoles lists the roles of el that changed.
func (r *Resolver) ModifiedRoles(el *model.Element) []model.Role {
	return r.src.ChangedRoles(el).Roles()
}
