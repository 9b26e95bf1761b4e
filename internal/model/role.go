package model

// Role names the slot a child occupies in its parent.
type Role uint8

const (
	RoleNone Role = iota
	RoleName
	RolePackage
	RoleImport
	RoleDeclaredType
	RoleComment
	RoleModifier
	RoleTypeParameters
	RoleSuperclass
	RoleInterface
	RoleTypeMember
	RoleType
	RoleParameter
	RoleThrown
	RoleBody
	RoleStatement
	RoleDefaultExpression

	roleCount
)

var roleNames = [...]string{
	RoleNone:              "none",
	RoleName:              "name",
	RolePackage:           "package",
	RoleImport:            "import",
	RoleDeclaredType:      "declared-type",
	RoleComment:           "comment",
	RoleModifier:          "modifier",
	RoleTypeParameters:    "type-parameters",
	RoleSuperclass:        "superclass",
	RoleInterface:         "interface",
	RoleTypeMember:        "type-member",
	RoleType:              "type",
	RoleParameter:         "parameter",
	RoleThrown:            "thrown",
	RoleBody:              "body",
	RoleStatement:         "statement",
	RoleDefaultExpression: "default-expression",
}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "role(?)"
}

// IsCollection reports roles that hold an ordered or unordered list of children.
func (r Role) IsCollection() bool {
	switch r {
	case RoleImport, RoleDeclaredType, RoleModifier, RoleInterface,
		RoleTypeMember, RoleParameter, RoleThrown, RoleStatement:
		return true
	default:
		return false
	}
}

// IsSet reports collection roles whose printed order is decided by the
// printer rather than by the source.
func (r Role) IsSet() bool {
	switch r {
	case RoleModifier, RoleInterface, RoleThrown:
		return true
	default:
		return false
	}
}

// ParseRole is the inverse of Role.String.
func ParseRole(s string) (Role, bool) {
	for r, name := range roleNames {
		if name == s {
			return Role(r), true // #nosec G115 -- bounded by roleCount
		}
	}
	return RoleNone, false
}

// RoleSet is a bitset of roles.
type RoleSet uint32

func (s RoleSet) Has(r Role) bool {
	return s&(1<<r) != 0
}

func (s RoleSet) With(r Role) RoleSet {
	return s | 1<<r
}

func (s RoleSet) Empty() bool {
	return s == 0
}

// Roles lists the members in role order.
func (s RoleSet) Roles() []Role {
	var out []Role
	for r := RoleNone; r < roleCount; r++ {
		if s.Has(r) {
			out = append(out, r)
		}
	}
	return out
}
