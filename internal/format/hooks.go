package format

import (
	"sniper/internal/model"
)

// TokenWriter receives the printer's writes, one call per token.
type TokenWriter interface {
	WriteKeyword(s string)
	WriteIdentifier(s string)
	WriteLiteral(s string)
	WriteOperator(s string)
	WriteSeparator(s string)
	WriteCodeSnippet(s string)
	WriteComment(s string)
	WriteSpace()
	WriteNewline()
	IncTab()
	DecTab()
}

// Hooks is told about every role-tagged part before it is printed. Each hook
// must call print exactly once, or not at all when it substitutes text of
// its own; the part is finished when the hook returns.
type Hooks interface {
	// Element announces child, held by parent under role.
	Element(role model.Role, parent, child *model.Element, print func())
	// Attribute announces a scalar attribute of owner, such as its name.
	Attribute(role model.Role, owner *model.Element, print func())
	// Collection announces a non-empty collection role of owner.
	Collection(role model.Role, owner *model.Element, items []*model.Element, print func())
}

// NopHooks prints everything as is.
type NopHooks struct{}

func (NopHooks) Element(_ model.Role, _, _ *model.Element, print func()) { print() }

func (NopHooks) Attribute(_ model.Role, _ *model.Element, print func()) { print() }

func (NopHooks) Collection(_ model.Role, _ *model.Element, _ []*model.Element, print func()) {
	print()
}
