package format

import (
	"slices"

	"sniper/internal/model"
	"sniper/internal/token"
)

// Printer turns elements into token writes.
type Printer struct {
	w     TokenWriter
	hooks Hooks
}

// NewPrinter creates a printer; nil hooks print everything.
func NewPrinter(w TokenWriter, hooks Hooks) *Printer {
	if hooks == nil {
		hooks = NopHooks{}
	}
	return &Printer{w: w, hooks: hooks}
}

// Source pretty prints el with default layout.
func Source(el *model.Element, opt Options) []byte {
	w := NewWriter(opt, 256)
	NewPrinter(w, nil).Print(el)
	return w.Bytes()
}

// Print writes the content of el. It does not announce el itself.
func (p *Printer) Print(el *model.Element) {
	switch el.Kind() {
	case model.KindCompilationUnit:
		p.unit(el)
	case model.KindClass, model.KindInterface:
		p.typeDecl(el)
	case model.KindField:
		p.field(el)
	case model.KindMethod, model.KindConstructor:
		p.executable(el)
	case model.KindParameter:
		p.parameter(el)
	case model.KindBlock:
		p.block(el)
	case model.KindModifier:
		p.w.WriteKeyword(el.Value())
	case model.KindComment:
		p.w.WriteComment(el.Value())
	default:
		p.w.WriteCodeSnippet(el.Value())
	}
}

func (p *Printer) child(role model.Role, parent, child *model.Element) {
	p.hooks.Element(role, parent, child, func() { p.Print(child) })
}

func (p *Printer) name(owner *model.Element) {
	p.hooks.Attribute(model.RoleName, owner, func() { p.w.WriteIdentifier(owner.Name()) })
}

// list announces a collection; empty collections print nothing and are not
// announced.
func (p *Printer) list(role model.Role, owner *model.Element, items []*model.Element, print func()) {
	if len(items) == 0 {
		return
	}
	p.hooks.Collection(role, owner, items, print)
}

// commaList prints items separated by ", ".
func (p *Printer) commaList(role model.Role, owner *model.Element) {
	items := owner.Children(role)
	p.list(role, owner, items, func() {
		for i, it := range items {
			if i > 0 {
				p.w.WriteSeparator(",")
				p.w.WriteSpace()
			}
			p.child(role, owner, it)
		}
	})
}

func (p *Printer) comment(el *model.Element) {
	if c := el.Child(model.RoleComment); c != nil {
		p.child(model.RoleComment, el, c)
		p.w.WriteNewline()
	}
}

func (p *Printer) modifiers(el *model.Element) {
	mods := SortModifiers(el.Children(model.RoleModifier))
	p.list(model.RoleModifier, el, mods, func() {
		for _, m := range mods {
			p.child(model.RoleModifier, el, m)
			p.w.WriteSpace()
		}
	})
}

// SortModifiers returns modifiers in printing order: annotations first as
// written, then keywords in canonical Java order.
func SortModifiers(mods []*model.Element) []*model.Element {
	out := slices.Clone(mods)
	slices.SortStableFunc(out, func(a, b *model.Element) int {
		return modifierRank(a) - modifierRank(b)
	})
	return out
}

func modifierRank(m *model.Element) int {
	if m.Kind() == model.KindAnnotation {
		return 0
	}
	if r := token.ModifierRank(m.Value()); r > 0 {
		return r
	}
	return 100
}

func (p *Printer) unit(cu *model.Element) {
	if pkg := cu.Child(model.RolePackage); pkg != nil {
		p.child(model.RolePackage, cu, pkg)
		p.w.WriteNewline()
		p.w.WriteNewline()
	}
	imports := cu.Children(model.RoleImport)
	if len(imports) > 0 {
		p.list(model.RoleImport, cu, imports, func() {
			for i, imp := range imports {
				if i > 0 {
					p.w.WriteNewline()
				}
				p.child(model.RoleImport, cu, imp)
			}
		})
		p.w.WriteNewline()
		p.w.WriteNewline()
	}
	types := cu.Children(model.RoleDeclaredType)
	p.list(model.RoleDeclaredType, cu, types, func() {
		for i, t := range types {
			if i > 0 {
				p.w.WriteNewline()
				p.w.WriteNewline()
			}
			p.child(model.RoleDeclaredType, cu, t)
		}
	})
	p.w.WriteNewline()
}

func (p *Printer) typeDecl(el *model.Element) {
	p.comment(el)
	p.modifiers(el)
	isInterface := el.Kind() == model.KindInterface
	if isInterface {
		p.w.WriteKeyword("interface")
	} else {
		p.w.WriteKeyword("class")
	}
	p.w.WriteSpace()
	p.name(el)
	if tp := el.Child(model.RoleTypeParameters); tp != nil {
		p.child(model.RoleTypeParameters, el, tp)
	}
	if sc := el.Child(model.RoleSuperclass); sc != nil {
		p.w.WriteSpace()
		p.w.WriteKeyword("extends")
		p.w.WriteSpace()
		p.child(model.RoleSuperclass, el, sc)
	}
	if el.Len(model.RoleInterface) > 0 {
		p.w.WriteSpace()
		if isInterface {
			p.w.WriteKeyword("extends")
		} else {
			p.w.WriteKeyword("implements")
		}
		p.w.WriteSpace()
		p.commaList(model.RoleInterface, el)
	}
	p.w.WriteSpace()
	p.w.WriteSeparator("{")
	members := el.Children(model.RoleTypeMember)
	if len(members) > 0 {
		p.w.IncTab()
		p.list(model.RoleTypeMember, el, members, func() {
			for i, m := range members {
				if i > 0 {
					p.w.WriteNewline()
				}
				p.w.WriteNewline()
				p.child(model.RoleTypeMember, el, m)
			}
		})
		p.w.DecTab()
		p.w.WriteNewline()
	}
	p.w.WriteSeparator("}")
}

func (p *Printer) field(el *model.Element) {
	p.comment(el)
	p.modifiers(el)
	if typ := el.Child(model.RoleType); typ != nil {
		p.child(model.RoleType, el, typ)
		p.w.WriteSpace()
	}
	p.name(el)
	if init := el.Child(model.RoleDefaultExpression); init != nil {
		p.w.WriteSpace()
		p.w.WriteOperator("=")
		p.w.WriteSpace()
		p.child(model.RoleDefaultExpression, el, init)
	}
	p.w.WriteSeparator(";")
}

func (p *Printer) executable(el *model.Element) {
	p.comment(el)
	p.modifiers(el)
	if tp := el.Child(model.RoleTypeParameters); tp != nil {
		p.child(model.RoleTypeParameters, el, tp)
		p.w.WriteSpace()
	}
	if typ := el.Child(model.RoleType); typ != nil && el.Kind() == model.KindMethod {
		p.child(model.RoleType, el, typ)
		p.w.WriteSpace()
	}
	p.name(el)
	p.w.WriteSeparator("(")
	p.commaList(model.RoleParameter, el)
	p.w.WriteSeparator(")")
	if el.Len(model.RoleThrown) > 0 {
		p.w.WriteSpace()
		p.w.WriteKeyword("throws")
		p.w.WriteSpace()
		p.commaList(model.RoleThrown, el)
	}
	if body := el.Child(model.RoleBody); body != nil {
		p.w.WriteSpace()
		p.child(model.RoleBody, el, body)
		return
	}
	p.w.WriteSeparator(";")
}

func (p *Printer) parameter(el *model.Element) {
	p.modifiers(el)
	if typ := el.Child(model.RoleType); typ != nil {
		p.child(model.RoleType, el, typ)
	}
	if el.Varargs() {
		p.w.WriteOperator("...")
	}
	p.w.WriteSpace()
	p.name(el)
}

func (p *Printer) block(el *model.Element) {
	p.w.WriteSeparator("{")
	stmts := el.Children(model.RoleStatement)
	if len(stmts) > 0 {
		p.w.IncTab()
		p.list(model.RoleStatement, el, stmts, func() {
			for _, s := range stmts {
				p.w.WriteNewline()
				p.child(model.RoleStatement, el, s)
			}
		})
		p.w.DecTab()
		p.w.WriteNewline()
	}
	p.w.WriteSeparator("}")
}
