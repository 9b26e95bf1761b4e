package javafront

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"sniper/internal/model"
	"sniper/internal/source"
)

type builder struct {
	file *source.File
	src  []byte
	f    *model.Factory
}

func (b *builder) span(start, end uint32) source.Span {
	return source.Span{File: b.file.ID, Start: start, End: end}
}

func (b *builder) nodeSpan(n *sitter.Node) source.Span {
	return b.span(n.StartByte(), n.EndByte())
}

func (b *builder) text(kind model.Kind, n *sitter.Node) *model.Element {
	el := b.f.Text(kind, n.Content(b.src))
	el.SetPosition(model.Position{Span: b.nodeSpan(n)})
	return el
}

func isComment(n *sitter.Node) bool {
	switch n.Type() {
	case "comment", "line_comment", "block_comment":
		return true
	}
	return false
}

// namedChildren returns the named children of n that are not comments.
func namedChildren(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c != nil && !isComment(c) {
			out = append(out, c)
		}
	}
	return out
}

func childOfType(n *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c != nil && c.Type() == typ {
			return c
		}
	}
	return nil
}

func (b *builder) unit(root *sitter.Node) *model.Element {
	cu := b.f.New(model.KindCompilationUnit)
	cu.SetPosition(model.Position{Span: b.file.Span()})
	for _, n := range namedChildren(root) {
		switch n.Type() {
		case "package_declaration":
			cu.Attach(model.RolePackage, b.text(model.KindPackage, n))
		case "import_declaration":
			cu.Attach(model.RoleImport, b.text(model.KindImport, n))
		default:
			cu.Attach(model.RoleDeclaredType, b.typeDecl(n))
		}
	}
	return cu
}

// docComment returns the /** */ comment directly above n, if any.
func (b *builder) docComment(n *sitter.Node) *sitter.Node {
	prev := n.PrevSibling()
	if prev == nil || !isComment(prev) || !strings.HasPrefix(prev.Content(b.src), "/**") {
		return nil
	}
	if strings.TrimSpace(string(b.src[prev.EndByte():n.StartByte()])) != "" {
		return nil
	}
	return prev
}

// declaration creates a named element for n, attaches its doc comment and
// modifiers and records its positions.
func (b *builder) declaration(kind model.Kind, n, name *sitter.Node) *model.Element {
	el := b.f.Named(kind, name.Content(b.src))
	start, modsEnd := n.StartByte(), n.StartByte()
	if doc := b.docComment(n); doc != nil {
		start, modsEnd = doc.StartByte(), doc.EndByte()
		el.Attach(model.RoleComment, b.text(model.KindComment, doc))
	}
	if mods := childOfType(n, "modifiers"); mods != nil {
		modsEnd = mods.EndByte()
		b.modifiers(el, mods)
	}
	el.SetPosition(model.Position{
		Span:      b.span(start, n.EndByte()),
		Modifiers: b.span(start, modsEnd),
		Name:      b.nodeSpan(name),
	})
	return el
}

func (b *builder) withBody(el *model.Element, body *sitter.Node) {
	pos := el.Position()
	pos.Body = b.nodeSpan(body)
	el.SetPosition(pos)
}

func (b *builder) modifiers(el *model.Element, mods *sitter.Node) {
	for i := 0; i < int(mods.ChildCount()); i++ {
		c := mods.Child(i)
		if c == nil || isComment(c) {
			continue
		}
		m := b.f.Modifier(c.Content(b.src))
		m.SetPosition(model.Position{Span: b.nodeSpan(c)})
		el.Attach(model.RoleModifier, m)
	}
}

func (b *builder) snippet(n *sitter.Node) *model.Element {
	return b.text(model.KindSnippet, n)
}

func (b *builder) typeDecl(n *sitter.Node) *model.Element {
	name := n.ChildByFieldName("name")
	body := n.ChildByFieldName("body")
	var kind model.Kind
	switch n.Type() {
	case "class_declaration":
		kind = model.KindClass
	case "interface_declaration":
		kind = model.KindInterface
	default:
		return b.snippet(n)
	}
	if name == nil || body == nil || n.ChildByFieldName("permits") != nil || childOfType(n, "permits") != nil {
		return b.snippet(n)
	}

	el := b.declaration(kind, n, name)
	b.withBody(el, body)
	if tp := n.ChildByFieldName("type_parameters"); tp != nil {
		el.Attach(model.RoleTypeParameters, b.text(model.KindTypeParameters, tp))
	}
	if sc := n.ChildByFieldName("superclass"); sc != nil {
		if types := namedChildren(sc); len(types) == 1 {
			el.Attach(model.RoleSuperclass, b.text(model.KindTypeRef, types[0]))
		}
	}
	ifaces := n.ChildByFieldName("interfaces")
	if ifaces == nil {
		ifaces = childOfType(n, "extends_interfaces")
	}
	if ifaces != nil {
		if list := childOfType(ifaces, "type_list"); list != nil {
			for _, t := range namedChildren(list) {
				el.Attach(model.RoleInterface, b.text(model.KindTypeRef, t))
			}
		}
	}
	for _, m := range namedChildren(body) {
		el.Attach(model.RoleTypeMember, b.member(m))
	}
	return el
}

func (b *builder) member(n *sitter.Node) *model.Element {
	switch n.Type() {
	case "field_declaration", "constant_declaration":
		return b.field(n)
	case "method_declaration", "constructor_declaration":
		return b.executable(n)
	case "class_declaration", "interface_declaration":
		return b.typeDecl(n)
	default:
		return b.snippet(n)
	}
}

func (b *builder) field(n *sitter.Node) *model.Element {
	typ := n.ChildByFieldName("type")
	var decls []*sitter.Node
	for _, c := range namedChildren(n) {
		if c.Type() == "variable_declarator" {
			decls = append(decls, c)
		}
	}
	if typ == nil || len(decls) != 1 || decls[0].ChildByFieldName("dimensions") != nil {
		return b.snippet(n)
	}
	name := decls[0].ChildByFieldName("name")
	if name == nil {
		return b.snippet(n)
	}
	el := b.declaration(model.KindField, n, name)
	el.Attach(model.RoleType, b.text(model.KindTypeRef, typ))
	if v := decls[0].ChildByFieldName("value"); v != nil {
		el.Attach(model.RoleDefaultExpression, b.text(model.KindExpression, v))
	}
	return el
}

func (b *builder) executable(n *sitter.Node) *model.Element {
	name := n.ChildByFieldName("name")
	params := n.ChildByFieldName("parameters")
	if name == nil || params == nil || n.ChildByFieldName("dimensions") != nil || childOfType(params, "receiver_parameter") != nil {
		return b.snippet(n)
	}
	kind := model.KindMethod
	if n.Type() == "constructor_declaration" {
		kind = model.KindConstructor
	}
	var typ *sitter.Node
	if kind == model.KindMethod {
		if typ = n.ChildByFieldName("type"); typ == nil {
			return b.snippet(n)
		}
	}
	parsed := make([]*model.Element, 0, params.NamedChildCount())
	for _, p := range namedChildren(params) {
		el := b.parameter(p)
		if el == nil {
			return b.snippet(n)
		}
		parsed = append(parsed, el)
	}

	el := b.declaration(kind, n, name)
	if tp := n.ChildByFieldName("type_parameters"); tp != nil {
		el.Attach(model.RoleTypeParameters, b.text(model.KindTypeParameters, tp))
	}
	if typ != nil {
		el.Attach(model.RoleType, b.text(model.KindTypeRef, typ))
	}
	for _, p := range parsed {
		el.Attach(model.RoleParameter, p)
	}
	if throws := childOfType(n, "throws"); throws != nil {
		for _, t := range namedChildren(throws) {
			el.Attach(model.RoleThrown, b.text(model.KindTypeRef, t))
		}
	}
	if body := n.ChildByFieldName("body"); body != nil {
		b.withBody(el, body)
		el.Attach(model.RoleBody, b.block(body))
	}
	return el
}

// parameter returns nil for shapes the printer cannot reproduce.
func (b *builder) parameter(n *sitter.Node) *model.Element {
	var typ, name *sitter.Node
	varargs := false
	switch n.Type() {
	case "formal_parameter":
		if n.ChildByFieldName("dimensions") != nil {
			return nil
		}
		typ, name = n.ChildByFieldName("type"), n.ChildByFieldName("name")
	case "spread_parameter":
		varargs = true
		for _, c := range namedChildren(n) {
			switch {
			case c.Type() == "modifiers":
			case c.Type() == "variable_declarator":
				name = c.ChildByFieldName("name")
			case typ == nil:
				typ = c
			}
		}
	}
	if typ == nil || name == nil {
		return nil
	}
	el := b.declaration(model.KindParameter, n, name)
	if varargs {
		el.SetVarargs(true)
	}
	el.Attach(model.RoleType, b.text(model.KindTypeRef, typ))
	return el
}

func (b *builder) block(n *sitter.Node) *model.Element {
	el := b.f.New(model.KindBlock)
	el.SetPosition(model.Position{Span: b.nodeSpan(n)})
	for _, s := range namedChildren(n) {
		el.Attach(model.RoleStatement, b.text(model.KindStatement, s))
	}
	return el
}
