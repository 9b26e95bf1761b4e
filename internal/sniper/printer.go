package sniper

import (
	"context"
	"fmt"
	"slices"

	"sniper/internal/change"
	"sniper/internal/format"
	"sniper/internal/fragment"
	"sniper/internal/model"
	"sniper/internal/token"
	"sniper/internal/trace"
)

// Printer reprints elements of one parsed file.
type Printer struct {
	tree *fragment.Tree
	res  *change.Resolver
	opt  format.Options
}

// NewPrinter creates a printer over the fragments of the original file.
// opt controls the layout of parts printed from the model; indentation left
// to inference follows the original file.
func NewPrinter(tree *fragment.Tree, res *change.Resolver, opt format.Options) *Printer {
	return &Printer{tree: tree, res: res, opt: opt.Resolve(tree.File().Content)}
}

// PrintUnit reprints a compilation unit.
func (p *Printer) PrintUnit(ctx context.Context, cu *model.Element) ([]byte, error) {
	if cu.Kind() != model.KindCompilationUnit {
		return nil, fmt.Errorf("sniper: %s is not a compilation unit", cu)
	}
	return p.PrintElement(ctx, cu)
}

// PrintElement reprints el. Elements without a fragment are printed from
// the model. A broken invariant fails the whole pass with an error wrapping
// ErrInternal.
func (p *Printer) PrintElement(ctx context.Context, el *model.Element) (out []byte, err error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "print", trace.CurrentSpan(ctx).SpanID)
	defer func() {
		if err != nil {
			span.End(err.Error())
			return
		}
		span.WithExtra("bytes", fmt.Sprint(len(out))).End("")
	}()

	w := format.NewWriter(p.opt, len(p.tree.File().Content)+64)
	s := &pass{
		tree:   p.tree,
		res:    p.res,
		tracer: tracer,
		debug:  tracer.Level().ShouldEmit(trace.ScopeNode),
	}
	s.proxy = NewProxy(w, s)
	s.printer = format.NewPrinter(s.proxy, s)
	err = s.run(func() {
		s.root(el)
		if len(s.stack) != 1 {
			invariant("context stack not balanced: %d", len(s.stack))
		}
	})
	if err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// pass is the state of one print: the hooks the printer reports to and the
// listener of the proxy.
type pass struct {
	tree    *fragment.Tree
	res     *change.Resolver
	proxy   *Proxy
	printer *format.Printer
	stack   []*printContext
	tracer  trace.Tracer
	debug   bool
}

var _ format.Hooks = (*pass)(nil)

// run calls fn and turns an invariant panic into an error.
func (s *pass) run(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			ie, ok := r.(*InvariantError)
			if !ok {
				panic(r)
			}
			err = ie
		}
	}()
	fn()
	return nil
}

func (s *pass) root(el *model.Element) {
	s.push(newPrettyContext())
	id := s.tree.FragmentOf(el)
	switch {
	case id == fragment.NoID:
		s.note("default", el.String())
		s.printer.Print(el)
	case !s.res.IsElementModified(el):
		s.note("reuse", el.String())
		s.proxy.DirectPrint(s.tree.Text(id))
	default:
		c := newElementContext(el, s.tree.Entries(id))
		s.push(c)
		s.printer.Print(el)
		s.finish(c)
		s.pop()
	}
}

func (s *pass) push(c *printContext) { s.stack = append(s.stack, c) }

func (s *pass) pop() { s.stack = s.stack[:len(s.stack)-1] }

func (s *pass) top() *printContext { return s.stack[len(s.stack)-1] }

func (s *pass) note(action, detail string) {
	if s.debug {
		trace.Point(s.tracer, trace.ScopeNode, action, detail)
	}
}

func (s *pass) Element(role model.Role, parent, child *model.Element, print func()) {
	s.dispatch(Event{Kind: EventElement, Role: role, Owner: parent, Element: child}, print)
}

func (s *pass) Attribute(role model.Role, owner *model.Element, print func()) {
	s.dispatch(Event{Kind: EventAttribute, Role: role, Owner: owner}, print)
}

func (s *pass) Collection(role model.Role, owner *model.Element, items []*model.Element, print func()) {
	s.dispatch(Event{Kind: EventCollection, Role: role, Owner: owner, Items: items}, print)
}

func (s *pass) OnToken(op token.Op) {
	s.dispatch(Event{Kind: EventToken, Op: op}, nil)
}

func (s *pass) dispatch(ev Event, print func()) {
	ev.check()
	c := s.top()
	if c.strategy == strategyPretty {
		if ev.Kind == EventToken {
			s.proxy.Commit(ev.Op)
		} else {
			print()
		}
		return
	}
	if ev.Kind == EventToken {
		s.token(c, ev.Op)
		return
	}

	idx := c.find(ev)
	if idx < 0 {
		s.note("default", ev.String())
		s.defaultSpace(c)
		s.nested(newPrettyContext(), print)
		c.printed, c.lastOrigin = true, false
		return
	}
	s.spaceBefore(c, idx)
	c.consume(idx)
	s.resolve(c, ev, c.entries[idx], print)
	c.printed, c.lastOrigin = true, true
}

func (s *pass) token(c *printContext, op token.Op) {
	switch {
	case op.Kind.IsTab():
		s.proxy.Commit(op)
		return
	case op.Kind.IsWhitespace(),
		c.collection && op.Kind == token.Separator && token.ListSeparator(op.Text):
		c.pending = append(c.pending, op)
		return
	}
	idx := c.find(Event{Kind: EventToken, Op: op})
	if idx < 0 {
		s.defaultSpace(c)
		s.proxy.Commit(op)
		c.printed, c.lastOrigin = true, false
		return
	}
	s.spaceBefore(c, idx)
	c.consume(idx)
	if e := c.entries[idx]; e.Text == op.Text {
		s.proxy.DirectPrint(e.Text)
	} else {
		s.proxy.Commit(op)
	}
	c.printed, c.lastOrigin = true, true
}

// resolve prints the part ev announced, which matched entry e.
func (s *pass) resolve(c *printContext, ev Event, e fragment.Entry, print func()) {
	switch ev.Kind {
	case EventAttribute:
		if s.res.IsRoleModified(ev.Owner, ev.Role) == change.Unmodified {
			s.reuse(ev, e, print)
			return
		}
		s.reprint(ev, print)

	case EventCollection:
		if s.res.IsRoleModified(ev.Owner, ev.Role) == change.Unmodified {
			s.reuse(ev, e, print)
			return
		}
		cc := newCollectionContext(ev.Owner, ev.Role, e, ev.Items)
		if cc.demoted {
			s.note("demote", ev.String())
		}
		s.note("descend", ev.String())
		s.nested(cc, print)

	case EventElement:
		var modified bool
		if c.collection {
			modified = s.res.IsElementModified(ev.Element)
		} else {
			switch s.res.IsRoleModified(ev.Owner, ev.Role) {
			case change.Unmodified:
			case change.Modified:
				modified = true
			case change.Unknown:
				modified = s.res.IsElementModified(ev.Element)
			}
		}
		switch {
		case e.Element != ev.Element.ID():
			s.reprint(ev, print)
		case !modified:
			s.reuse(ev, e, print)
		case ev.Element.Kind().IsText():
			s.reprint(ev, print)
		default:
			s.note("descend", ev.String())
			s.nested(newElementContext(ev.Element, s.tree.Entries(e.Fragment)), print)
		}
	}
}

// reuse copies the original text of e and lets the printer run muted.
func (s *pass) reuse(ev Event, e fragment.Entry, print func()) {
	s.note("reuse", ev.String())
	s.proxy.DirectPrint(s.text(e))
	prev := s.proxy.SetMuted(true)
	s.nested(newPrettyContext(), print)
	s.proxy.SetMuted(prev)
}

func (s *pass) reprint(ev Event, print func()) {
	s.note("reprint", ev.String())
	s.nested(newPrettyContext(), print)
}

func (s *pass) nested(c *printContext, print func()) {
	s.push(c)
	print()
	s.finish(c)
	s.pop()
}

// finish ends a context: the whitespace that closed its original text is
// printed when anything was printed in it, and queued writes are dropped.
func (s *pass) finish(c *printContext) {
	if c.strategy == strategyPretty {
		return
	}
	if c.printed && !s.proxy.Muted() {
		s.closing(c)
	}
	c.pending = nil
	s.proxy.SetMuted(false)
}

// closing prints what followed the last emission in the original: comments
// on the same line, then the trailing whitespace. When dropped entries lie
// in between and the trailing run stays on one line, the line break after
// the last emission is kept instead.
func (s *pass) closing(c *printContext) {
	from := c.cursor + 1
	if c.lastOrigin {
		end := c.trailer(from)
		s.printEntries(c, from, end)
		from = end
	}
	tail := c.spaceRun(from, len(c.entries))
	if tail > from && c.entries[from].HasNewline() && !c.hasNewline(tail, len(c.entries)) {
		s.printEntries(c, from, from+1)
		return
	}
	s.printEntries(c, tail, len(c.entries))
}

func (s *pass) text(e fragment.Entry) string {
	if e.Kind == fragment.EntryToken {
		return e.Text
	}
	return s.tree.Slice(e.Start, e.End)
}

func (s *pass) printEntries(c *printContext, from, to int) {
	for i := from; i < to; i++ {
		s.proxy.DirectPrint(s.text(c.entries[i]))
	}
}

func (s *pass) flushPending(c *printContext) {
	for _, op := range c.pending {
		s.proxy.Commit(op)
	}
	c.pending = nil
}

// defaultSpace prepares output for a part printed from the model. The first
// part of a collection takes the collection's leading whitespace.
func (s *pass) defaultSpace(c *printContext) {
	if c.collection && !c.printed {
		if n := c.lead(); n > 0 {
			s.printEntries(c, 0, n)
			c.pending = nil
			return
		}
	}
	if c.printed && c.lastOrigin {
		s.keepTrailer(c)
	}
	s.flushPending(c)
}

// keepTrailer prints the comments sharing a line with the last emission
// before a part printed from the model, so they stay with their item. A line
// comment is only moved when the queued writes break the line after it.
func (s *pass) keepTrailer(c *printContext) {
	from := c.cursor + 1
	end := c.trailer(from)
	if end == from || (c.entries[end-1].IsLineComment() && !c.pendingNewline()) {
		return
	}
	s.printEntries(c, from, end)
	for i := from; i < end; i++ {
		c.consume(i)
	}
}

// spaceBefore writes what separates the previous emission from entry idx.
func (s *pass) spaceBefore(c *printContext, idx int) {
	switch {
	case c.collection && !c.printed:
		n := c.lead()
		s.printEntries(c, 0, n)
		start := c.spaceRun(n, idx)
		if start > n {
			// the same-line comments of a dropped item go with it
			start = c.trailer(start)
		}
		for j := start; j < idx; j++ {
			if c.entries[j].Token == token.Comment {
				s.printEntries(c, j, idx)
				break
			}
		}
		c.pending = nil
	case c.printed && !c.lastOrigin, c.demoted && idx < c.cursor:
		s.flushPending(c)
	default:
		s.originSpace(c, idx)
	}
}

// originSpace reuses the original text between the last emission and idx:
// the separators the printer asked for, found in order, comments on the line
// of the last emission, and the whitespace directly before idx.
func (s *pass) originSpace(c *printContext, idx int) {
	from := c.cursor + 1
	var seps []int
	k := from
	for _, op := range c.pending {
		if op.Kind.IsWhitespace() {
			continue
		}
		for k < idx && !(c.entries[k].Kind == fragment.EntryToken && c.entries[k].Text == op.Text) {
			k++
		}
		if k == idx {
			s.flushPending(c)
			return
		}
		seps = append(seps, k)
		k++
	}
	if len(seps) > 0 {
		last := seps[len(seps)-1]
		for j := from; j <= last; j++ {
			if c.entries[j].IsSpace() || slices.Contains(seps, j) {
				s.printEntries(c, j, j+1)
			}
		}
		from = last + 1
	}
	open := false
	if c.printed && c.lastOrigin {
		end := c.trailer(from)
		s.printEntries(c, from, end)
		open = end > from && c.entries[end-1].IsLineComment()
		from = end
	}
	start := c.spaceRun(from, idx)
	if open && start > from && !c.hasNewline(start, idx) {
		// a line comment needs the break that ended it
		s.printEntries(c, from, from+1)
		c.pending = nil
		return
	}
	if start > from && c.entries[start-1].Kind == fragment.EntryCollection {
		s.vestige(c.entries[start-1])
	}
	s.printEntries(c, start, idx)
	c.pending = nil
}

// vestige prints the whitespace a removed collection leaves behind: its
// trailing run when that breaks the line, else its leading run.
func (s *pass) vestige(e fragment.Entry) {
	trail := e.Items[e.Trail():]
	if slices.ContainsFunc(trail, fragment.Entry.HasNewline) {
		for _, it := range trail {
			s.proxy.DirectPrint(s.text(it))
		}
		return
	}
	for _, it := range e.Items[:e.Lead()] {
		s.proxy.DirectPrint(s.text(it))
	}
}
