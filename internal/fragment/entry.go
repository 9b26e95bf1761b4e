package fragment

import (
	"strings"

	"sniper/internal/lexer"
	"sniper/internal/model"
	"sniper/internal/source"
	"sniper/internal/token"
)

// EntryKind classifies the children a printing context matches against.
type EntryKind uint8

const (
	EntryInvalid EntryKind = iota
	// EntryToken is a lexed piece of text between child fragments.
	EntryToken
	// EntryElement is the fragment of a child element.
	EntryElement
	// EntryName is the NAME sub-region of a declaration.
	EntryName
	// EntryCollection groups the items of one collection role together with
	// the separators between them and the whitespace around them.
	EntryCollection
)

func (k EntryKind) String() string {
	switch k {
	case EntryToken:
		return "token"
	case EntryElement:
		return "element"
	case EntryName:
		return "name"
	case EntryCollection:
		return "collection"
	default:
		return "invalid"
	}
}

// Entry is one child of a fragment as seen by a printing context.
type Entry struct {
	Kind  EntryKind
	Start uint32
	End   uint32
	// Token and Text are set for EntryToken.
	Token token.Kind
	Text  string
	// Fragment, Element and Role are set for EntryElement and EntryName;
	// Role is also set for EntryCollection.
	Fragment ID
	Element  model.ElementID
	Role     model.Role
	// Items holds the members of an EntryCollection in source order:
	// leading space, items, separators, trailing space.
	Items []Entry
}

// IsSpace reports whitespace and comment tokens.
func (e Entry) IsSpace() bool {
	return e.Kind == EntryToken && e.Token.IsSpaceLike()
}

// IsWhitespace reports pure whitespace tokens.
func (e Entry) IsWhitespace() bool {
	return e.Kind == EntryToken && e.Token.IsWhitespace()
}

// HasNewline reports a token entry spanning a line break.
func (e Entry) HasNewline() bool {
	return e.Kind == EntryToken && strings.IndexByte(e.Text, '\n') >= 0
}

// IsLineComment reports a // comment, which runs to the end of its line.
func (e Entry) IsLineComment() bool {
	return e.Kind == EntryToken && e.Token == token.Comment && strings.HasPrefix(e.Text, "//")
}

// Lead returns how many space entries open a collection.
func (e Entry) Lead() int {
	n := 0
	for n < len(e.Items) && e.Items[n].IsSpace() {
		n++
	}
	return n
}

// Trail returns the index of the first entry of the trailing space run of a
// collection.
func (e Entry) Trail() int {
	i := len(e.Items)
	for i > 0 && e.Items[i-1].IsSpace() {
		i--
	}
	return i
}

// Entries returns the children of fragment id: element fragments, name
// regions and the lexed gaps between them. Other sub-regions are flattened
// into their parent, and runs of items of one collection role are grouped
// into EntryCollection entries.
func (t *Tree) Entries(id ID) []Entry {
	f := t.frags[id]
	var raw []Entry
	t.appendEntries(&raw, f.Start, f.End, f.FirstChild)
	return groupCollections(raw)
}

func (t *Tree) appendEntries(out *[]Entry, start, end uint32, head ID) {
	pos := start
	for c := head; c != NoID; c = t.frags[c].NextSibling {
		cf := t.frags[c]
		if pos < cf.Start {
			t.lexGap(out, pos, cf.Start)
		}
		switch {
		case cf.Kind == KindName:
			*out = append(*out, Entry{Kind: EntryName, Start: cf.Start, End: cf.End, Fragment: c, Element: cf.Element, Role: model.RoleName})
		case cf.Kind == KindNone && cf.Element != model.NoElement:
			*out = append(*out, Entry{Kind: EntryElement, Start: cf.Start, End: cf.End, Fragment: c, Element: cf.Element, Role: cf.Role})
		default:
			t.appendEntries(out, cf.Start, cf.End, cf.FirstChild)
		}
		pos = cf.End
	}
	if pos < end {
		t.lexGap(out, pos, end)
	}
}

func (t *Tree) lexGap(out *[]Entry, start, end uint32) {
	for _, tok := range lexer.Scan(t.file, source.Span{File: t.file.ID, Start: start, End: end}) {
		*out = append(*out, Entry{Kind: EntryToken, Start: tok.Span.Start, End: tok.Span.End, Token: tok.Kind, Text: tok.Text})
	}
}

// groupCollections folds each run of same-role collection items into one
// entry. The whitespace run after the last item goes to the collection; the
// run before the first item too.
func groupCollections(raw []Entry) []Entry {
	out := make([]Entry, 0, len(raw))
	for i := 0; i < len(raw); {
		e := raw[i]
		if e.Kind != EntryElement || !e.Role.IsCollection() {
			out = append(out, e)
			i++
			continue
		}

		lead := len(out)
		for lead > 0 && out[lead-1].IsSpace() {
			lead--
		}
		items := append([]Entry(nil), out[lead:]...)
		out = out[:lead]

		last := i
		for k := i + 1; k < len(raw); k++ {
			r := raw[k]
			if r.Kind == EntryElement && r.Role == e.Role {
				last = k
				continue
			}
			if r.IsSpace() || (r.Kind == EntryToken && r.Token == token.Separator && token.ListSeparator(r.Text)) {
				continue
			}
			break
		}
		end := last + 1
		for end < len(raw) && raw[end].IsSpace() {
			end++
		}
		items = append(items, raw[i:end]...)
		out = append(out, Entry{
			Kind:  EntryCollection,
			Start: items[0].Start,
			End:   items[len(items)-1].End,
			Role:  e.Role,
			Items: items,
		})
		i = end
	}
	return out
}
