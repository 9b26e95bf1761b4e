package edit

import (
	"fmt"
	"strings"

	"sniper/internal/model"
)

// Selector addresses an element of a compilation unit:
//
//	Type              a top-level type
//	Type.Inner.member a member of a (nested) type
//	Type.method/param a parameter
type Selector struct {
	Path  []string
	Param string
}

// ParseSelector parses s.
func ParseSelector(s string) (Selector, error) {
	path, param, hasParam := strings.Cut(strings.TrimSpace(s), "/")
	var sel Selector
	for _, part := range strings.Split(path, ".") {
		if part == "" {
			return Selector{}, fmt.Errorf("bad selector %q", s)
		}
		sel.Path = append(sel.Path, part)
	}
	if hasParam {
		if param == "" || strings.ContainsAny(param, "./") || len(sel.Path) < 2 {
			return Selector{}, fmt.Errorf("bad selector %q", s)
		}
		sel.Param = param
	}
	return sel, nil
}

func (s Selector) String() string {
	out := strings.Join(s.Path, ".")
	if s.Param != "" {
		out += "/" + s.Param
	}
	return out
}

// Resolve finds the element s addresses below cu, or nil.
func (s Selector) Resolve(cu *model.Element) *model.Element {
	el := cu.DeclaredType(s.Path[0])
	for _, name := range s.Path[1:] {
		if el == nil {
			return nil
		}
		el = el.Member(name)
	}
	if el == nil || s.Param == "" {
		return el
	}
	return el.Parameter(s.Param)
}
