package javafront

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"sniper/internal/fragment"
	"sniper/internal/model"
	"sniper/internal/source"
	"sniper/internal/trace"
)

// ErrSyntax is returned for files tree-sitter cannot parse cleanly.
var ErrSyntax = errors.New("javafront: syntax error")

// Unit is a parsed compilation unit with its fragment tree.
type Unit struct {
	File      *source.File
	Root      *model.Element
	Factory   *model.Factory
	Fragments *fragment.Tree
}

// Parse builds the model and fragment tree of file.
func Parse(ctx context.Context, file *source.File) (*Unit, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "parse", trace.CurrentSpan(ctx).SpanID)
	defer span.End(file.Path)

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(java.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, file.Content)
	if err != nil {
		return nil, fmt.Errorf("javafront: %s: %w", file.Path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		if bad := firstError(root); bad != nil {
			return nil, fmt.Errorf("%w: %s:%s", ErrSyntax, file.Path, file.Position(bad.StartByte()))
		}
		return nil, fmt.Errorf("%w: %s", ErrSyntax, file.Path)
	}

	b := &builder{file: file, src: file.Content, f: model.NewFactory()}
	cu := b.unit(root)
	frags, err := fragment.Build(file, cu)
	if err != nil {
		return nil, fmt.Errorf("javafront: %s: %w", file.Path, err)
	}
	span.WithExtra("elements", fmt.Sprint(b.f.Count()))
	return &Unit{File: file, Root: cu, Factory: b.f, Fragments: frags}, nil
}

// firstError returns the first ERROR or missing node in source order.
func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil || !c.HasError() && !c.IsMissing() {
			continue
		}
		if bad := firstError(c); bad != nil {
			return bad
		}
	}
	return nil
}
