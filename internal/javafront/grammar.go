package javafront

import (
	"runtime/debug"

	"github.com/smacker/go-tree-sitter/java"
)

const grammarModule = "github.com/smacker/go-tree-sitter"

// Grammar describes the tree-sitter Java grammar the parser is linked with.
// Version is the module version recorded in the binary, "unknown" when the
// build carries no module information.
type Grammar struct {
	Language string `json:"language"`
	Module   string `json:"module"`
	Version  string `json:"version"`
	Symbols  uint32 `json:"symbols"`
}

// LinkedGrammar reports the grammar Parse uses.
func LinkedGrammar() Grammar {
	g := Grammar{
		Language: "java",
		Module:   grammarModule,
		Version:  "unknown",
		Symbols:  java.GetLanguage().SymbolCount(),
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, dep := range info.Deps {
			if dep.Path != grammarModule {
				continue
			}
			g.Version = dep.Version
			if dep.Replace != nil {
				g.Version = dep.Replace.Version
			}
			break
		}
	}
	return g
}
