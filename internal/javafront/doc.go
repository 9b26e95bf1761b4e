// Package javafront builds the program model of a Java compilation unit.
//
// It parses with tree-sitter and records, for every element, the source
// positions the fragment tree needs: the element span and, for declarations,
// where the modifiers end, where the name is and where the body starts. A
// doc comment directly above a declaration becomes its comment child and
// the declaration span is widened to include it.
//
// Classes and interfaces are structured down to members, parameters and
// statements. Other type declarations (enum, record, annotation types),
// initializer blocks and declarations the printer cannot reproduce exactly
// are kept as opaque snippets.
package javafront
