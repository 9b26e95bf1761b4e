// Package format prints model elements as Java source.
//
// Printer walks an element depth-first and turns it into a stream of token
// writes on a TokenWriter. Every child element, named attribute and
// collection is announced through Hooks with a callback that prints it, so a
// caller can substitute original text for whole subtrees. Writer is the
// primitive sink: it owns the output buffer and the indentation level.
//
// Does not: decide which text to reuse, read source files, or validate the
// model.
package format
