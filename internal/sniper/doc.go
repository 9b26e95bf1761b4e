// Package sniper reprints an edited model while copying unchanged regions
// from the original source.
//
// The structural printer in package format walks the model and announces
// every part it is about to print. A Proxy sits between that printer and the
// output Writer and turns each token write into an Event for the context on
// top of the stack. Contexts hold the child entries of one fragment and
// match the printer's parts against them: an unmodified part is copied from
// the original text while the proxy is muted, a modified one is printed
// again by a nested context, and a part with no counterpart in the original
// is printed from the model with default spacing.
//
// Three context strategies exist. Pretty contexts match nothing. List
// contexts search forward only. Set contexts accept items in any order but
// fall back to printer order and default spacing as soon as the order
// differs from the original or an item is new.
//
// A print pass is single threaded and owns its context stack, proxy and
// writer; the fragment tree and resolver are only read.
package sniper
