// Package edit applies TOML edit scripts to a parsed compilation unit.
//
// A script is a list of [[edit]] tables, each naming an op and a target
// selector:
//
//	[[edit]]
//	op = "rename"
//	target = "Greeter.greet"
//	name = "salute"
//
//	[[edit]]
//	op = "add-statement"
//	target = "Greeter.greet"
//	text = "log(who);"
//	index = 0
//
// Edits run in order through the model's mutators. Edits that do not fit
// their target are skipped unless ApplyOptions.Strict is set.
package edit
