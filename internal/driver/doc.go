// Package driver runs the per-file pipeline over a set of Java files:
// load, parse, optional edit script, sniper print and write back.
//
// Files are independent; Run fans them out over an errgroup and reports
// progress through a ProgressSink. A DiskCache lets repeated round-trip
// checks skip files whose content was already verified.
package driver
