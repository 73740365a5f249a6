// Package progress implements types.Progress sinks.
//
// Bars draws one pterm progress bar per payload on an interactive
// terminal. Logger reports the same events through zerolog when output is
// not a terminal. Counter only records totals and is what tests use.
package progress
