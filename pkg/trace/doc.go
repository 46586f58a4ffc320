// Package trace persists HAR entries to a trace file incrementally.
//
// A Writer is a two-phase resource: NewWriter opens the file and writes the
// HAR container preamble, Append streams one entry at a time, and Close
// finalizes the container so the file parses as a valid HAR 1.2 document.
// The file strictly accumulates; nothing rewrites or truncates prior
// entries. Every append goes straight to the file, so a crash before Close
// loses at most the closing brackets, never a recorded entry.
//
// A Writer owns one exclusive file and is intended for a single logical
// caller. Appends are serialized internally, but callers must not interleave
// Close with in-flight appends from other goroutines.
package trace
