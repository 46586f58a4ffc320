// Package har defines the HAR 1.2 document model and the conversion from a
// captured HTTP exchange to a HAR entry.
//
// The converter is a pure function over snapshot values: it performs no I/O
// and never mutates its inputs, so it is safe to call concurrently.
//
// # Usage
//
// Build an entry from a start timestamp and a request/response snapshot pair:
//
//	entry, err := har.BuildEntry(start, reqSnap, respSnap)
//	if err != nil {
//	    return err
//	}
//
// The start timestamp must come from a real clock reading; a zero time is
// rejected with an InvalidArgumentError rather than silently defaulted.
//
// # Format notes
//
// Entries follow the HAR 1.2 shape: startedDateTime is rendered in UTC with
// an explicit offset, request.url carries scheme+host+path only (query and
// fragment are stripped into queryString), and header order and repetition
// are preserved exactly as captured. A request or response with an empty
// body carries no postData/content descriptor at all; absence means "no
// body", not "zero-length body".
package har
