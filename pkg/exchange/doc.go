// Package exchange models one HTTP exchange as immutable snapshot values,
// decoupled from live transport objects.
//
// A snapshot is a fully-materialized view of a request or response at one
// point in time: method, URL, ordered headers, and a buffered body. Snapshot
// constructors that read from live net/http objects re-arm the consumed body
// so the original object remains usable by the caller.
//
// The package also models the three ways an exchange can be invoked — a
// prebuilt *http.Request, a declarative Spec, or loose method/URL/body
// parameters — as an explicit tagged union (Call), with one build function
// per shape all producing the same dispatched request. This keeps the
// recorded request identical to what was actually sent, regardless of the
// call shape used.
package exchange
