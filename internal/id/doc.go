// Package id provides unique identifier generation utilities.
//
// It generates ULIDs: Universally Unique Lexicographically Sortable
// Identifiers, 26-character time-ordered IDs used for default trace file
// names. A ULID combines a millisecond timestamp prefix with a random
// tail, so names generated in rapid succession never collide and sort
// chronologically. All randomness comes from crypto/rand.
package id
