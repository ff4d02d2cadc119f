// Package stablehash defines the content hashing contract for ledger values.
//
// A value participates by implementing Hashable: it writes one or more
// payloads to a Hasher, each tagged with a SequenceNumber identifying the
// payload's position in the value's structure. Composite values derive a
// child sequence number per field with NextChild and pass their own sequence
// number to at most one field, so a field added later at a new child index
// does not disturb the hashes of existing values.
//
// Values equal to their type's default (zero integers, empty byte strings)
// write nothing. This is what lets a decimal with a zero exponent hash the
// same as the plain integer equal to its mantissa.
//
// The hash of a value depends only on the payloads and their sequence
// numbers. The XXHasher engine sums xxhash64 digests of each tagged payload so
// the order of writes does not matter. CryptoHasher does the same with blake3
// digests summed modulo 2^256 for a 256 bit result.
package stablehash
