// Package control provides the block framing used to stream ledger values.
//
// Every value in a stream starts with a control byte. The control byte uses a
// prefix coding scheme to indicate the type of the block (which then further
// indicates how many bytes follow). The intention is to minimize signaling
// overhead for the small integers and short byte strings that dominate
// ledger data (block numbers, small amounts, addresses) while still allowing
// arbitrarily large values.
//
// Control Block
//
// This diagram indicates the bits that are fixed (filled in) vs bits that are
// available for encoding data (blanks).
//
//  | 0 | 1 | 2 | 3 | 4 | 5 | 6 | 7 || Type           |                                     |
//  |---------------|---------------||----------------|-------------------------------------|
//  | 1 |                           || Data           | 2^7 = 128 values                    |
//  | 0 . 1 |                       || Data Size      | up to 64 bytes of data              |
//  | 0 . 0 . 1 |                   || Data + 1       | 2^(5+8) = 8192 values               |
//  | 0 . 0 . 0 . 1 |               || Data + 2       | 2^(4+8+8) = 1048576 values          |
//  | 0 . 0 . 0 . 0 . 1 |           || Data Size Size | up to 8 bytes of size, then data    |
//  | 0 . 0 . 0 . 0 . 0 . 0 . 0 . 1 || Empty          | Empty value                         |
//  | 0 . 0 . 0 . 0 . 0 . 0 . 0 . 0 || Null           | Null value                          |
//  |---------------|---------------||----------------|-------------------------------------|
//
// Sizes are indexed starting at 1 to maximize their effective range. To
// encode zero length data use the Empty block.
//
// Data blocks allow for 7 bits of data to be encoded directly into the block.
//
// Data Size blocks have two parts:
//
//  1. Number of bytes that contain data (minus one)
//  2. Data
//
// Data + 1 and Data + 2 blocks are two and three byte sequences whose first
// byte carries the high bits of the data.
//
// Data Size Size blocks have 3 parts:
//
//  1. Number of bytes for the data size (minus one)
//  2. Number of bytes that contain data (minus one), big-endian
//  3. Data
package control
