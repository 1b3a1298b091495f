package blob

import "errors"

// ErrCorruptBlob is returned when a blob's framing or length does not
// add up, zlib inflation fails, or trailing bytes remain where none
// were expected.
var ErrCorruptBlob = errors.New("corrupt performance-data blob")

// ErrUnsupportedBlobVersion is returned when a blob's leading version
// tag is not one this library knows how to decode.
var ErrUnsupportedBlobVersion = errors.New("unsupported blob version")
