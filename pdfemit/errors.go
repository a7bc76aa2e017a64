package pdfemit

import "errors"

// ErrUnknownType is returned when a FontEntry carries a Type the
// emitter has no dispatch case for.
var ErrUnknownType = errors.New("pdfemit: unknown font type")

// ErrFileUnreadable is returned when a pooled font file cannot be read
// from disk at emission time.
var ErrFileUnreadable = errors.New("pdfemit: font file unreadable")
