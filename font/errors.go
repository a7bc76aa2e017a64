package font

import "errors"

var (
	ErrBadFormat    = errors.New("font: definition missing type or cw")
	ErrUnknownType  = errors.New("font: unknown type")
	ErrCidOnPdfa    = errors.New("font: cidfont0 not allowed under pdfa")
	ErrNotReadable  = errors.New("font: definition or font file unreadable")
)
