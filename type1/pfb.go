// Package type1 decodes Type 1 Printer Font Binary (PFB) files into
// their constituent segments.
package type1

import (
	"errors"
	"fmt"
)

const (
	segmentMarker = 0x80
	segmentASCII  = 1
	segmentBinary = 2
	segmentEOF    = 3
)

// ErrMalformed is returned when a PFB segment header is not where expected.
var ErrMalformed = errors.New("type1: malformed PFB segment header")

// Font holds the three PFB segments of a Type 1 font: the cleartext
// header, the eexec-encrypted body, and the cleartext trailer (512
// zeros followed by "cleartomark").
type Font struct {
	Header   []byte
	Body     []byte
	Trailer  []byte
	Length1  int // byte length of Header
	Length2  int // byte length of Body
	Length3  int // byte length of Trailer
}

// ParsePFB decodes a PFB byte stream into its segments.
//
// A PFB font is a sequence of segments, each prefixed by a marker byte
// (0x80), a segment-type byte (1 ASCII, 2 binary, 3 EOF), and, for
// types 1/2, a 4-byte little-endian length. Segments of the same type
// are concatenated; the ASCII segments before the first binary segment
// form the Header, the binary segments form the Body, and any ASCII
// segments after the Body form the Trailer.
func ParsePFB(pfb []byte) (*Font, error) {
	f := &Font{}
	offset := 0
	seenBinary := false
	for offset < len(pfb) {
		if pfb[offset] != segmentMarker {
			return nil, fmt.Errorf("%w: at offset %d", ErrMalformed, offset)
		}
		if offset+1 >= len(pfb) {
			return nil, fmt.Errorf("%w: truncated segment type", ErrMalformed)
		}
		segType := pfb[offset+1]
		if segType == segmentEOF {
			break
		}
		if offset+6 > len(pfb) {
			return nil, fmt.Errorf("%w: truncated segment length", ErrMalformed)
		}
		length := int(pfb[offset+2]) | int(pfb[offset+3])<<8 | int(pfb[offset+4])<<16 | int(pfb[offset+5])<<24
		start := offset + 6
		if start+length > len(pfb) || length < 0 {
			return nil, fmt.Errorf("%w: segment length %d exceeds buffer", ErrMalformed, length)
		}
		seg := pfb[start : start+length]
		switch segType {
		case segmentASCII:
			if !seenBinary {
				f.Header = append(f.Header, seg...)
			} else {
				f.Trailer = append(f.Trailer, seg...)
			}
		case segmentBinary:
			seenBinary = true
			f.Body = append(f.Body, seg...)
		default:
			return nil, fmt.Errorf("%w: unknown segment type %d", ErrMalformed, segType)
		}
		offset = start + length
	}
	f.Length1 = len(f.Header)
	f.Length2 = len(f.Body)
	f.Length3 = len(f.Trailer)
	return f, nil
}
