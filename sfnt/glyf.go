package sfnt

import (
	"github.com/inkwell/fontembed/bytesio"
)

// glyfHeader is the 10-byte header common to simple and composite glyphs.
type glyfHeader struct {
	NumberOfContours int16
	XMin, YMin       int16
	XMax, YMax       int16
}

func (f *Font) glyfHeader(r *bytesio.Reader, g uint16) (glyfHeader, bool, error) {
	rec, ok := f.Tables["glyf"]
	if !ok {
		return glyfHeader{}, false, nil
	}
	start, end, hasOutline := f.glyphRange(g)
	if !hasOutline || end-start < 10 {
		return glyfHeader{}, false, nil
	}
	base := rec.Offset + start
	nc, err := r.I16(base)
	if err != nil {
		return glyfHeader{}, false, err
	}
	xMin, err := r.I16(base + 2)
	if err != nil {
		return glyfHeader{}, false, err
	}
	yMin, err := r.I16(base + 4)
	if err != nil {
		return glyfHeader{}, false, err
	}
	xMax, err := r.I16(base + 6)
	if err != nil {
		return glyfHeader{}, false, err
	}
	yMax, err := r.I16(base + 8)
	if err != nil {
		return glyfHeader{}, false, err
	}
	return glyfHeader{nc, xMin, yMin, xMax, yMax}, true, nil
}

// Composite component flag bits, per the OpenType glyf spec.
const (
	compArgsAreWords    = 1 << 0
	compArgsAreXY       = 1 << 1
	compHaveScale       = 1 << 3
	compMoreComponents  = 1 << 5
	compHaveXYScale     = 1 << 6
	compHaveTwoByTwo    = 1 << 7
)

// compositeDependencies returns the glyph indices directly referenced
// by composite glyph g's component list, in file order. g must be a
// composite (NumberOfContours < 0).
func (f *Font) compositeDependencies(r *bytesio.Reader, g uint16) ([]uint16, error) {
	rec := f.Tables["glyf"]
	start, end, _ := f.glyphRange(g)
	offset := rec.Offset + start + 10
	limit := rec.Offset + end

	var deps []uint16
	for offset+4 <= limit {
		flags, err := r.U16(offset)
		if err != nil {
			return nil, err
		}
		glyphIndex, err := r.U16(offset + 2)
		if err != nil {
			return nil, err
		}
		deps = append(deps, glyphIndex)
		offset += 4

		if flags&compArgsAreWords != 0 {
			offset += 4
		} else {
			offset += 2
		}
		switch {
		case flags&compHaveTwoByTwo != 0:
			offset += 8
		case flags&compHaveXYScale != 0:
			offset += 4
		case flags&compHaveScale != 0:
			offset += 2
		}
		if flags&compMoreComponents == 0 {
			break
		}
	}
	return deps, nil
}
