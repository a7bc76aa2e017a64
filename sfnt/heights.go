package sfnt

import (
	"github.com/inkwell/fontembed/bytesio"
)

// computeHeights implements phase 12: refine XHeight/CapHeight
// from the actual glyph outlines of 'x' and 'H' when present, falling
// back to the hhea-derived default.
func (f *Font) computeHeights(r *bytesio.Reader) {
	f.XHeight = f.Ascent + f.Descent
	if glyph, ok := f.Ctgdata['x']; ok {
		if hdr, present, err := f.glyfHeader(r, glyph); err == nil && present {
			f.XHeight = roundScale(hdr.YMax-hdr.YMin, f.Urk)
		}
	}
	if glyph, ok := f.Ctgdata['H']; ok {
		if hdr, present, err := f.glyfHeader(r, glyph); err == nil && present {
			f.CapHeight = roundScale(hdr.YMax-hdr.YMin, f.Urk)
		}
	}
}
