package sfnt

import (
	"fmt"

	"github.com/inkwell/fontembed/bytesio"
)

// parseWidths implements phase 13.
func (f *Font) parseWidths(r *bytesio.Reader) error {
	rec, ok := f.Tables["hmtx"]
	if !ok {
		return fmt.Errorf("%w: hmtx", ErrMissingTable)
	}
	n := int(f.NumHMetrics)
	widths := make([]uint16, n)
	for i := 0; i < n; i++ {
		w, err := r.U16(rec.Offset + uint32(i)*4)
		if err != nil {
			return err
		}
		widths[i] = w
	}
	total := int(f.NumGlyphs)
	if total < n {
		total = n
	}
	f.Widths = make([]uint16, total)
	copy(f.Widths, widths)
	last := uint16(0)
	if n > 0 {
		last = widths[n-1]
	}
	for i := n; i < total; i++ {
		f.Widths[i] = last
	}
	if len(f.Widths) > 0 {
		f.MissingWidth = roundScaleU(f.Widths[0], f.Urk)
	}

	for code, glyph := range f.Ctgdata {
		if int(glyph) >= len(f.Widths) {
			continue
		}
		f.CW[code] = roundScaleU(f.Widths[glyph], f.Urk)
		if hdr, ok, err := f.glyfHeader(r, glyph); err == nil && ok {
			f.CBBox[code] = [4]int{
				roundScale(hdr.XMin, f.Urk),
				roundScale(hdr.YMin, f.Urk),
				roundScale(hdr.XMax, f.Urk),
				roundScale(hdr.YMax, f.Urk),
			}
		}
	}
	return nil
}
