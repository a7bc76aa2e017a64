package sfnt

import (
	"fmt"

	"github.com/inkwell/fontembed/bytesio"
)

// parseLoca implements phase 4.
//
// Entries equal to their predecessor mean the predecessor glyph has no
// outline; the predecessor is dropped from HasOutline (not from Loca,
// which retains every entry so offsets stay aligned with glyph index).
func (f *Font) parseLoca(r *bytesio.Reader) error {
	rec, ok := f.Tables["loca"]
	if !ok {
		return fmt.Errorf("%w: loca", ErrMissingTable)
	}
	short := f.IndexToLocFormat == 0
	entrySize := uint32(4)
	if short {
		entrySize = 2
	}
	n := rec.Length / entrySize
	loca := make([]uint32, n)
	for i := uint32(0); i < n; i++ {
		if short {
			v, err := r.U16(rec.Offset + i*2)
			if err != nil {
				return err
			}
			loca[i] = uint32(v) * 2
		} else {
			v, err := r.U32(rec.Offset + i*4)
			if err != nil {
				return err
			}
			loca[i] = v
		}
	}
	f.Loca = loca
	f.HasOutline = make([]bool, n)
	for i := uint32(0); i+1 < n; i++ {
		f.HasOutline[i] = loca[i] != loca[i+1]
	}
	return nil
}

// glyphRange returns the [start,end) byte range of glyph g within the
// glyf table, and whether the glyph carries an outline.
func (f *Font) glyphRange(g uint16) (start, end uint32, ok bool) {
	if int(g)+1 >= len(f.Loca) {
		return 0, 0, false
	}
	start, end = f.Loca[g], f.Loca[g+1]
	return start, end, end > start
}
