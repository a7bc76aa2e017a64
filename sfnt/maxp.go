package sfnt

import (
	"fmt"

	"github.com/inkwell/fontembed/bytesio"
)

// parseMaxp implements phase 10.
func (f *Font) parseMaxp(r *bytesio.Reader) error {
	rec, ok := f.Tables["maxp"]
	if !ok {
		return fmt.Errorf("%w: maxp", ErrMissingTable)
	}
	numGlyphs, err := r.U16(rec.Offset + 4)
	if err != nil {
		return err
	}
	f.NumGlyphs = numGlyphs
	return nil
}
