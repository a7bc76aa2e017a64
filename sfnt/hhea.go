package sfnt

import (
	"fmt"

	"github.com/inkwell/fontembed/bytesio"
)

// parseHhea implements phase 9.
func (f *Font) parseHhea(r *bytesio.Reader) error {
	rec, ok := f.Tables["hhea"]
	if !ok {
		return fmt.Errorf("%w: hhea", ErrMissingTable)
	}
	ascent, err := r.FWord(rec.Offset + 4)
	if err != nil {
		return err
	}
	f.Ascent = roundScale(ascent, f.Urk)

	descent, err := r.FWord(rec.Offset + 6)
	if err != nil {
		return err
	}
	f.Descent = roundScale(descent, f.Urk)

	lineGap, err := r.FWord(rec.Offset + 8)
	if err != nil {
		return err
	}
	f.Leading = roundScale(lineGap, f.Urk)

	maxWidth, err := r.UFWord(rec.Offset + 10)
	if err != nil {
		return err
	}
	f.MaxWidth = roundScaleU(maxWidth, f.Urk)

	numHMetrics, err := r.U16(rec.Offset + 32)
	if err != nil {
		return err
	}
	f.NumHMetrics = numHMetrics
	return nil
}
