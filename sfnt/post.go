package sfnt

import (
	"github.com/inkwell/fontembed/bytesio"
)

// parsePost implements phase 8.
func (f *Font) parsePost(r *bytesio.Reader) error {
	rec, ok := f.Tables["post"]
	if !ok {
		return nil
	}
	italicAngle, err := r.Fixed(rec.Offset + 4)
	if err != nil {
		return err
	}
	f.ItalicAngle = int(italicAngle)

	underlinePosition, err := r.FWord(rec.Offset + 8)
	if err != nil {
		return err
	}
	f.UnderlinePosition = roundScale(underlinePosition, f.Urk)

	underlineThickness, err := r.FWord(rec.Offset + 10)
	if err != nil {
		return err
	}
	f.UnderlineThickness = roundScale(underlineThickness, f.Urk)

	isFixedPitch, err := r.U32(rec.Offset + 12)
	if err != nil {
		return err
	}
	if isFixedPitch != 0 {
		f.IsFixedPitch = true
		f.Flags |= 1
	}
	return nil
}
