package sfnt

import (
	"fmt"

	"github.com/inkwell/fontembed/bytesio"
)

const headMagic = 0x5F0F3CF5

// parseHead implements phase 3.
func (f *Font) parseHead(r *bytesio.Reader) error {
	rec, ok := f.Tables["head"]
	if !ok {
		return fmt.Errorf("%w: head", ErrMissingTable)
	}
	magic, err := r.U32(rec.Offset + 12)
	if err != nil {
		return err
	}
	if magic != headMagic {
		return fmt.Errorf("%w: head.magicNumber 0x%08X", ErrBadMagic, magic)
	}
	unitsPerEm, err := r.U16(rec.Offset + 18)
	if err != nil {
		return err
	}
	if unitsPerEm < 16 || unitsPerEm > 16384 {
		unitsPerEm = 1000
	}
	f.UnitsPerEm = unitsPerEm
	f.Urk = 1000.0 / float64(unitsPerEm)

	xMin, err := r.FWord(rec.Offset + 36)
	if err != nil {
		return err
	}
	yMin, err := r.FWord(rec.Offset + 38)
	if err != nil {
		return err
	}
	xMax, err := r.FWord(rec.Offset + 40)
	if err != nil {
		return err
	}
	yMax, err := r.FWord(rec.Offset + 42)
	if err != nil {
		return err
	}
	f.FontBBox = [4]int{
		roundScale(xMin, f.Urk),
		roundScale(yMin, f.Urk),
		roundScale(xMax, f.Urk),
		roundScale(yMax, f.Urk),
	}

	macStyle, err := r.U16(rec.Offset + 44)
	if err != nil {
		return err
	}
	if macStyle&0x2 != 0 { // italic bit
		f.Flags |= 64
	}

	locFormat, err := r.I16(rec.Offset + 50)
	if err != nil {
		return err
	}
	f.IndexToLocFormat = locFormat
	return nil
}

func roundScale(v int16, urk float64) int {
	x := float64(v) * urk
	if x < 0 {
		return int(x - 0.5)
	}
	return int(x + 0.5)
}

// roundScaleU is roundScale for UFWord design units (unsigned 16-bit),
// such as hhea.MaxWidth and hmtx advance widths, which sign-extend
// through int16 and go negative above 32767 if scaled via roundScale.
func roundScaleU(v uint16, urk float64) int {
	return int(float64(v)*urk + 0.5)
}
