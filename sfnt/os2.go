package sfnt

import (
	"github.com/inkwell/fontembed/bytesio"
)

// parseOS2 implements phase 6.
func (f *Font) parseOS2(r *bytesio.Reader) error {
	rec, ok := f.Tables["OS/2"]
	if !ok {
		return nil // OS/2 is optional for the metrics this engine needs
	}
	avgCharWidth, err := r.I16(rec.Offset + 2)
	if err != nil {
		return err
	}
	f.AvgWidth = roundScale(avgCharWidth, f.Urk)

	weightClass, err := r.U16(rec.Offset + 4)
	if err != nil {
		return err
	}
	f.StemV = roundFloat(70.0 * float64(weightClass) / 400.0)
	f.StemH = roundFloat(30.0 * float64(weightClass) / 400.0)

	fsType, err := r.U16(rec.Offset + 8)
	if err != nil {
		return err
	}
	if fsType == 2 {
		return ErrLicenseRestricted
	}
	return nil
}

func roundFloat(f float64) int {
	if f < 0 {
		return int(f - 0.5)
	}
	return int(f + 0.5)
}
