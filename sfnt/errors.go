package sfnt

import "errors"

// Sentinel error kinds, wrapped with context via fmt.Errorf at each
// call site. These line up with the engine's documented error kinds.
var (
	ErrBadMagic              = errors.New("sfnt: bad magic")
	ErrUnsupportedCmapFormat = errors.New("sfnt: unsupported cmap format")
	ErrLicenseRestricted     = errors.New("sfnt: embedding restricted by OS/2.fsType")
	ErrEncodingDecode        = errors.New("sfnt: name record could not be decoded")
	ErrMissingTable          = errors.New("sfnt: required table missing")
)
