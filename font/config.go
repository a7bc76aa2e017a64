package font

// Config is the caller-supplied configuration. It is
// passed explicitly wherever behavior depends on it; the package holds
// no package-level mutable state.
type Config struct {
	Subset     bool
	Unicode    bool
	PDFA       bool
	Compress   bool
	PlatformID uint16
	EncodingID uint16
	Linked     bool
	OutputPath string
	SearchDirs []string
}

// DefaultConfig matches the documented defaults.
func DefaultConfig() Config {
	return Config{
		Unicode:    true,
		Compress:   true,
		PlatformID: 3,
		EncodingID: 1,
	}
}
