// Package font holds the FontEntry data model (the central record
// produced by parsing and consumed by the registry, stack, and PDF
// emitter) and the JSON font-definition loader.
package font

// Type distinguishes the five ways a font can be embedded/referenced.
type Type string

const (
	Core            Type = "Core"
	Type1           Type = "Type1"
	TrueType        Type = "TrueType"
	TrueTypeUnicode Type = "TrueTypeUnicode"
	CidFont0        Type = "cidfont0"
)

// Mode is the bold/italic/underline/linethrough/overline quintuple.
type Mode struct {
	Bold, Italic, Underline, LineThrough, Overline bool
}

// Descriptor carries the PDF FontDescriptor field set.
type Descriptor struct {
	Ascent, Descent, Leading   int
	CapHeight, XHeight         int
	ItalicAngle                int
	Flags                      int
	FontBBox                   [4]int
	StemV, StemH               int
	AvgWidth, MaxWidth         int
	MissingWidth               int
}

// CIDInfo describes a CID-keyed font's character collection.
type CIDInfo struct {
	Registry   string
	Ordering   string
	Supplement int
	Uni2CID    map[rune]int
}

// Entry is the FontEntry record: one per loaded font instance.
type Entry struct {
	Key    string
	Family string
	Name   string
	Style  string // subset of "B I U D O", canonical order B then I
	Type   Type

	Unicode   bool
	PDFA      bool
	Subset    bool
	Compress  bool
	FakeStyle bool

	Mode Mode
	Desc Descriptor

	CW    map[int]int
	CBBox map[int][4]int
	DW    int

	UP, UT int // underline position, thickness

	Enc    string
	Diff   string
	DiffN  int // 0 means unpooled

	CIDInfo CIDInfo

	SubsetChars map[int]bool

	File          string
	Dir           string
	Length1       int
	Length2       *int // Type1 second segment length; nil for TrueType
	OriginalSize  int
	FileN         int

	I int // stack-local index
	N int // allocated PDF object number of the Font resource
}

// NewEntry returns an Entry with its maps initialized.
func NewEntry() *Entry {
	return &Entry{
		CW:          make(map[int]int),
		CBBox:       make(map[int][4]int),
		SubsetChars: make(map[int]bool),
	}
}

// StyleSuffix returns the style string in canonical B-then-I order,
// key rule, from the Mode quintuple's bold/italic bits.
func StyleSuffix(mode Mode) string {
	s := ""
	if mode.Bold {
		s += "B"
	}
	if mode.Italic {
		s += "I"
	}
	return s
}
