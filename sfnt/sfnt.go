// Package sfnt decodes and subsets TrueType font files. It implements
// the table directory walk and the subset of tables (head, hhea, hmtx,
// maxp, post, OS/2, name, loca, glyf, cmap) needed to derive PDF font
// metrics and, optionally, a reduced glyph set for embedding.
//
// Grounded on the table-parsing structure of github.com/tdewolff/font's
// sfnt.go, generalized to the offset-addressed byte reader in package
// bytesio and restricted to the table set this engine needs.
package sfnt

import (
	"fmt"
	"sort"

	"github.com/inkwell/fontembed/bytesio"
)

// TableRecord is one entry of the sfnt table directory.
type TableRecord struct {
	Checksum uint32
	Offset   uint32
	Length   uint32
}

// Font is the normalized result of parsing a TrueType sfnt blob.
type Font struct {
	Data   []byte
	Tables map[string]TableRecord

	UnitsPerEm uint16
	Urk        float64 // 1000 / UnitsPerEm

	IndexToLocFormat int16
	Loca             []uint32 // tot_num_glyphs entries; numGlyphs+1 by convention
	HasOutline       []bool   // per glyph index < len(Loca)-1

	NumHMetrics uint16
	Widths      []uint16 // per glyph index, padded to NumGlyphs

	NumGlyphs uint16

	PostScriptName string

	Ascent, Descent, Leading, MaxWidth int
	AvgWidth                           int
	StemV, StemH                       int
	CapHeight, XHeight                 int
	ItalicAngle                        int
	UnderlinePosition                  int
	UnderlineThickness                 int
	IsFixedPitch                       bool
	Flags                              int
	FontBBox                           [4]int
	MissingWidth                       int

	// CW and CBBox are keyed by character code as resolved through the
	// selected cmap subtable (ctgdata).
	CW    map[uint32]int
	CBBox map[uint32][4]int

	// Ctgdata is the character-code-to-glyph-index mapping selected by
	// the configured (platformID, encodingID) pair.
	Ctgdata map[uint32]uint16

	// Unicode reports whether this font was parsed requesting a
	// Unicode-capable encoding. Type-downgrade may flip this to
	// false after cmap resolution.
	Unicode bool
}

// Options configures which cmap subtable is selected and how the
// PostScript name is derived.
type Options struct {
	PlatformID uint16
	EncodingID uint16
	// Unicode marks this as an attempted Unicode (TrueTypeUnicode) parse;
	// if the resolved cmap yields exactly 256 codes, Font.Unicode is
	// downgraded to false.
	Unicode bool
}

// DefaultOptions selects the Windows Unicode BMP cmap subtable
// (platform 3, encoding 1), the configuration default.
func DefaultOptions() Options {
	return Options{PlatformID: 3, EncodingID: 1, Unicode: true}
}

// Parse decodes a standalone sfnt blob (TrueType only; OpenType CFF is
// out of scope) into a Font.
func Parse(data []byte, opts Options) (*Font, error) {
	r := bytesio.New(data)

	version, err := r.U32(0)
	if err != nil {
		return nil, err
	}
	if version != 0x00010000 {
		return nil, fmt.Errorf("%w: sfntVersion 0x%08X", ErrBadMagic, version)
	}

	numTables, err := r.U16(4)
	if err != nil {
		return nil, err
	}

	f := &Font{
		Data:    data,
		Tables:  make(map[string]TableRecord, numTables),
		CW:      make(map[uint32]int),
		CBBox:   make(map[uint32][4]int),
		Ctgdata: make(map[uint32]uint16),
		Unicode: opts.Unicode,
	}

	// Phase 2: table directory.
	const dirStart = 12
	for i := uint16(0); i < numTables; i++ {
		rec := dirStart + uint32(i)*16
		tag, err := r.Tag(rec)
		if err != nil {
			return nil, err
		}
		checksum, err := r.U32(rec + 4)
		if err != nil {
			return nil, err
		}
		offset, err := r.U32(rec + 8)
		if err != nil {
			return nil, err
		}
		length, err := r.U32(rec + 12)
		if err != nil {
			return nil, err
		}
		f.Tables[tag] = TableRecord{Checksum: checksum, Offset: offset, Length: length}
	}

	if err := f.parseHead(r); err != nil {
		return nil, err
	}
	if err := f.parseLoca(r); err != nil {
		return nil, err
	}
	cmapDir, err := f.parseCmapDirectory(r)
	if err != nil {
		return nil, err
	}
	if err := f.parseOS2(r); err != nil {
		return nil, err
	}
	if err := f.parseName(r); err != nil {
		return nil, err
	}
	if err := f.parsePost(r); err != nil {
		return nil, err
	}
	if err := f.parseHhea(r); err != nil {
		return nil, err
	}
	if err := f.parseMaxp(r); err != nil {
		return nil, err
	}
	if err := f.resolveCmap(r, cmapDir, opts); err != nil {
		return nil, err
	}
	f.computeHeights(r)
	if err := f.parseWidths(r); err != nil {
		return nil, err
	}

	if f.Unicode && len(f.Ctgdata) == 256 {
		f.Unicode = false
	}
	return f, nil
}

// sortedTags returns the table tags in a deterministic order, used
// when re-emitting a subset font.
func (f *Font) sortedTags() []string {
	tags := make([]string, 0, len(f.Tables))
	for tag := range f.Tables {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func calcChecksum(b []byte) uint32 {
	var sum uint32
	n := len(b) &^ 3
	for i := 0; i < n; i += 4 {
		sum += uint32(b[i])<<24 | uint32(b[i+1])<<16 | uint32(b[i+2])<<8 | uint32(b[i+3])
	}
	if rem := len(b) - n; rem > 0 {
		var last [4]byte
		copy(last[:], b[n:])
		sum += uint32(last[0])<<24 | uint32(last[1])<<16 | uint32(last[2])<<8 | uint32(last[3])
	}
	return sum
}
