package sfnt

import (
	"fmt"
	"sort"

	parse "github.com/tdewolff/parse/v2"

	"github.com/inkwell/fontembed/bytesio"
)

// keptTables lists the tables carried into a subset font. cmap is
// dropped: glyph selection for CID fonts is supplied
// externally via a CIDToGIDMap.
var keptTables = []string{"head", "hhea", "hmtx", "maxp", "cvt ", "fpgm", "prep", "glyf", "loca"}

// Subset produces a standalone sfnt blob containing only the glyphs
// reachable from chars (a set of character codes present in the
// original font's Ctgdata), including the transitive closure over
// composite glyph references.
//
// Grounded on github.com/tdewolff/font's sfnt_subset.go Subset method,
// adapted to the offset-addressed reader and to this engine's simpler
// table-preservation rule (only glyf/loca/head are rewritten; the
// remaining kept tables are carried through unchanged, since glyph
// indices are not renumbered).
func Subset(f *Font, chars map[uint32]bool) ([]byte, error) {
	r := bytesio.New(f.Data)

	subglyphs := map[uint16]bool{0: true}
	var worklist []uint16
	worklist = append(worklist, 0)
	for c := range chars {
		if g, ok := f.Ctgdata[c]; ok {
			if !subglyphs[g] {
				subglyphs[g] = true
				worklist = append(worklist, g)
			}
		}
	}

	// Composite closure via explicit worklist, rather than the
	// source's outer-loop-plus-accumulator shape.
	for len(worklist) > 0 {
		g := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		hdr, ok, err := f.glyfHeader(r, g)
		if err != nil {
			return nil, err
		}
		if !ok || hdr.NumberOfContours >= 0 {
			continue
		}
		deps, err := f.compositeDependencies(r, g)
		if err != nil {
			return nil, err
		}
		for _, d := range deps {
			if !subglyphs[d] {
				subglyphs[d] = true
				worklist = append(worklist, d)
			}
		}
	}

	glyfRec, ok := f.Tables["glyf"]
	if !ok {
		return nil, fmt.Errorf("%w: glyf", ErrMissingTable)
	}
	totNumGlyphs := len(f.Loca) - 1
	if totNumGlyphs < 0 {
		totNumGlyphs = 0
	}

	newGlyf := parse.NewBinaryWriter([]byte{})
	newLoca := make([]uint32, 0, totNumGlyphs+1)
	newLoca = append(newLoca, 0)
	for g := 0; g < totNumGlyphs; g++ {
		start, end, hasOutline := f.glyphRange(uint16(g))
		if subglyphs[uint16(g)] && hasOutline {
			data, err := r.Bytes(glyfRec.Offset+start, end-start)
			if err != nil {
				return nil, err
			}
			newGlyf.WriteBytes(data)
			if len(data)%2 != 0 {
				newGlyf.WriteBytes([]byte{0})
			}
		}
		newLoca = append(newLoca, uint32(newGlyf.Len()))
	}
	glyfBytes := padTo4(newGlyf.Bytes())

	shortLoca := f.IndexToLocFormat == 0
	locaWriter := parse.NewBinaryWriter([]byte{})
	if shortLoca {
		for _, off := range newLoca {
			locaWriter.WriteUint16(uint16(off / 2))
		}
	} else {
		for _, off := range newLoca {
			locaWriter.WriteUint32(off)
		}
	}
	locaBytes := padTo4(locaWriter.Bytes())

	tableData := make(map[string][]byte, len(keptTables))
	for _, tag := range keptTables {
		switch tag {
		case "glyf":
			tableData[tag] = glyfBytes
		case "loca":
			tableData[tag] = locaBytes
		default:
			rec, ok := f.Tables[tag]
			if !ok {
				continue
			}
			raw, err := r.Bytes(rec.Offset, rec.Length)
			if err != nil {
				return nil, err
			}
			tableData[tag] = padTo4(append([]byte{}, raw...))
		}
	}
	if headData, ok := tableData["head"]; ok {
		if len(headData) >= 12 {
			headData[8], headData[9], headData[10], headData[11] = 0, 0, 0, 0
		}
	}

	var tags []string
	for tag := range tableData {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	n := len(tags)
	searchRange := uint16(1)
	entrySelector := uint16(0)
	for searchRange*2 <= uint16(n) {
		searchRange *= 2
		entrySelector++
	}
	searchRange *= 16
	rangeShift := uint16(n)*16 - searchRange

	header := parse.NewBinaryWriter([]byte{})
	header.WriteUint32(0x00010000)
	header.WriteUint16(uint16(n))
	header.WriteUint16(searchRange)
	header.WriteUint16(entrySelector)
	header.WriteUint16(rangeShift)

	dirSize := uint32(n) * 16
	offset := uint32(12) + dirSize
	type placed struct {
		tag    string
		offset uint32
		length uint32
	}
	var placements []placed
	for _, tag := range tags {
		data := tableData[tag]
		placements = append(placements, placed{tag, offset, uint32(len(data))})
		offset += uint32(len(data))
	}

	dir := parse.NewBinaryWriter([]byte{})
	for _, p := range placements {
		checksum := calcChecksum(tableData[p.tag])
		dir.WriteString(p.tag)
		dir.WriteUint32(checksum)
		dir.WriteUint32(p.offset)
		dir.WriteUint32(p.length)
	}

	out := parse.NewBinaryWriter([]byte{})
	out.WriteBytes(header.Bytes())
	out.WriteBytes(dir.Bytes())
	var headOffset uint32
	for _, p := range placements {
		if p.tag == "head" {
			headOffset = p.offset
		}
		out.WriteBytes(tableData[p.tag])
	}

	final := out.Bytes()
	wholeChecksum := calcChecksum(final)
	adjustment := uint32(0xB1B0AFBA) - wholeChecksum
	if int(headOffset)+12 <= len(final) {
		final[headOffset+8] = byte(adjustment >> 24)
		final[headOffset+9] = byte(adjustment >> 16)
		final[headOffset+10] = byte(adjustment >> 8)
		final[headOffset+11] = byte(adjustment)
	}
	return final, nil
}

func padTo4(b []byte) []byte {
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	return b
}
