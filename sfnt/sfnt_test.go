package sfnt

import (
	"encoding/binary"
	"testing"

	"github.com/tdewolff/test"
)

// buildTestFont assembles a minimal, valid, hand-built sfnt with two
// glyphs (.notdef and 'A') and a single format-6 cmap subtable at
// platform 3 / encoding 1, for exercising the parser without needing a
// real font fixture on disk.
func buildTestFont() []byte {
	be := binary.BigEndian

	head := make([]byte, 54)
	be.PutUint32(head[12:], headMagic)
	be.PutUint16(head[18:], 1000) // unitsPerEm
	be.PutUint16(head[36:], uint16(int16(0)))
	be.PutUint16(head[38:], uint16(int16(0)))
	be.PutUint16(head[40:], uint16(int16(700)))
	be.PutUint16(head[42:], uint16(int16(700)))
	be.PutUint16(head[44:], 0) // macStyle
	be.PutUint16(head[50:], 0) // indexToLocFormat: short

	hhea := make([]byte, 36)
	be.PutUint16(hhea[4:], uint16(int16(800)))
	descender := int16(-200)
	be.PutUint16(hhea[6:], uint16(descender))
	be.PutUint16(hhea[8:], 0)
	be.PutUint16(hhea[10:], 700)
	be.PutUint16(hhea[32:], 2) // numHMetrics

	maxp := make([]byte, 6)
	be.PutUint16(maxp[4:], 2) // numGlyphs

	hmtx := make([]byte, 8)
	be.PutUint16(hmtx[0:], 0)   // glyph0 advance
	be.PutUint16(hmtx[2:], 0)   // glyph0 lsb
	be.PutUint16(hmtx[4:], 700) // glyph1 advance
	be.PutUint16(hmtx[6:], 0)   // glyph1 lsb

	glyf0 := make([]byte, 10) // .notdef: empty outline header
	glyf1 := make([]byte, 10)
	be.PutUint16(glyf1[0:], 0)                  // numberOfContours
	be.PutUint16(glyf1[2:], uint16(int16(0)))   // xMin
	be.PutUint16(glyf1[4:], uint16(int16(0)))   // yMin
	be.PutUint16(glyf1[6:], uint16(int16(700))) // xMax
	be.PutUint16(glyf1[8:], uint16(int16(700))) // yMax
	glyf := append(append([]byte{}, glyf0...), glyf1...)

	loca := make([]byte, 6)
	be.PutUint16(loca[0:], 0)
	be.PutUint16(loca[2:], uint16(len(glyf0)/2))
	be.PutUint16(loca[4:], uint16(len(glyf)/2))

	subtable := make([]byte, 12)
	be.PutUint16(subtable[0:], 6) // format
	be.PutUint16(subtable[2:], 12)
	be.PutUint16(subtable[4:], 0)
	be.PutUint16(subtable[6:], 65) // firstCode 'A'
	be.PutUint16(subtable[8:], 1)  // entryCount
	be.PutUint16(subtable[10:], 1) // glyphID

	cmap := make([]byte, 4+8+len(subtable))
	be.PutUint16(cmap[0:], 0)
	be.PutUint16(cmap[2:], 1)
	be.PutUint16(cmap[4:], 3) // platformID
	be.PutUint16(cmap[6:], 1) // encodingID
	be.PutUint32(cmap[8:], 12)
	copy(cmap[12:], subtable)

	tables := map[string][]byte{
		"head": head, "hhea": hhea, "maxp": maxp, "hmtx": hmtx,
		"loca": loca, "glyf": glyf, "cmap": cmap,
	}
	tags := []string{"cmap", "glyf", "head", "hhea", "hmtx", "loca", "maxp"}

	n := len(tags)
	dirSize := n * 16
	offset := 12 + dirSize
	type placed struct {
		tag             string
		offset, length int
	}
	var placements []placed
	for _, tag := range tags {
		data := tables[tag]
		for len(data)%4 != 0 {
			data = append(data, 0)
		}
		tables[tag] = data
		placements = append(placements, placed{tag, offset, len(data)})
		offset += len(data)
	}

	buf := make([]byte, offset)
	be.PutUint32(buf[0:], 0x00010000)
	be.PutUint16(buf[4:], uint16(n))
	pos := 12
	for _, p := range placements {
		copy(buf[pos:], p.tag)
		be.PutUint32(buf[pos+4:], calcChecksum(tables[p.tag]))
		be.PutUint32(buf[pos+8:], uint32(p.offset))
		be.PutUint32(buf[pos+12:], uint32(p.length))
		pos += 16
	}
	for _, p := range placements {
		copy(buf[p.offset:], tables[p.tag])
	}
	return buf
}

func TestParse(t *testing.T) {
	data := buildTestFont()
	f, err := Parse(data, Options{PlatformID: 3, EncodingID: 1, Unicode: true})
	test.Error(t, err)
	test.T(t, f.UnitsPerEm, uint16(1000))
	test.T(t, f.NumGlyphs, uint16(2))
	glyph, ok := f.Ctgdata[65]
	test.T(t, ok, true)
	test.T(t, glyph, uint16(1))
	test.T(t, f.CW[65], 700)
}

func TestParseBadMagic(t *testing.T) {
	data := buildTestFont()
	data[0] = 'O'
	data[1] = 'T'
	data[2] = 'T'
	data[3] = 'O'
	_, err := Parse(data, DefaultOptions())
	if err == nil {
		t.Fatal("expected bad magic error")
	}
}

func TestSubsetInvariants(t *testing.T) {
	data := buildTestFont()
	f, err := Parse(data, Options{PlatformID: 3, EncodingID: 1, Unicode: true})
	test.Error(t, err)

	out, err := Subset(f, map[uint32]bool{65: true})
	test.Error(t, err)

	version := binary.BigEndian.Uint32(out[0:4])
	test.T(t, version, uint32(0x00010000))

	whole := calcChecksum(out)
	test.T(t, whole, uint32(0xB1B0AFBA))
}
