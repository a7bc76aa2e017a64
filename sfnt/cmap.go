package sfnt

import (
	"fmt"

	"github.com/inkwell/fontembed/bytesio"
)

type cmapDirEntry struct {
	PlatformID, EncodingID uint16
	Offset                 uint32
}

// parseCmapDirectory implements phase 5.
func (f *Font) parseCmapDirectory(r *bytesio.Reader) ([]cmapDirEntry, error) {
	rec, ok := f.Tables["cmap"]
	if !ok {
		return nil, nil
	}
	numTables, err := r.U16(rec.Offset + 2)
	if err != nil {
		return nil, err
	}
	dir := make([]cmapDirEntry, numTables)
	for i := uint16(0); i < numTables; i++ {
		entry := rec.Offset + 4 + uint32(i)*8
		platformID, err := r.U16(entry)
		if err != nil {
			return nil, err
		}
		encodingID, err := r.U16(entry + 2)
		if err != nil {
			return nil, err
		}
		offset, err := r.U32(entry + 4)
		if err != nil {
			return nil, err
		}
		dir[i] = cmapDirEntry{platformID, encodingID, rec.Offset + offset}
	}
	return dir, nil
}

// resolveCmap implements phase 11: decode only the subtable matching
// the configured (platformID, encodingID) pair.
func (f *Font) resolveCmap(r *bytesio.Reader, dir []cmapDirEntry, opts Options) error {
	var subtableOffset uint32
	found := false
	for _, e := range dir {
		if e.PlatformID == opts.PlatformID && e.EncodingID == opts.EncodingID {
			subtableOffset = e.Offset
			found = true
			break
		}
	}
	if found {
		format, err := r.U16(subtableOffset)
		if err != nil {
			return err
		}
		if err := f.decodeCmapSubtable(r, subtableOffset, format); err != nil {
			return err
		}
	}
	if _, ok := f.Ctgdata[0]; !ok {
		f.Ctgdata[0] = 0
	}
	return nil
}

func (f *Font) decodeCmapSubtable(r *bytesio.Reader, off uint32, format uint16) error {
	switch format {
	case 0:
		return f.decodeCmap0(r, off)
	case 2:
		return f.decodeCmap2(r, off)
	case 4:
		return f.decodeCmap4(r, off)
	case 6:
		return f.decodeCmap6(r, off)
	case 8:
		return f.decodeCmap8(r, off)
	case 10:
		return f.decodeCmap10(r, off)
	case 12:
		return f.decodeCmap12(r, off)
	case 13, 14:
		return nil // preserved placeholders, no-op
	default:
		return fmt.Errorf("%w: format %d", ErrUnsupportedCmapFormat, format)
	}
}

func (f *Font) decodeCmap0(r *bytesio.Reader, off uint32) error {
	for c := uint32(0); c < 256; c++ {
		g, err := r.U8(off + 6 + c)
		if err != nil {
			return err
		}
		f.Ctgdata[c] = uint16(g)
	}
	return nil
}

func (f *Font) decodeCmap2(r *bytesio.Reader, off uint32) error {
	keys := make([]uint16, 256)
	numSubHeaders := uint16(0)
	for hb := 0; hb < 256; hb++ {
		k, err := r.U16(off + 6 + uint32(hb)*2)
		if err != nil {
			return err
		}
		ish := k / 8
		keys[hb] = ish
		if numSubHeaders <= ish {
			numSubHeaders = ish + 1
		}
	}
	subHeaderBase := off + 6 + 512
	type subHeader struct {
		firstCode, entryCount uint16
		idDelta               int16
		idRangeOffset         uint16
	}
	headers := make([]subHeader, numSubHeaders)
	for ish := uint16(0); ish < numSubHeaders; ish++ {
		base := subHeaderBase + uint32(ish)*8
		firstCode, err := r.U16(base)
		if err != nil {
			return err
		}
		entryCount, err := r.U16(base + 2)
		if err != nil {
			return err
		}
		idDelta, err := r.I16(base + 4)
		if err != nil {
			return err
		}
		idRangeOffset, err := r.U16(base + 6)
		if err != nil {
			return err
		}
		normalized := (uint32(idRangeOffset) - (2 + uint32(numSubHeaders-ish-1)*8)) / 2
		headers[ish] = subHeader{firstCode, entryCount, idDelta, uint16(normalized)}
	}
	glyphArrayBase := subHeaderBase + uint32(numSubHeaders)*8
	rec := f.Tables["cmap"]
	glyphArrayEnd := rec.Offset + rec.Length
	glyphArrayLen := (glyphArrayEnd - glyphArrayBase) / 2

	readGlyphArray := func(i uint32) (uint16, error) {
		if i >= glyphArrayLen {
			return 0, nil
		}
		return r.U16(glyphArrayBase + i*2)
	}

	for hb := 0; hb < 256; hb++ {
		ish := keys[hb]
		if ish == 0 {
			g, err := readGlyphArray(0)
			if err != nil {
				return err
			}
			f.Ctgdata[uint32(hb)] = g
			continue
		}
		sh := headers[ish]
		for low := uint32(sh.firstCode); low < uint32(sh.firstCode)+uint32(sh.entryCount); low++ {
			code := (uint32(hb) << 8) | low
			idx := uint32(sh.idRangeOffset) + (low - uint32(sh.firstCode))
			g, err := readGlyphArray(idx)
			if err != nil {
				return err
			}
			glyph := int32(g) + int32(sh.idDelta)
			glyph = glyph % 65536
			if glyph < 0 {
				glyph += 65536
			}
			f.Ctgdata[code] = uint16(glyph)
		}
	}
	return nil
}

func (f *Font) decodeCmap4(r *bytesio.Reader, off uint32) error {
	segCountX2Raw, err := r.U16(off + 6)
	if err != nil {
		return err
	}
	segCountX2 := uint32(segCountX2Raw)
	segCount := segCountX2 / 2

	endCountBase := off + 14
	startCountBase := endCountBase + segCountX2
	idDeltaBase := startCountBase + segCountX2
	idRangeOffsetBase := idDeltaBase + segCountX2

	for i := uint32(0); i < segCount; i++ {
		endCount, err := r.U16(endCountBase + uint32(i)*2)
		if err != nil {
			return err
		}
		startCount, err := r.U16(startCountBase + uint32(i)*2)
		if err != nil {
			return err
		}
		idDelta, err := r.I16(idDeltaBase + uint32(i)*2)
		if err != nil {
			return err
		}
		idRangeOffset, err := r.U16(idRangeOffsetBase + uint32(i)*2)
		if err != nil {
			return err
		}
		if startCount == 0xFFFF && endCount == 0xFFFF {
			continue
		}
		for chr := uint32(startCount); chr <= uint32(endCount); chr++ {
			var glyph int32
			if idRangeOffset == 0 {
				glyph = (int32(idDelta) + int32(chr)) % 65536
			} else {
				addr := idRangeOffsetBase + uint32(i)*2 + uint32(idRangeOffset) + 2*(chr-uint32(startCount))
				g, err := r.U16(addr)
				if err != nil {
					return err
				}
				glyph = (int32(g) + int32(idDelta)) % 65536
			}
			if glyph < 0 {
				glyph += 65536
			}
			f.Ctgdata[chr] = uint16(glyph)
		}
	}
	return nil
}

func (f *Font) decodeCmap6(r *bytesio.Reader, off uint32) error {
	firstCode, err := r.U16(off + 6)
	if err != nil {
		return err
	}
	entryCount, err := r.U16(off + 8)
	if err != nil {
		return err
	}
	for i := uint32(0); i < uint32(entryCount); i++ {
		g, err := r.U16(off + 10 + i*2)
		if err != nil {
			return err
		}
		f.Ctgdata[uint32(firstCode)+i] = g
	}
	return nil
}

func (f *Font) decodeCmap8(r *bytesio.Reader, off uint32) error {
	numGroups, err := r.U32(off + 8192 + 12)
	if err != nil {
		return err
	}
	groupBase := off + 8192 + 16
	for i := uint32(0); i < numGroups; i++ {
		base := groupBase + i*12
		start, err := r.U32(base)
		if err != nil {
			return err
		}
		end, err := r.U32(base + 4)
		if err != nil {
			return err
		}
		startGlyph, err := r.U32(base + 8)
		if err != nil {
			return err
		}
		for c := start; c <= end; c++ {
			glyph := uint16(startGlyph + (c - start))
			// Preserved source quirk: the mapping is stored and then
			// immediately overwritten with 0, nullifying every Format 8
			// assignment. See design notes for the open question.
			f.Ctgdata[c] = glyph
			f.Ctgdata[c] = 0
		}
	}
	return nil
}

func (f *Font) decodeCmap10(r *bytesio.Reader, off uint32) error {
	startCharCode, err := r.U32(off + 12)
	if err != nil {
		return err
	}
	numChars, err := r.U32(off + 16)
	if err != nil {
		return err
	}
	for i := uint32(0); i < numChars; i++ {
		g, err := r.U16(off + 20 + i*2)
		if err != nil {
			return err
		}
		f.Ctgdata[startCharCode+i] = g
	}
	return nil
}

func (f *Font) decodeCmap12(r *bytesio.Reader, off uint32) error {
	numGroups, err := r.U32(off + 12)
	if err != nil {
		return err
	}
	groupBase := off + 16
	for i := uint32(0); i < numGroups; i++ {
		base := groupBase + i*12
		start, err := r.U32(base)
		if err != nil {
			return err
		}
		end, err := r.U32(base + 4)
		if err != nil {
			return err
		}
		startGlyph, err := r.U32(base + 8)
		if err != nil {
			return err
		}
		for c := start; c <= end; c++ {
			f.Ctgdata[c] = uint16(startGlyph + (c - start))
		}
	}
	return nil
}
