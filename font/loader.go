package font

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// definitionJSON is the on-disk shape of a persisted FontEntry.
//
// encoding/json is used here without an ecosystem alternative in the
// retrieved corpus (see DESIGN.md) for this one leaf: no example repo
// in the pack pulls in a third-party JSON library.
type definitionJSON struct {
	Type         string            `json:"type"`
	CW           map[string]int    `json:"cw"`
	CBBox        map[string][4]int `json:"cbbox,omitempty"`
	Desc         *descriptorJSON   `json:"desc,omitempty"`
	Dw           *int              `json:"dw,omitempty"`
	Up           int               `json:"up,omitempty"`
	Ut           int               `json:"ut,omitempty"`
	Enc          string            `json:"enc,omitempty"`
	Diff         string            `json:"diff,omitempty"`
	File         string            `json:"file,omitempty"`
	Dir          string            `json:"dir,omitempty"`
	Size1        int               `json:"size1,omitempty"`
	Size2        *int              `json:"size2,omitempty"`
	OriginalSize int               `json:"originalsize,omitempty"`
	CIDInfo      *cidInfoJSON      `json:"cidinfo,omitempty"`
}

type descriptorJSON struct {
	Ascent       int    `json:"Ascent,omitempty"`
	Descent      int    `json:"Descent,omitempty"`
	Leading      int    `json:"Leading,omitempty"`
	CapHeight    int    `json:"CapHeight,omitempty"`
	XHeight      int    `json:"XHeight,omitempty"`
	ItalicAngle  int    `json:"ItalicAngle,omitempty"`
	Flags        int    `json:"Flags,omitempty"`
	FontBBox     [4]int `json:"FontBBox,omitempty"`
	StemV        int    `json:"StemV,omitempty"`
	StemH        int    `json:"StemH,omitempty"`
	AvgWidth     int    `json:"AvgWidth,omitempty"`
	MaxWidth     int    `json:"MaxWidth,omitempty"`
	MissingWidth int    `json:"MissingWidth,omitempty"`
}

type cidInfoJSON struct {
	Registry   string `json:"Registry"`
	Ordering   string `json:"Ordering"`
	Supplement int    `json:"Supplement"`
}

// LocateDefinition implements step 1: search each directory for
// key.json, then family.json. Returns the winning path and whether the
// style-specific file was missing (forcing fakestyle).
func LocateDefinition(dirs []string, key, family string) (path string, fakeStyle bool, err error) {
	for _, dir := range dirs {
		p := filepath.Join(dir, key+".json")
		if _, err := os.Stat(p); err == nil {
			return p, false, nil
		}
	}
	for _, dir := range dirs {
		p := filepath.Join(dir, family+".json")
		if _, err := os.Stat(p); err == nil {
			return p, true, nil
		}
	}
	return "", false, fmt.Errorf("%w: no definition for key=%q family=%q", ErrNotReadable, key, family)
}

// Load reads and parses a font definition file from disk.
func Load(path string, family, style string, mode Mode, cfg Config) (*Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotReadable, err)
	}
	return LoadJSON(data, family, style, mode, cfg)
}

// LoadJSON implements steps 2-7 over an already-read definition buffer.
func LoadJSON(data []byte, family, style string, mode Mode, cfg Config) (*Entry, error) {
	var def definitionJSON
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	if def.Type == "" || len(def.CW) == 0 {
		return nil, ErrBadFormat
	}

	var typ Type
	switch def.Type {
	case "Core":
		typ = Core
	case "TrueType":
		typ = TrueType
	case "TrueTypeUnicode":
		typ = TrueTypeUnicode
	case "Type1":
		typ = Type1
	case "cidfont0":
		typ = CidFont0
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, def.Type)
	}
	if typ == CidFont0 && cfg.PDFA {
		return nil, ErrCidOnPdfa
	}

	e := NewEntry()
	e.Family = family
	e.Style = style
	e.Type = typ
	e.Mode = mode
	e.PDFA = cfg.PDFA
	e.Compress = cfg.Compress
	e.Enc = def.Enc
	e.Diff = def.Diff
	e.File = def.File
	e.Dir = def.Dir
	e.Length1 = def.Size1
	e.Length2 = def.Size2
	e.OriginalSize = def.OriginalSize
	e.UP = def.Up
	e.UT = def.Ut

	for k, v := range def.CW {
		code, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		e.CW[code] = v
	}
	for k, v := range def.CBBox {
		code, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		e.CBBox[code] = v
	}
	if def.Desc != nil {
		e.Desc = Descriptor{
			Ascent: def.Desc.Ascent, Descent: def.Desc.Descent, Leading: def.Desc.Leading,
			CapHeight: def.Desc.CapHeight, XHeight: def.Desc.XHeight,
			ItalicAngle: def.Desc.ItalicAngle, Flags: def.Desc.Flags,
			FontBBox: def.Desc.FontBBox, StemV: def.Desc.StemV, StemH: def.Desc.StemH,
			AvgWidth: def.Desc.AvgWidth, MaxWidth: def.Desc.MaxWidth, MissingWidth: def.Desc.MissingWidth,
		}
	}
	if def.CIDInfo != nil {
		e.CIDInfo = CIDInfo{Registry: def.CIDInfo.Registry, Ordering: def.CIDInfo.Ordering, Supplement: def.CIDInfo.Supplement}
	}

	// step 5: default width rule.
	switch {
	case def.Dw != nil:
		e.DW = *def.Dw
	case e.Desc.MissingWidth > 0:
		e.DW = e.Desc.MissingWidth
	case e.CW[32] > 0:
		e.DW = e.CW[32]
	default:
		e.DW = 600
	}

	setName(e, cfg)
	if e.Type == TrueTypeUnicode {
		e.Enc = "Identity-H"
	}

	return e, nil
}

// setName implements step 6.
func setName(e *Entry, cfg Config) {
	if e.Type == Core {
		if name, ok := corePostScriptName(e.Family, e.Style); ok {
			e.Name = name
			if cfg.PDFA {
				e.Name = "pdfa" + e.Name
			}
			return
		}
	}
	e.Name = e.Family + e.Style
}

// SetArtificialStyles implements step 7, run when the caller
// could not find a style-specific definition file (fakestyle == true).
func SetArtificialStyles(e *Entry) {
	if !e.FakeStyle {
		return
	}
	if e.Mode.Bold {
		e.Name += "Bold"
		if e.Desc.StemV == 0 {
			e.Desc.StemV = 123
		} else {
			e.Desc.StemV = int(float64(e.Desc.StemV)*1.75 + 0.5)
		}
	}
	if e.Mode.Italic {
		e.Name += "Italic"
		if e.Desc.ItalicAngle == 0 {
			e.Desc.ItalicAngle = -11
		} else {
			e.Desc.ItalicAngle -= 11
		}
		e.Desc.Flags |= 64
	}
}
