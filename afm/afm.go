// Package afm parses Adobe Font Metrics text files, the metrics source
// for the 14 standard Core PDF fonts.
package afm

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
)

// BBox is a glyph or font bounding box in font design units.
type BBox [4]int

// Metrics is the normalized result of parsing an AFM file.
type Metrics struct {
	Name           string // FullName, renamed, stripped to [A-Za-z0-9_-]
	FontName       string // FontName, unrenamed; the symbolic-flag test key
	FamilyName     string
	Weight         string
	CharacterSet   string
	Version        string
	EncodingScheme string

	ItalicAngle         int
	UnderlinePosition   int
	UnderlineThickness  int
	CapHeight           int
	XHeight             int
	Ascent              int
	Descent             int
	StemH               int
	StemV               int
	IsFixedPitch        bool
	FontBBox            BBox

	Flags        int
	MissingWidth int
	MaxWidth     int
	AvgWidth     int

	// CW maps character code (0-255) to advance width in font units.
	CW [256]int
	// CBBox maps character code to its glyph bounding box, where present.
	CBBox map[int]BBox
}

var validNameChar = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// Parse decodes an AFM text buffer into Metrics.
//
// Lines are split on whitespace and dispatched on the first token, the
// same shape the source format uses. Post-processing (setCharWidths)
// and the fallback rules run after the full scan, mirroring the order
// the original importer applies them.
func Parse(b []byte) (*Metrics, error) {
	m := &Metrics{CBBox: make(map[int]BBox)}
	cwidths := make(map[int]int)
	haveBBox := false

	lines := strings.Split(string(b), "\n")
	inCharMetrics := false
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "StartCharMetrics":
			inCharMetrics = true
			continue
		case "EndCharMetrics":
			inCharMetrics = false
			continue
		}
		if inCharMetrics {
			parseCharMetricsLine(line, cwidths, m.CBBox)
			continue
		}
		switch fields[0] {
		case "FontName":
			m.FontName = strings.Join(fields[1:], " ")
			m.Name = m.FontName
		case "FullName":
			m.Name = strings.Join(fields[1:], " ")
		case "FamilyName":
			m.FamilyName = strings.Join(fields[1:], " ")
		case "Weight":
			m.Weight = strings.Join(fields[1:], " ")
		case "CharacterSet":
			m.CharacterSet = strings.Join(fields[1:], " ")
		case "Version":
			m.Version = strings.Join(fields[1:], " ")
		case "EncodingScheme":
			m.EncodingScheme = strings.Join(fields[1:], " ")
		case "ItalicAngle":
			m.ItalicAngle = atoi(fields[1])
		case "UnderlinePosition":
			m.UnderlinePosition = atoi(fields[1])
		case "UnderlineThickness":
			m.UnderlineThickness = atoi(fields[1])
		case "CapHeight":
			m.CapHeight = atoi(fields[1])
		case "XHeight":
			m.XHeight = atoi(fields[1])
		case "Ascender":
			m.Ascent = atoi(fields[1])
		case "Descender":
			m.Descent = atoi(fields[1])
		case "StdHW":
			m.StemH = atoi(fields[1])
		case "StdVW":
			m.StemV = atoi(fields[1])
		case "IsFixedPitch":
			m.IsFixedPitch = fields[1] == "true"
		case "FontBBox":
			if len(fields) >= 5 {
				m.FontBBox = BBox{atoi(fields[1]), atoi(fields[2]), atoi(fields[3]), atoi(fields[4])}
				haveBBox = true
			}
		}
	}

	// The source overwrites these unconditionally from FontBBox even
	// when the AFM carried explicit Ascender/Descender lines; that
	// quirk is preserved here rather than fixed.
	if haveBBox {
		m.Descent = m.FontBBox[1]
		m.Ascent = m.FontBBox[3]
	}
	if m.CapHeight == 0 {
		m.CapHeight = m.Ascent
	}

	setCharWidths(m, cwidths)

	m.Flags = 0
	if m.FontName == "Symbol" || m.FontName == "ZapfDingbats" {
		m.Flags |= 4
	} else {
		m.Flags |= 32
	}
	if m.IsFixedPitch {
		m.Flags |= 1
	}
	if m.ItalicAngle != 0 {
		m.Flags |= 64
	}

	m.Name = validNameChar.ReplaceAllString(m.Name, "")
	if m.Name == "" {
		return nil, fmt.Errorf("afm: FontName is empty after stripping invalid characters")
	}
	return m, nil
}

// parseCharMetricsLine handles one "C cid ; WX w ; N name ; B x0 y0 x1 y1 ;" line.
func parseCharMetricsLine(line string, cwidths map[int]int, cbbox map[int]BBox) {
	parts := strings.Split(line, ";")
	code := -1
	width := 0
	var bbox BBox
	haveBBox := false
	for _, part := range parts {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "C":
			if len(fields) > 1 {
				code = atoi(fields[1])
			}
		case "WX":
			if len(fields) > 1 {
				width = atoi(fields[1])
			}
		case "B":
			if len(fields) >= 5 {
				bbox = BBox{atoi(fields[1]), atoi(fields[2]), atoi(fields[3]), atoi(fields[4])}
				haveBBox = true
			}
		}
	}
	if code < 0 {
		return
	}
	cwidths[code] = width
	if haveBBox {
		cbbox[code] = bbox
	}
}

func setCharWidths(m *Metrics, cwidths map[int]int) {
	if w, ok := cwidths[32]; ok && w != 0 {
		m.MissingWidth = w
	} else {
		m.MissingWidth = 600
	}
	max := m.MissingWidth
	sum, n := 0, 0
	for c := 0; c < 256; c++ {
		w, ok := cwidths[c]
		if !ok {
			w = m.MissingWidth
		} else {
			sum += w
			n++
		}
		if max < w {
			max = w
		}
		m.CW[c] = w
	}
	m.MaxWidth = max
	if n > 0 {
		m.AvgWidth = int(roundFloat(float64(sum) / float64(n)))
	}
}

func roundFloat(f float64) float64 {
	if f < 0 {
		return float64(int(f - 0.5))
	}
	return float64(int(f + 0.5))
}

func atoi(s string) int {
	s = strings.TrimSuffix(s, ".")
	f, n := strconv.ParseDecimal([]byte(s))
	if n == 0 {
		return 0
	}
	return int(f)
}
