package afm

import (
	"testing"

	"github.com/tdewolff/test"
)

const sampleAFM = `StartFontMetrics 4.1
FontName Helvetica-Sample
FullName Helvetica Sample
FamilyName Helvetica
Weight Medium
ItalicAngle 0
IsFixedPitch false
FontBBox -166 -225 1000 931
UnderlinePosition -100
UnderlineThickness 50
StartCharMetrics 3
C 32 ; WX 278 ; N space ; B 0 0 0 0 ;
C 65 ; WX 667 ; N A ; B 19 0 648 718 ;
C 66 ; WX 667 ; N B ; B 74 0 628 718 ;
EndCharMetrics
EndFontMetrics
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sampleAFM))
	test.Error(t, err)
	test.T(t, m.Name, "HelveticaSample")
	test.T(t, m.MissingWidth, 278)
	test.T(t, m.CW[32], 278)
	test.T(t, m.CW[65], 667)
	test.T(t, m.CW[200], 278) // falls back to MissingWidth
	test.T(t, m.CBBox[65], BBox{19, 0, 648, 718})
}

func TestParseEmptyName(t *testing.T) {
	_, err := Parse([]byte("FontName !!!\nStartCharMetrics 0\nEndCharMetrics\n"))
	if err == nil {
		t.Fatal("expected error for empty stripped name")
	}
}

func TestFlags(t *testing.T) {
	m, err := Parse([]byte("FontName Symbol\nItalicAngle -12\nStartCharMetrics 0\nEndCharMetrics\n"))
	test.Error(t, err)
	test.T(t, m.Flags, 4|64)
}
