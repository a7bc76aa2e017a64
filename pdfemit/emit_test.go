package pdfemit

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tdewolff/test"

	"github.com/inkwell/fontembed/font"
	"github.com/inkwell/fontembed/registry"
)

func noFiles(dir, file string) ([]byte, error) {
	return nil, nil
}

func coreEntry(family, style string) *font.Entry {
	e := font.NewEntry()
	e.Family = family
	e.Style = style
	e.Type = font.Core
	e.Name = family
	e.CW[32] = 278
	e.CW[65] = 667
	e.DW = 600
	return e
}

func TestEmitObjectNumberFormula(t *testing.T) {
	reg := registry.New(0)
	families := []struct{ family, style string }{
		{"Helvetica", ""}, {"Helvetica", "B"}, {"HelveticaBI", ""},
		{"Helvetica", "I"}, {"FreeSans", ""}, {"FreeSans", "B"},
		{"FreeSans", "I"}, {"FreeSans", "BI"}, {"FreeSans", "BIUDO"},
		{"Symbol", ""},
	}
	for _, f := range families {
		e := coreEntry(f.family, f.style)
		e.Diff = "1 /a" // shared diff pool entry exercised by every font
		_, err := reg.Register(e)
		test.Error(t, err)
	}

	beforeEmit := reg.ObjectNumber()
	_, after, err := Emit(reg, IdentityEncryptor{}, noFiles, font.DefaultConfig())
	test.Error(t, err)

	// Core fonts allocate no extra objects beyond the shared diff pool
	// object; the formula must account for exactly one diff object.
	test.T(t, after, beforeEmit+len(reg.EncDiffs()))
}

func TestEmitWritesFontsBlock(t *testing.T) {
	reg := registry.New(0)
	e := coreEntry("Helvetica", "")
	_, err := reg.Register(e)
	test.Error(t, err)

	out, _, err := Emit(reg, IdentityEncryptor{}, noFiles, font.DefaultConfig())
	test.Error(t, err)
	if !bytes.Contains(out, []byte("/Type /Font")) {
		t.Fatal("expected emitted block to contain a font dictionary")
	}
	if !strings.Contains(string(out), "/BaseFont /Helvetica") {
		t.Fatal("expected BaseFont to be set")
	}
}

func TestEmitCIDFontExtraObjects(t *testing.T) {
	reg := registry.New(0)
	e := font.NewEntry()
	e.Family = "cid0jp"
	e.Type = font.CidFont0
	e.Name = "cid0jp"
	e.CIDInfo = font.CIDInfo{Registry: "Adobe", Ordering: "Japan1", Supplement: 7}
	e.CW[1] = 1000
	e.DW = 1000
	_, err := reg.Register(e)
	test.Error(t, err)

	beforeEmit := reg.ObjectNumber()
	_, after, err := Emit(reg, IdentityEncryptor{}, noFiles, font.DefaultConfig())
	test.Error(t, err)

	// descriptor + descendant CIDFont + ToUnicode stream.
	test.T(t, after, beforeEmit+3)
}
