package font

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestDefaultWidthRule(t *testing.T) {
	// with no dw, no MissingWidth, and no width at code 32: falls back to 600.
	e, err := LoadJSON([]byte(`{"type":"Type1","cw":{"0":100}}`), "Foo", "", Mode{}, DefaultConfig())
	test.Error(t, err)
	test.T(t, e.DW, 600)

	// falls back to cw[32] when present.
	e, err = LoadJSON([]byte(`{"type":"Type1","cw":{"32":123}}`), "Foo", "", Mode{}, DefaultConfig())
	test.Error(t, err)
	test.T(t, e.DW, 123)

	// falls back to desc.MissingWidth ahead of cw[32].
	e, err = LoadJSON([]byte(`{"type":"Type1","desc":{"MissingWidth":234},"cw":{"0":600}}`), "Foo", "", Mode{}, DefaultConfig())
	test.Error(t, err)
	test.T(t, e.DW, 234)
}

func TestCidOnPdfa(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PDFA = true
	_, err := LoadJSON([]byte(`{"type":"cidfont0","cw":{"0":600}}`), "Foo", "", Mode{}, cfg)
	if err != ErrCidOnPdfa {
		t.Fatalf("expected ErrCidOnPdfa, got %v", err)
	}
}

func TestSetNameCoreFamily(t *testing.T) {
	e, err := LoadJSON([]byte(`{"type":"Core","cw":{"32":278}}`), "Helvetica", "B", Mode{Bold: true}, DefaultConfig())
	test.Error(t, err)
	test.T(t, e.Name, "Helvetica-Bold")
}

func TestBadFormat(t *testing.T) {
	_, err := LoadJSON([]byte(`{"cw":{"0":1}}`), "Foo", "", Mode{}, DefaultConfig())
	if err == nil {
		t.Fatal("expected error for missing type")
	}
}
