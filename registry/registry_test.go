package registry

import (
	"testing"

	"github.com/tdewolff/test"

	"github.com/inkwell/fontembed/font"
)

func TestComputeKeyHelveticaBI(t *testing.T) {
	key, style := ComputeKey("HelveticaBI", "")
	test.T(t, key, "helveticaBI")
	test.T(t, style, "BI")
}

func TestComputeKeySymbol(t *testing.T) {
	key, style := ComputeKey("Symbol", "B")
	test.T(t, key, "symbol")
	test.T(t, style, "")
}

func TestRegisterEmptyFamily(t *testing.T) {
	r := New(0)
	e := font.NewEntry()
	_, err := r.Register(e)
	if err != ErrEmptyFamily {
		t.Fatalf("expected ErrEmptyFamily, got %v", err)
	}
}

func TestEncDiffPooling(t *testing.T) {
	r := New(0)
	a := font.NewEntry()
	a.Family, a.Diff = "Foo", "1 /a 2 /b"
	b := font.NewEntry()
	b.Family, b.Style, b.Diff = "Foo", "B", "1 /a 2 /b"

	a, err := r.Register(a)
	test.Error(t, err)
	b, err = r.Register(b)
	test.Error(t, err)
	test.T(t, a.DiffN, b.DiffN)
}

func TestFilePooling(t *testing.T) {
	r := New(0)
	a := font.NewEntry()
	a.Family, a.File, a.Dir, a.Subset = "Foo", "foo.ttf", "/fonts", true
	a.SubsetChars[65] = true
	b := font.NewEntry()
	b.Family, b.Style, b.File, b.Dir, b.Subset = "Foo", "B", "foo.ttf", "/fonts", false
	b.SubsetChars[66] = true

	_, err := r.Register(a)
	test.Error(t, err)
	_, err = r.Register(b)
	test.Error(t, err)

	group := r.Files()["/fonts/foo.ttf"]
	test.T(t, len(group.Keys), 2)
	test.T(t, group.Subset, false) // AND of true, false
	test.T(t, len(group.SubsetChars), 2)
}

func TestRegisterDedup(t *testing.T) {
	r := New(0)
	a := font.NewEntry()
	a.Family = "Foo"
	first, err := r.Register(a)
	test.Error(t, err)

	dup := font.NewEntry()
	dup.Family = "Foo"
	second, err := r.Register(dup)
	test.Error(t, err)
	test.T(t, first, second)
}
