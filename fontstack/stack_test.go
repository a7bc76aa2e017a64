package fontstack

import (
	"testing"

	"github.com/tdewolff/test"

	"github.com/inkwell/fontembed/font"
)

func testResolver() Resolver {
	fonts := map[string]*font.Entry{
		"helvetica": {Key: "helvetica", N: 1, CW: map[int]int{32: 278, 65: 667}, DW: 600},
	}
	return func(key string) (*font.Entry, bool) {
		e, ok := fonts[key]
		return e, ok
	}
}

func TestPushInheritsSize(t *testing.T) {
	// a nil size on push inherits the size of the frame beneath it.
	s := New(testResolver())
	tenPt := 10.0
	_, _, err := s.Push("Helvetica", "", &tenPt, nil, nil)
	test.Error(t, err)

	_, _, err = s.Push("Helvetica", "", nil, nil, nil)
	test.Error(t, err)
	top, _ := s.top()
	test.T(t, top.SizePt, 10.0)
}

func TestPushEmptyStackDefaults(t *testing.T) {
	s := New(testResolver())
	_, _, err := s.Push("Helvetica", "", nil, nil, nil)
	test.Error(t, err)
	top, _ := s.top()
	test.T(t, top.SizePt, defaultSizePt)
}

func TestPushNoFamily(t *testing.T) {
	s := New(testResolver())
	_, _, err := s.Push("Nonexistent", "", nil, nil, nil)
	if err == nil {
		t.Fatal("expected ErrNoFamily")
	}
}

func TestSubstitutionResolve(t *testing.T) {
	table := SubstitutionTable{0x2019: {'\'', '`'}}
	cw := map[int]int{32: 278, '\'': 200}
	got := table.Resolve(cw, 0x2019)
	test.T(t, got, rune('\''))

	got = table.Resolve(cw, 'A') // present, unchanged
	test.T(t, got, rune('A'))
}
