// Package fontstack implements the LIFO active-font cursor with a
// derived-metrics cache keyed by (font, size, spacing, stretching).
package fontstack

import (
	"fmt"
	"strings"

	"github.com/inkwell/fontembed/font"
	"github.com/inkwell/fontembed/registry"
)

const (
	defaultSizePt      = 10.0
	defaultSpacing     = 0.0
	defaultStretching  = 1.0
	kunit              = 1.0
)

// Frame is a single StackFrame: {font-key, style, size_pt, spacing, stretching}.
type Frame struct {
	Key        string
	Style      string
	SizePt     float64
	Spacing    float64
	Stretching float64
}

// Metrics is the derived, size-scaled metrics for one cached frame.
type Metrics struct {
	USize        float64 // size / kunit
	CW           map[int]float64
	CBBox        map[int][4]float64
	FBBox        [4]float64
	DW           float64
	AvgWidth     float64
	MaxWidth     float64
	MissingWidth float64
	Command      string // literal "BT /F<i> <size> Tf ET\r"
}

// Resolver looks up an already-registered font by its registry key.
type Resolver func(key string) (*font.Entry, bool)

// Stack is a LIFO stack of active-font frames over a shared Resolver
// and derived-metrics cache.
type Stack struct {
	frames   []Frame
	cache    map[Frame]*Metrics
	resolve  Resolver
	nextI    int
}

// New creates an empty Stack backed by resolve, typically
// registry.Registry.Lookup wrapped to hide the error return.
func New(resolve Resolver) *Stack {
	return &Stack{cache: make(map[Frame]*Metrics), resolve: resolve}
}

// FromRegistry builds a Resolver over reg.
func FromRegistry(reg *registry.Registry) Resolver {
	return func(key string) (*font.Entry, bool) {
		e, err := reg.Lookup(key)
		if err != nil {
			return nil, false
		}
		return e, true
	}
}

// Push resolves family (a comma-separated fallback list) against the
// resolver, keyed by registry.ComputeKey(family, style), and pushes
// the winning frame. A nil size/spacing/stretching inherits from the
// top of stack, or the package defaults on an empty stack.
func (s *Stack) Push(family, style string, size, spacing, stretching *float64) (*Frame, *font.Entry, error) {
	var chosen *font.Entry
	var chosenKey string
	for _, fam := range strings.Split(family, ",") {
		fam = strings.TrimSpace(fam)
		if fam == "" {
			continue
		}
		key, _ := registry.ComputeKey(fam, style)
		if e, ok := s.resolve(key); ok {
			chosen, chosenKey = e, key
			break
		}
	}
	if chosen == nil {
		return nil, nil, fmt.Errorf("%w: %q", ErrNoFamily, family)
	}
	if chosen.I == 0 {
		s.nextI++
		chosen.I = s.nextI
	}

	top, hasTop := s.top()
	f := Frame{
		Key:        chosenKey,
		Style:      style,
		SizePt:     pick(size, hasTop, top.SizePt, defaultSizePt),
		Spacing:    pick(spacing, hasTop, top.Spacing, defaultSpacing),
		Stretching: pick(stretching, hasTop, top.Stretching, defaultStretching),
	}
	s.frames = append(s.frames, f)
	return &f, chosen, nil
}

// Pop removes and returns the top frame, or false on an empty stack.
func (s *Stack) Pop() (Frame, bool) {
	if len(s.frames) == 0 {
		return Frame{}, false
	}
	f := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return f, true
}

func (s *Stack) top() (Frame, bool) {
	if len(s.frames) == 0 {
		return Frame{}, false
	}
	return s.frames[len(s.frames)-1], true
}

func pick(v *float64, hasTop bool, topVal, def float64) float64 {
	if v != nil {
		return *v
	}
	if hasTop {
		return topVal
	}
	return def
}

// Derive returns the cached (or freshly computed) Metrics for frame,
// scaling e's raw metrics by the frame's size/spacing/stretching.
func (s *Stack) Derive(frame Frame, e *font.Entry) *Metrics {
	if m, ok := s.cache[frame]; ok {
		return m
	}
	cratio := frame.SizePt / 1000.0
	wratio := cratio * frame.Stretching

	m := &Metrics{
		USize: frame.SizePt / kunit,
		CW:    make(map[int]float64, len(e.CW)),
		CBBox: make(map[int][4]float64, len(e.CBBox)),
	}
	for c, w := range e.CW {
		m.CW[c] = float64(w) * wratio
	}
	for c, b := range e.CBBox {
		m.CBBox[c] = [4]float64{
			float64(b[0]) * wratio, float64(b[1]) * cratio,
			float64(b[2]) * wratio, float64(b[3]) * cratio,
		}
	}
	m.FBBox = [4]float64{
		float64(e.Desc.FontBBox[0]) * wratio, float64(e.Desc.FontBBox[1]) * cratio,
		float64(e.Desc.FontBBox[2]) * wratio, float64(e.Desc.FontBBox[3]) * cratio,
	}
	m.DW = float64(e.DW) * wratio
	m.AvgWidth = float64(e.Desc.AvgWidth) * wratio
	m.MaxWidth = float64(e.Desc.MaxWidth) * wratio
	m.MissingWidth = float64(e.Desc.MissingWidth) * wratio
	m.Command = fmt.Sprintf("BT /F%d %g Tf ET\r", e.I, frame.SizePt)

	s.cache[frame] = m
	return m
}

// Width measures the text-space width of a sequence of Unicode code
// points: soft hyphen (173) contributes 0; otherwise cw[u]
// or dw is used, and spacing*stretching*(n-1) is added for the
// inter-character gaps.
func Width(m *Metrics, runes []rune, spacing, stretching float64) float64 {
	var total float64
	n := 0
	for _, u := range runes {
		if u == 173 {
			continue
		}
		if w, ok := m.CW[int(u)]; ok {
			total += w
		} else {
			total += m.DW
		}
		n++
	}
	if n > 1 {
		total += spacing * stretching * float64(n-1)
	}
	return total
}

// SpaceWidth adds the same inter-character spacing term for a run of
// nSpaces consecutive space characters.
func SpaceWidth(m *Metrics, nSpaces int, spacing, stretching float64) float64 {
	total := float64(nSpaces) * m.CW[32]
	if nSpaces > 1 {
		total += spacing * stretching * float64(nSpaces-1)
	}
	return total
}

// SubstitutionTable maps a missing codepoint to an ordered list of
// fallback alternates.
type SubstitutionTable map[rune][]rune

// Resolve implements missing-character substitution: if u is
// absent from cw, the first alternate present in cw is returned;
// otherwise u itself is returned unchanged.
func (t SubstitutionTable) Resolve(cw map[int]int, u rune) rune {
	if _, ok := cw[int(u)]; ok {
		return u
	}
	for _, alt := range t[u] {
		if _, ok := cw[int(alt)]; ok {
			return alt
		}
	}
	return u
}
