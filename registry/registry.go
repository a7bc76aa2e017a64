// Package registry implements the keyed font-deduplication pool, the
// encoding-differences pool, and PDF object-number allocation.
package registry

import (
	"strings"

	"github.com/inkwell/fontembed/font"
)

// FileGroup tracks a font file shared by one or more registered
// aliases (e.g. Helvetica Bold and Helvetica BoldOblique sharing a
// single PFB). Subset is the logical AND of every alias's Subset flag:
// the file is only subset-embedded if every alias agrees.
type FileGroup struct {
	Keys        []string
	Dir         string
	File        string
	Length1     int
	Length2     *int
	Subset      bool
	initialized bool
	SubsetChars map[int]bool
	N           int // pooled object number, set during emission
}

func (g *FileGroup) addAlias(key string, e *font.Entry) {
	g.Keys = append(g.Keys, key)
	if !g.initialized {
		g.Dir, g.File = e.Dir, e.File
		g.Length1, g.Length2 = e.Length1, e.Length2
		g.Subset = e.Subset
		g.initialized = true
	} else {
		g.Subset = g.Subset && e.Subset
	}
	for c := range e.SubsetChars {
		g.SubsetChars[c] = true
	}
}

// Registry is the keyed font pool plus its two collaborating pools.
type Registry struct {
	byKey        map[string]*font.Entry
	encDiffs     []string
	encDiffIndex map[string]int
	files        map[string]*FileGroup
	objectNumber int
}

// New creates an empty Registry with its object-number counter
// starting at objectNumberStart (the caller's current PDF object
// count).
func New(objectNumberStart int) *Registry {
	return &Registry{
		byKey:        make(map[string]*font.Entry),
		encDiffIndex: make(map[string]int),
		files:        make(map[string]*FileGroup),
		objectNumber: objectNumberStart,
	}
}

// ObjectNumber returns the current value of the shared object counter.
func (r *Registry) ObjectNumber() int {
	return r.objectNumber
}

// ComputeKey implements the key/style normalization rule: family
// endings of "I" or "B" are stripped and folded into style (in
// canonical B-then-I order); symbol/zapfdingbats families always carry
// an empty style.
func ComputeKey(family, style string) (key, normalizedStyle string) {
	lf := strings.ToLower(family)
	if lf == "symbol" || lf == "zapfdingbats" {
		return lf, ""
	}

	bold := strings.Contains(style, "B")
	italic := strings.Contains(style, "I")
	for strings.HasSuffix(family, "I") || strings.HasSuffix(family, "B") {
		suffix := family[len(family)-1:]
		family = family[:len(family)-1]
		if suffix == "B" {
			bold = true
		} else {
			italic = true
		}
	}
	lf = strings.ToLower(family)
	s := ""
	if bold {
		s += "B"
	}
	if italic {
		s += "I"
	}
	return lf + s, s
}

// Lookup returns the registered entry for key, or ErrMissingFont.
func (r *Registry) Lookup(key string) (*font.Entry, error) {
	e, ok := r.byKey[key]
	if !ok {
		return nil, ErrMissingFont
	}
	return e, nil
}

// Register deduplicates e by its computed key: an existing entry with
// the same key is returned unchanged. Otherwise e is assigned its key
// and style, given the next object number, and pooled into the
// encoding-diff and file-group pools.
func (r *Registry) Register(e *font.Entry) (*font.Entry, error) {
	if e.Family == "" {
		return nil, ErrEmptyFamily
	}
	key, style := ComputeKey(e.Family, e.Style)
	if existing, ok := r.byKey[key]; ok {
		return existing, nil
	}
	e.Key = key
	e.Style = style
	e.Mode.Bold = strings.Contains(style, "B")
	e.Mode.Italic = strings.Contains(style, "I")

	r.objectNumber++
	e.N = r.objectNumber
	r.byKey[key] = e

	if e.Diff != "" {
		idx, ok := r.encDiffIndex[e.Diff]
		if !ok {
			r.encDiffs = append(r.encDiffs, e.Diff)
			idx = len(r.encDiffs) // 1-based
			r.encDiffIndex[e.Diff] = idx
		}
		e.DiffN = idx
	}

	if e.File != "" {
		fileKey := e.Dir + "/" + e.File
		group, ok := r.files[fileKey]
		if !ok {
			group = &FileGroup{SubsetChars: make(map[int]bool)}
			r.files[fileKey] = group
		}
		group.addAlias(key, e)
	}

	return e, nil
}

// EncDiffs returns the pooled encoding-difference strings in emission
// order (index i corresponds to pool object i+1).
func (r *Registry) EncDiffs() []string {
	return r.encDiffs
}

// Files returns the pooled file groups keyed by "dir/file".
func (r *Registry) Files() map[string]*FileGroup {
	return r.files
}

// Fonts returns every registered entry, keyed by its registry key.
func (r *Registry) Fonts() map[string]*font.Entry {
	return r.byKey
}

// AllocObjectNumber increments and returns the shared counter, for
// objects the emitter creates outside of Register (file streams,
// descriptors, CIDToGIDMap and ToUnicode streams).
func (r *Registry) AllocObjectNumber() int {
	r.objectNumber++
	return r.objectNumber
}
