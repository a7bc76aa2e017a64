package pdfemit

import (
	"fmt"
	"sort"
	"strings"
)

// Segment is one entry of a compacted CID width array. An
// Interval segment ("first last width") covers a run of consecutive
// CIDs sharing one width; a range segment ("first [w1 w2 ...]") covers
// a run of consecutive CIDs with individually varying widths.
type Segment struct {
	First, Last int
	Width       int // meaningful when Interval
	Widths      []int
	Interval    bool
}

// CompactWidths implements the width-range compaction algorithm.
// codes must already be filtered to the characters that should appear
// (width != dw, and, when subsetting, present in subsetChars); the
// scan itself only needs the sorted list and cw.
func CompactWidths(cw map[int]int, codes []int) []Segment {
	sorted := append([]int{}, codes...)
	sort.Ints(sorted)

	var segments []Segment
	var cur *Segment
	for _, c := range sorted {
		w := cw[c]
		switch {
		case cur == nil:
			cur = &Segment{First: c, Last: c, Width: w, Widths: []int{w}, Interval: true}
		case c == cur.Last+1 && cur.Interval && w == cur.Width:
			cur.Last = c
		case c == cur.Last+1 && cur.Interval && len(cur.Widths) == 1:
			cur.Interval = false
			cur.Widths = append(cur.Widths, w)
			cur.Last = c
		case c == cur.Last+1 && !cur.Interval:
			cur.Widths = append(cur.Widths, w)
			cur.Last = c
		default:
			segments = append(segments, *cur)
			cur = &Segment{First: c, Last: c, Width: w, Widths: []int{w}, Interval: true}
		}
	}
	if cur != nil {
		segments = append(segments, *cur)
	}

	return mergeAdjacent(segments)
}

// mergeAdjacent implements the post-pass: fold a following
// segment into a preceding range segment when it is adjacent, the
// preceding segment is a range (not an interval), and the following
// segment is itself a range or is a short (<4 width) interval.
func mergeAdjacent(segments []Segment) []Segment {
	if len(segments) == 0 {
		return segments
	}
	out := []Segment{segments[0]}
	for _, cur := range segments[1:] {
		prev := &out[len(out)-1]
		mergeable := cur.First == prev.Last+1 && !prev.Interval &&
			(!cur.Interval || len(cur.Widths) < 4)
		if mergeable {
			if cur.Interval {
				for c := cur.First; c <= cur.Last; c++ {
					prev.Widths = append(prev.Widths, cur.Width)
				}
			} else {
				prev.Widths = append(prev.Widths, cur.Widths...)
			}
			prev.Last = cur.Last
			continue
		}
		out = append(out, cur)
	}
	return out
}

// FormatW renders segments as the body of a PDF /W array.
func FormatW(segments []Segment) string {
	var b strings.Builder
	b.WriteString("[")
	for i, s := range segments {
		if i > 0 {
			b.WriteString(" ")
		}
		if s.Interval {
			fmt.Fprintf(&b, "%d %d %d", s.First, s.Last, s.Width)
		} else {
			fmt.Fprintf(&b, "%d [", s.First)
			for j, w := range s.Widths {
				if j > 0 {
					b.WriteString(" ")
				}
				fmt.Fprintf(&b, "%d", w)
			}
			b.WriteString("]")
		}
	}
	b.WriteString("]")
	return b.String()
}

// DecodeW reconstructs a code->width map from segments, the inverse of
// CompactWidths, used to verify the width-range round-trip invariant.
func DecodeW(segments []Segment) map[int]int {
	out := make(map[int]int)
	for _, s := range segments {
		if s.Interval {
			for c := s.First; c <= s.Last; c++ {
				out[c] = s.Width
			}
			continue
		}
		for i, w := range s.Widths {
			out[s.First+i] = w
		}
	}
	return out
}

// SimpleWidths renders a plain /Widths array for a byte-keyed simple
// font, covering firstChar..lastChar inclusive, falling back to dw for
// codes absent from cw.
func SimpleWidths(cw map[int]int, dw, firstChar, lastChar int) string {
	var b strings.Builder
	b.WriteString("[")
	for c := firstChar; c <= lastChar; c++ {
		if c > firstChar {
			b.WriteString(" ")
		}
		w, ok := cw[c]
		if !ok {
			w = dw
		}
		fmt.Fprintf(&b, "%d", w)
	}
	b.WriteString("]")
	return b.String()
}
