package pdfemit

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestCompactWidthsRoundTrip(t *testing.T) {
	// decoding a compacted width table must reproduce every input width exactly.
	cw := map[int]int{
		65: 600, 66: 600, 67: 600, 68: 600, // interval run
		70: 500, 71: 520, 72: 480, // range run
		90: 700,
	}
	codes := []int{65, 66, 67, 68, 70, 71, 72, 90}
	segments := CompactWidths(cw, codes)
	got := DecodeW(segments)
	for _, c := range codes {
		test.T(t, got[c], cw[c])
	}
}

func TestCompactWidthsInterval(t *testing.T) {
	cw := map[int]int{10: 300, 11: 300, 12: 300}
	segments := CompactWidths(cw, []int{10, 11, 12})
	test.T(t, len(segments), 1)
	test.T(t, segments[0].Interval, true)
	test.T(t, segments[0].First, 10)
	test.T(t, segments[0].Last, 12)
	test.T(t, segments[0].Width, 300)
}

func TestCompactWidthsRange(t *testing.T) {
	cw := map[int]int{10: 300, 11: 400, 12: 500}
	segments := CompactWidths(cw, []int{10, 11, 12})
	test.T(t, len(segments), 1)
	test.T(t, segments[0].Interval, false)
	test.T(t, segments[0].Widths, []int{300, 400, 500})
}

func TestCompactWidthsMergeShortRangeIntoPreceding(t *testing.T) {
	// a short trailing interval (<4 widths) adjacent to a preceding
	// range segment folds into it rather than starting a new segment.
	cw := map[int]int{10: 100, 11: 200, 12: 300, 13: 300, 14: 300}
	segments := CompactWidths(cw, []int{10, 11, 12, 13, 14})
	test.T(t, len(segments), 1)
	test.T(t, segments[0].Widths, []int{100, 200, 300, 300, 300})
}

func TestSimpleWidths(t *testing.T) {
	cw := map[int]int{65: 700}
	got := SimpleWidths(cw, 600, 65, 67)
	test.T(t, got, "[700 600 600]")
}
