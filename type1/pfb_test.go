package type1

import (
	"testing"

	"github.com/tdewolff/test"
)

func buildSegment(segType byte, data []byte) []byte {
	n := len(data)
	seg := []byte{segmentMarker, segType, byte(n), byte(n >> 8), byte(n >> 16), byte(n >> 24)}
	return append(seg, data...)
}

func TestParsePFB(t *testing.T) {
	var pfb []byte
	pfb = append(pfb, buildSegment(segmentASCII, []byte("%!PS-AdobeFont-1.0\n"))...)
	pfb = append(pfb, buildSegment(segmentBinary, []byte{0x01, 0x02, 0x03})...)
	pfb = append(pfb, buildSegment(segmentASCII, []byte("0000\ncleartomark\n"))...)
	pfb = append(pfb, segmentMarker, segmentEOF)

	f, err := ParsePFB(pfb)
	test.Error(t, err)
	test.T(t, f.Length1, len("%!PS-AdobeFont-1.0\n"))
	test.T(t, f.Length2, 3)
	test.T(t, f.Length3, len("0000\ncleartomark\n"))
}

func TestParsePFBMalformed(t *testing.T) {
	_, err := ParsePFB([]byte{0x00, 0x01})
	if err == nil {
		t.Fatal("expected malformed error")
	}
}
