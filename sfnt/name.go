package sfnt

import (
	"fmt"
	"regexp"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"

	"github.com/inkwell/fontembed/bytesio"
)

var validPostScriptChar = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// parseName implements phase 7: find the first nameID==6 record
// (PostScript name), decode it per the platform/encoding table, and
// strip it to [A-Za-z0-9_-].
func (f *Font) parseName(r *bytesio.Reader) error {
	rec, ok := f.Tables["name"]
	if !ok {
		return nil
	}
	count, err := r.U16(rec.Offset + 2)
	if err != nil {
		return err
	}
	storageOffset, err := r.U16(rec.Offset + 4)
	if err != nil {
		return err
	}
	for i := uint16(0); i < count; i++ {
		entry := rec.Offset + 6 + uint32(i)*12
		platformID, err := r.U16(entry)
		if err != nil {
			return err
		}
		encodingID, err := r.U16(entry + 2)
		if err != nil {
			return err
		}
		nameID, err := r.U16(entry + 6)
		if err != nil {
			return err
		}
		length, err := r.U16(entry + 8)
		if err != nil {
			return err
		}
		strOffset, err := r.U16(entry + 10)
		if err != nil {
			return err
		}
		if nameID != 6 {
			continue
		}
		raw, err := r.Bytes(rec.Offset+uint32(storageOffset)+uint32(strOffset), uint32(length))
		if err != nil {
			return err
		}
		name, err := decodeNameRecord(platformID, encodingID, raw)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrEncodingDecode, err)
		}
		name = validPostScriptChar.ReplaceAllString(name, "")
		if name == "" {
			return fmt.Errorf("%w: empty after stripping", ErrEncodingDecode)
		}
		f.PostScriptName = name
		return nil
	}
	return nil
}

// decodeNameRecord converts a raw name-table string to UTF-8 per the
// platform/encoding table in phase 7.
func decodeNameRecord(platformID, encodingID uint16, raw []byte) (string, error) {
	var dec *encoding.Decoder
	switch {
	case platformID == 0:
		dec = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	case platformID == 1:
		dec = charmap.Macintosh.NewDecoder()
	case platformID == 3 && encodingID == 3:
		dec = simplifiedchinese.GB18030.NewDecoder() // CP936
	case platformID == 3 && encodingID == 4:
		dec = traditionalchinese.Big5.NewDecoder() // CP950
	case platformID == 3 && encodingID == 5:
		dec = korean.EUCKR.NewDecoder() // CP949
	default:
		dec = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	}
	out, err := dec.Bytes(raw)
	if err != nil {
		if platformID == 1 {
			out, err = charmap.Windows1252.NewDecoder().Bytes(raw)
		}
		if err != nil {
			return "", err
		}
	}
	return string(out), nil
}
