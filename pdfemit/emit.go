// Package pdfemit turns a populated registry.Registry into the PDF
// indirect-object bytes for every pooled encoding-difference, font
// file, and font resource it holds.
package pdfemit

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"sort"

	"github.com/inkwell/fontembed/font"
	"github.com/inkwell/fontembed/registry"
	"github.com/inkwell/fontembed/sfnt"
	"github.com/inkwell/fontembed/type1"
)

// Emit writes every object the registry needs to produce, in the
// order (a) encoding-diff objects, (b) font-file stream objects, (c)
// font-dictionary objects (plus their descriptors, CIDToGIDMap and
// ToUnicode streams), and returns the assembled bytes along with the
// object-number counter's final value.
func Emit(reg *registry.Registry, enc Encryptor, readFile FileReader, cfg font.Config) ([]byte, int, error) {
	var buf bytes.Buffer

	diffObjNum := make(map[int]int, len(reg.EncDiffs()))
	for i, diff := range reg.EncDiffs() {
		objNum := reg.AllocObjectNumber()
		diffObjNum[i+1] = objNum
		writeEncodingDiff(&buf, objNum, diff)
	}

	files := reg.Files()
	fileKeys := make([]string, 0, len(files))
	for k := range files {
		fileKeys = append(fileKeys, k)
	}
	sort.Strings(fileKeys)
	for _, fk := range fileKeys {
		group := files[fk]
		objNum := reg.AllocObjectNumber()
		group.N = objNum
		if err := emitFontFile(&buf, enc, readFile, objNum, group); err != nil {
			return nil, 0, err
		}
	}

	fonts := reg.Fonts()
	keys := make([]string, 0, len(fonts))
	for k := range fonts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		e := fonts[key]
		if e.File != "" {
			e.FileN = files[e.Dir+"/"+e.File].N
		}
		if e.Diff != "" {
			e.DiffN = diffObjNum[e.DiffN]
		}
		if err := emitFont(&buf, reg, e); err != nil {
			return nil, 0, err
		}
	}

	return buf.Bytes(), reg.ObjectNumber(), nil
}

func writeEncodingDiff(buf *bytes.Buffer, objNum int, diff string) {
	fmt.Fprintf(buf, "%d 0 obj\n<< /Type /Encoding /BaseEncoding /WinAnsiEncoding /Differences [%s] >>\nendobj\n", objNum, diff)
}

// emitFontFile reads a pooled file once for every alias sharing it,
// optionally subsets it (TrueType files only; Type1 PFBs are embedded
// whole since Type1 subsetting is out of scope), and writes the
// resulting stream object. glyph indices are not renumbered by
// sfnt.Subset, so every alias of a TrueType file can safely share one
// subset built from the union of their SubsetChars.
func emitFontFile(buf *bytes.Buffer, enc Encryptor, readFile FileReader, objNum int, group *registry.FileGroup) error {
	raw, err := readFile(group.Dir, group.File)
	if err != nil {
		return fmt.Errorf("%w: %s/%s: %v", ErrFileUnreadable, group.Dir, group.File, err)
	}
	raw, err = gunzipIfCompressed(raw)
	if err != nil {
		return err
	}

	isTrueType := len(raw) >= 4 && (string(raw[:4]) == "\x00\x01\x00\x00" || string(raw[:4]) == "true" || string(raw[:4]) == "OTTO")
	if isTrueType {
		return emitTrueTypeFile(buf, enc, objNum, group, raw)
	}
	return emitType1File(buf, enc, objNum, group, raw)
}

func emitTrueTypeFile(buf *bytes.Buffer, enc Encryptor, objNum int, group *registry.FileGroup, raw []byte) error {
	body := raw
	if group.Subset {
		f, err := sfnt.Parse(raw, sfnt.DefaultOptions())
		if err != nil {
			return err
		}
		chars := make(map[uint32]bool, len(group.SubsetChars))
		for c := range group.SubsetChars {
			chars[uint32(c)] = true
		}
		body, err = sfnt.Subset(f, chars)
		if err != nil {
			return err
		}
	}
	uncompressedLen := len(body)

	var deflated bytes.Buffer
	zw := zlib.NewWriter(&deflated)
	if _, err := zw.Write(body); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}

	payload, err := enc.EncryptStream(deflated.Bytes(), objNum)
	if err != nil {
		return err
	}
	fmt.Fprintf(buf, "%d 0 obj\n<< /Length %d /Filter /FlateDecode /Length1 %d >>\nstream\n",
		objNum, len(payload), uncompressedLen)
	buf.Write(payload)
	buf.WriteString("\nendstream\nendobj\n")
	return nil
}

// emitType1File decodes the PFB segment structure and embeds
// Header‖Body‖Trailer deflated, with Length1/2/3 taken from the
// decoded segments rather than the caller-supplied JSON sizes, which
// describe the original file and do not account for the stripped PFB
// segment markers.
func emitType1File(buf *bytes.Buffer, enc Encryptor, objNum int, group *registry.FileGroup, raw []byte) error {
	pfb, err := type1.ParsePFB(raw)
	if err != nil {
		return err
	}
	body := append(append(append([]byte{}, pfb.Header...), pfb.Body...), pfb.Trailer...)

	var deflated bytes.Buffer
	zw := zlib.NewWriter(&deflated)
	if _, err := zw.Write(body); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}

	payload, err := enc.EncryptStream(deflated.Bytes(), objNum)
	if err != nil {
		return err
	}
	fmt.Fprintf(buf, "%d 0 obj\n<< /Length %d /Filter /FlateDecode /Length1 %d /Length2 %d /Length3 %d >>\nstream\n",
		objNum, len(payload), pfb.Length1, pfb.Length2, pfb.Length3)
	buf.Write(payload)
	buf.WriteString("\nendstream\nendobj\n")
	return nil
}

func gunzipIfCompressed(raw []byte) ([]byte, error) {
	if len(raw) < 2 || raw[0] != 0x1f || raw[1] != 0x8b {
		return raw, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

// emitFont dispatches on e.Type and writes the one or two objects (a
// simple font dictionary plus FontDescriptor, or a Type0 wrapper plus
// CIDFont descendant, descriptor and ToUnicode stream) that make up
// the font's entry in the document.
func emitFont(buf *bytes.Buffer, reg *registry.Registry, e *font.Entry) error {
	switch e.Type {
	case font.Core:
		writeCoreFont(buf, e)
	case font.Type1, font.TrueType:
		writeSimpleEmbeddedFont(buf, reg, e)
	case font.TrueTypeUnicode, font.CidFont0:
		writeCIDFont(buf, reg, e)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownType, e.Type)
	}
	return nil
}

func writeCoreFont(buf *bytes.Buffer, e *font.Entry) {
	firstChar, lastChar := charRange(e.CW)
	fmt.Fprintf(buf, "%d 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /%s ", e.N, pdfName(e.Name))
	writeEncodingRef(buf, e)
	fmt.Fprintf(buf, " /FirstChar %d /LastChar %d /Widths %s >>\nendobj\n",
		firstChar, lastChar, SimpleWidths(e.CW, e.DW, firstChar, lastChar))
}

func writeSimpleEmbeddedFont(buf *bytes.Buffer, reg *registry.Registry, e *font.Entry) {
	descN := reg.AllocObjectNumber()
	firstChar, lastChar := charRange(e.CW)
	subtype := "TrueType"
	fileKey := "FontFile2"
	if e.Type == font.Type1 {
		subtype = "Type1"
		fileKey = "FontFile"
	}
	fmt.Fprintf(buf, "%d 0 obj\n<< /Type /Font /Subtype /%s /BaseFont /%s ", e.N, subtype, pdfName(e.Name))
	writeEncodingRef(buf, e)
	fmt.Fprintf(buf, " /FirstChar %d /LastChar %d /Widths %s /FontDescriptor %d 0 R >>\nendobj\n",
		firstChar, lastChar, SimpleWidths(e.CW, e.DW, firstChar, lastChar), descN)
	writeDescriptor(buf, descN, e, fileKey)
}

func writeCIDFont(buf *bytes.Buffer, reg *registry.Registry, e *font.Entry) {
	descN := reg.AllocObjectNumber()
	cidFontN := reg.AllocObjectNumber()
	toUniN := reg.AllocObjectNumber()

	cidSubtype := "CIDFontType0"
	fileKey := "FontFile3"
	if e.Type == font.TrueTypeUnicode {
		cidSubtype = "CIDFontType2"
		fileKey = "FontFile2"
	}

	fmt.Fprintf(buf, "%d 0 obj\n<< /Type /Font /Subtype /Type0 /BaseFont /%s /Encoding /Identity-H "+
		"/DescendantFonts [%d 0 R] /ToUnicode %d 0 R >>\nendobj\n",
		e.N, pdfName(e.Name), cidFontN, toUniN)

	widthCodes := subsettableCodes(e)
	segments := CompactWidths(e.CW, widthCodes)
	fmt.Fprintf(buf, "%d 0 obj\n<< /Type /Font /Subtype /%s /BaseFont /%s "+
		"/CIDSystemInfo << /Registry (%s) /Ordering (%s) /Supplement %d >> "+
		"/FontDescriptor %d 0 R /DW %d /W %s /CIDToGIDMap /Identity >>\nendobj\n",
		cidFontN, cidSubtype, pdfName(e.Name),
		e.CIDInfo.Registry, e.CIDInfo.Ordering, e.CIDInfo.Supplement,
		descN, e.DW, FormatW(segments))

	writeDescriptor(buf, descN, e, fileKey)
	writeToUnicode(buf, toUniN, e, unicodeCodes(e))
}

func writeDescriptor(buf *bytes.Buffer, objNum int, e *font.Entry, fileKey string) {
	fmt.Fprintf(buf, "%d 0 obj\n<< /Type /FontDescriptor /FontName /%s /Flags %d "+
		"/FontBBox [%d %d %d %d] /ItalicAngle %d /Ascent %d /Descent %d /Leading %d "+
		"/CapHeight %d /XHeight %d /StemV %d /StemH %d /AvgWidth %d /MaxWidth %d /MissingWidth %d",
		objNum, pdfName(e.Name), e.Desc.Flags,
		e.Desc.FontBBox[0], e.Desc.FontBBox[1], e.Desc.FontBBox[2], e.Desc.FontBBox[3],
		e.Desc.ItalicAngle, e.Desc.Ascent, e.Desc.Descent, e.Desc.Leading,
		e.Desc.CapHeight, e.Desc.XHeight, e.Desc.StemV, e.Desc.StemH,
		e.Desc.AvgWidth, e.Desc.MaxWidth, e.Desc.MissingWidth)
	if e.FileN != 0 {
		fmt.Fprintf(buf, " /%s %d 0 R", fileKey, e.FileN)
	}
	buf.WriteString(" >>\nendobj\n")
}

func writeEncodingRef(buf *bytes.Buffer, e *font.Entry) {
	switch {
	case e.DiffN != 0:
		fmt.Fprintf(buf, "/Encoding %d 0 R", e.DiffN)
	case e.Enc != "":
		fmt.Fprintf(buf, "/Encoding /%s", e.Enc)
	}
}

// writeToUnicode emits a ToUnicode CMap stream mapping each emitted
// code (the CID, since glyph indices are not renumbered and Identity-H
// is always used) to its Unicode code point, taken from
// CIDInfo.Uni2CID when populated and falling back to the identity
// mapping otherwise.
func writeToUnicode(buf *bytes.Buffer, objNum int, e *font.Entry, codes []int) {
	cidToRune := make(map[int]rune, len(codes))
	for r, cid := range e.CIDInfo.Uni2CID {
		cidToRune[cid] = r
	}

	var body bytes.Buffer
	body.WriteString("/CIDInit /ProcSet findresource begin\n12 dict begin\nbegincmap\n")
	body.WriteString("1 begincodespacerange\n<0000> <FFFF>\nendcodespacerange\n")
	fmt.Fprintf(&body, "%d beginbfchar\n", len(codes))
	for _, c := range codes {
		r, ok := cidToRune[c]
		if !ok {
			r = rune(c)
		}
		fmt.Fprintf(&body, "<%04X> <%04X>\n", c, r)
	}
	body.WriteString("endbfchar\nendcmap\nCMapName currentdict /CMap defineresource pop\nend\nend")

	fmt.Fprintf(buf, "%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n",
		objNum, body.Len(), body.String())
}

// subsettableCodes returns the character codes that belong in the /W
// array: those whose width differs from DW, limited to SubsetChars
// when the font is subset. Codes carrying the default width are
// dropped since DW already covers them.
func subsettableCodes(e *font.Entry) []int {
	codes := make([]int, 0, len(e.CW))
	for c := range e.CW {
		if e.CW[c] == e.DW {
			continue
		}
		if e.Subset && !e.SubsetChars[c] {
			continue
		}
		codes = append(codes, c)
	}
	sort.Ints(codes)
	return codes
}

// unicodeCodes returns the character codes that belong in the
// ToUnicode map: every code the font carries, limited to SubsetChars
// when the font is subset. Unlike subsettableCodes, default-width
// codes are kept — a character having the default advance width does
// not make it any less present in the embedded font.
func unicodeCodes(e *font.Entry) []int {
	codes := make([]int, 0, len(e.CW))
	for c := range e.CW {
		if e.Subset && !e.SubsetChars[c] {
			continue
		}
		codes = append(codes, c)
	}
	sort.Ints(codes)
	return codes
}

func charRange(cw map[int]int) (first, last int) {
	first, last = 0, 255
	if len(cw) == 0 {
		return
	}
	min, max := -1, -1
	for c := range cw {
		if min == -1 || c < min {
			min = c
		}
		if max == -1 || c > max {
			max = c
		}
	}
	return min, max
}

func pdfName(s string) string {
	if s == "" {
		return "Untitled"
	}
	return s
}
