package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/inkwell/fontembed/sfnt"
)

// Info mirrors the table-directory dump of the ancestor toolkit's
// "info" subcommand, extended with the derived PDF-relevant metrics
// this engine computes during parsing.
type Info struct {
	Input string `index:"0" desc:"Input TrueType file"`
}

func (cmd *Info) Run() error {
	b, err := os.ReadFile(cmd.Input)
	if err != nil {
		return err
	}
	f, err := sfnt.Parse(b, sfnt.DefaultOptions())
	if err != nil {
		return err
	}

	fmt.Printf("File: %s\n\n", cmd.Input)
	fmt.Printf("PostScript name: %s\n", f.PostScriptName)
	fmt.Printf("Units per em: %d\n", f.UnitsPerEm)
	fmt.Printf("Glyphs: %d\n", f.NumGlyphs)
	fmt.Printf("Ascent/Descent/Leading: %d/%d/%d\n", f.Ascent, f.Descent, f.Leading)
	fmt.Printf("CapHeight/XHeight: %d/%d\n", f.CapHeight, f.XHeight)
	fmt.Printf("ItalicAngle: %d  Flags: %d  Unicode: %v\n", f.ItalicAngle, f.Flags, f.Unicode)
	fmt.Printf("FontBBox: %v\n\n", f.FontBBox)

	fmt.Printf("Table directory:\n")
	for _, tag := range sortedTags(f) {
		rec := f.Tables[tag]
		fmt.Printf("  %-4s  checksum=0x%08X  offset=%d  length=%d\n", tag, rec.Checksum, rec.Offset, rec.Length)
	}
	fmt.Printf("\nCharacters mapped: %d\n", len(f.Ctgdata))
	return nil
}

func sortedTags(f *sfnt.Font) []string {
	tags := make([]string, 0, len(f.Tables))
	for tag := range f.Tables {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
