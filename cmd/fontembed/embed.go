package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/inkwell/fontembed/font"
	"github.com/inkwell/fontembed/pdfemit"
	"github.com/inkwell/fontembed/registry"
)

// Embed loads a font definition (a Core metrics file or a
// TrueType/Type1 file plus its JSON sidecar), registers it, and writes
// the resulting PDF indirect objects.
type Embed struct {
	Dirs    string `short:"d" desc:"Comma-separated directories to search for the font definition"`
	Style   string `short:"s" desc:"Style letters, any of B I U D O"`
	Subset  bool   `short:"x" desc:"Subset embedded font files to referenced characters"`
	Unicode bool   `short:"u" desc:"Request a Unicode (Identity-H) embedding"`
	Output  string `short:"o" desc:"Output file (default: stdout)"`
	Family  string `index:"0" desc:"Font family name"`
}

func (cmd *Embed) Run() error {
	dirs := strings.Split(cmd.Dirs, ",")
	if cmd.Dirs == "" {
		dirs = []string{"."}
	}
	mode := parseMode(cmd.Style)

	cfg := font.DefaultConfig()
	cfg.SearchDirs = dirs
	cfg.Subset = cmd.Subset
	cfg.Unicode = cmd.Unicode

	key, _ := registry.ComputeKey(cmd.Family, cmd.Style)
	path, fakeStyle, err := font.LocateDefinition(dirs, key, cmd.Family)
	if err != nil {
		return err
	}

	e, err := font.Load(path, cmd.Family, cmd.Style, mode, cfg)
	if err != nil {
		return err
	}
	e.FakeStyle = fakeStyle
	font.SetArtificialStyles(e)

	reg := registry.New(0)
	e, err = reg.Register(e)
	if err != nil {
		return err
	}

	block, objectNumber, err := pdfemit.Emit(reg, pdfemit.IdentityEncryptor{}, readFontFile, cfg)
	if err != nil {
		return err
	}
	Warning.Printf("emitted through object number %d", objectNumber)

	w := os.Stdout
	if cmd.Output != "" {
		f, err := os.Create(cmd.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	_, err = w.Write(block)
	return err
}

func readFontFile(dir, file string) ([]byte, error) {
	return os.ReadFile(filepath.Join(dir, file))
}

func parseMode(style string) font.Mode {
	var m font.Mode
	if strings.Contains(style, "B") {
		m.Bold = true
	}
	if strings.Contains(style, "I") {
		m.Italic = true
	}
	if strings.Contains(style, "U") {
		m.Underline = true
	}
	if strings.Contains(style, "D") {
		m.LineThrough = true
	}
	if strings.Contains(style, "O") {
		m.Overline = true
	}
	return m
}
