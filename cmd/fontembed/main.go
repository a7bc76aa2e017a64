package main

import (
	"log"
	"os"

	"github.com/tdewolff/argp"
)

var (
	Error   *log.Logger
	Warning *log.Logger
)

func main() {
	Error = log.New(os.Stderr, "ERROR: ", 0)
	Warning = log.New(os.Stderr, "WARNING: ", 0)

	cmd := argp.New("Embed fonts into PDF indirect objects")
	cmd.AddCmd(&Info{}, "info", "Dump an sfnt file's table directory and derived metrics")
	cmd.AddCmd(&Embed{}, "embed", "Register a font definition and emit its PDF objects")
	cmd.Parse()
}
