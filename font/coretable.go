package font

import "strings"

// corePostScriptNames maps a lowercased "family+style" family key to
// the canonical PostScript name of one of the 14 standard PDF Core
// fonts.
var corePostScriptNames = map[string]string{
	"helvetica":   "Helvetica",
	"helveticab":  "Helvetica-Bold",
	"helveticai":  "Helvetica-Oblique",
	"helveticabi": "Helvetica-BoldOblique",
	"courier":     "Courier",
	"courierb":    "Courier-Bold",
	"courieri":    "Courier-Oblique",
	"courierbi":   "Courier-BoldOblique",
	"times":       "Times-Roman",
	"timesb":      "Times-Bold",
	"timesi":      "Times-Italic",
	"timesbi":     "Times-BoldItalic",
	"symbol":      "Symbol",
	"zapfdingbats": "ZapfDingbats",
}

// corePostScriptName resolves the canonical PostScript name for a Core
// family + style suffix, or "" if family isn't one of the 14 standard
// fonts.
func corePostScriptName(family, style string) (string, bool) {
	key := strings.ToLower(family + style)
	name, ok := corePostScriptNames[key]
	return name, ok
}

// IsCoreFamily reports whether family (case-insensitive) names one of
// the 14 standard PDF Core fonts in any style.
func IsCoreFamily(family string) bool {
	lf := strings.ToLower(family)
	switch lf {
	case "helvetica", "courier", "times", "symbol", "zapfdingbats":
		return true
	}
	return false
}
