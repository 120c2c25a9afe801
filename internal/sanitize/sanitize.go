// Package sanitize derives safe cross-platform filenames from document
// titles. The rules target the strictest common denominator (Windows):
// forbidden characters, reserved device names, and the 255-byte name
// limit.
package sanitize

import (
	"regexp"
	"strings"
)

// Default is the filename used when sanitization leaves nothing.
const Default = "untitled"

// maxLength is the portable filename length limit.
const maxLength = 255

var (
	forbiddenReplacer = strings.NewReplacer(
		"<", "-", ">", "-", ":", "-", `"`, "-",
		"/", "-", `\`, "-", "|", "-", "?", "-", "*", "-",
	)
	hyphenRunRe = regexp.MustCompile(`[-\s]+`)
	dotRunRe    = regexp.MustCompile(`\.{2,}`)

	titleRe = regexp.MustCompile(`====== (.+?) ======`)
)

// reservedNames are Windows device names, forbidden as filenames in any
// case and even with an extension.
var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// Filename maps an arbitrary title to a safe filename. The steps run in
// a fixed order; each consumes the previous result.
func Filename(name string) string {
	clean := strings.TrimSpace(name)
	clean = forbiddenReplacer.Replace(clean)
	clean = hyphenRunRe.ReplaceAllString(clean, "-")
	clean = dotRunRe.ReplaceAllString(clean, ".")
	clean = strings.Trim(clean, ".-")
	if reservedNames[strings.ToUpper(clean)] {
		clean = "_" + clean
	}
	if clean == "" {
		clean = Default
	}
	if len(clean) > maxLength {
		clean = truncate(clean)
	}
	return clean
}

// truncate shortens a name to the length limit, keeping the extension
// when one exists and fits.
func truncate(name string) string {
	i := strings.LastIndex(name, ".")
	if i <= 0 {
		return name[:maxLength]
	}
	ext := name[i+1:]
	maxBase := maxLength - len(ext) - 1
	if maxBase < 1 {
		return name[:maxLength]
	}
	base := name[:i]
	if len(base) > maxBase {
		base = base[:maxBase]
	}
	return base + "." + ext
}

// Title extracts the first top-level heading from a document and
// sanitizes it. Documents without one are "Untitled".
func Title(content string) string {
	m := titleRe.FindStringSubmatch(content)
	if m == nil {
		return "Untitled"
	}
	return Filename(m[1])
}
