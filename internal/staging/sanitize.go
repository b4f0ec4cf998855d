// Package staging links matched files into a session staging tree under
// sanitized names, ready for derivative generation and upload.
package staging

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	spacedDash = regexp.MustCompile(`\s+-\s+`)
	spaceDash  = regexp.MustCompile(`\s+-`)
	dashSpace  = regexp.MustCompile(`-\s+`)
	spaceRun   = regexp.MustCompile(`\s+`)
)

// SanitizeFilename rewrites a filename for safe use in staging paths and
// blob URLs. Spaces around dashes collapse into double dashes, remaining
// whitespace becomes underscores, and the extension is preserved. Only the
// name is touched; callers pass a base name, not a path.
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(name)

	ext := filepath.Ext(name)
	stem := strings.TrimSpace(strings.TrimSuffix(name, ext))

	stem = spacedDash.ReplaceAllString(stem, "--")
	stem = spaceDash.ReplaceAllString(stem, "--")
	stem = dashSpace.ReplaceAllString(stem, "--")
	stem = spaceRun.ReplaceAllString(stem, "_")

	return stem + strings.TrimSpace(ext)
}
