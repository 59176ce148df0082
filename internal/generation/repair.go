package generation

import (
	"regexp"
	"strings"
)

var (
	codeFenceRe     = regexp.MustCompile("```json\n?|\n?```")
	trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)
	whitespaceRunRe = regexp.MustCompile(`\s+`)
)

// Repair normalizes near-JSON model output into parseable text: strips code
// fences, drops trailing commas before closing brackets, and flattens
// newlines/whitespace runs. Collapsing newlines is a best-effort heuristic
// for unescaped line breaks inside string values; if the text is still broken
// the failure surfaces at the parse step. Never fails.
func Repair(text string) string {
	cleaned := strings.TrimSpace(codeFenceRe.ReplaceAllString(text, ""))
	cleaned = trailingCommaRe.ReplaceAllString(cleaned, "$1")
	cleaned = strings.ReplaceAll(cleaned, "\n", " ")
	return whitespaceRunRe.ReplaceAllString(cleaned, " ")
}
