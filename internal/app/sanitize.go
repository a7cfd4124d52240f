package app

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// plainText strips every HTML element from user supplied text
var plainText = bluemonday.StrictPolicy()

// sanitizeText removes markup from s and trims surrounding whitespace
func sanitizeText(s string) string {
	return strings.TrimSpace(plainText.Sanitize(s))
}
