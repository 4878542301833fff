package utils

import (
	"fmt"
	"path"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

const (
	maxNameRunes = 64
	fallbackName = "label"
)

// SanitizeName turns free text into a single safe path segment. Letters and
// digits of any script are kept, dashes and underscores survive, everything
// else collapses to an underscore.
func SanitizeName(text string) string {
	var b strings.Builder
	runes := 0
	for _, r := range strings.TrimSpace(text) {
		if runes == maxNameRunes {
			break
		}
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
		runes++
	}

	name := strings.Trim(b.String(), "_")
	if name == "" {
		return fallbackName
	}
	return name
}

// RandomSuffix returns n lowercase hex characters (n <= 32).
func RandomSuffix(n int) string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	if n <= 0 || n > len(hex) {
		n = len(hex)
	}
	return hex[:n]
}

// ImageFilename names the intermediate PNG, e.g. "JUAN+400.png".
func ImageFilename(text, variant string) string {
	return fmt.Sprintf("%s+%s.png", SanitizeName(text), variant)
}

// PDFFilename names the public PDF, e.g. "JUAN_400_a1b2c3.pdf".
func PDFFilename(text, variant, suffix string) string {
	return fmt.Sprintf("%s_%s_%s.pdf", SanitizeName(text), variant, suffix)
}

func GenerateStorageKey(filename string) string {
	return path.Join("labels", path.Base(filename))
}
