package security

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

const MaxTextLength = 1000

var htmlPolicy = bluemonday.StrictPolicy()

// SanitizeString trims whitespace, drops null bytes and caps the length in runes
func SanitizeString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")

	if utf8.RuneCountInString(input) > MaxTextLength {
		input = string([]rune(input)[:MaxTextLength])
	}

	return input
}

// SanitizeHTML removes all HTML tags
func SanitizeHTML(input string) string {
	return htmlPolicy.Sanitize(input)
}

// maxCleanPasses bounds how many layers of entity-encoded markup CleanText peels off.
const maxCleanPasses = 5

// CleanText strips markup from free text but keeps plain characters such as '&' readable.
// Unescaping can expose encoded tags, so sanitizing repeats until the text stops changing.
// Text still changing after maxCleanPasses is returned in its escaped form.
func CleanText(input string) string {
	text := SanitizeString(input)
	for i := 0; i < maxCleanPasses; i++ {
		next := html.UnescapeString(SanitizeHTML(text))
		if next == text {
			return strings.TrimSpace(text)
		}
		text = next
	}
	return strings.TrimSpace(SanitizeHTML(text))
}

// ValidateFileType checks if file extension is allowed
func ValidateFileType(filename string, allowedTypes []string) bool {
	filename = strings.ToLower(filename)
	for _, ext := range allowedTypes {
		if strings.HasSuffix(filename, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// ValidateFileSize checks if file size is within limit
func ValidateFileSize(size int64, maxSize int64) bool {
	return size > 0 && size <= maxSize
}
