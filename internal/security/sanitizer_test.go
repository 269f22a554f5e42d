package security

import (
	"html"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims whitespace", "  Matrix \n", "Matrix"},
		{"drops null bytes", "Ma\x00trix", "Matrix"},
		{"keeps unicode", "Амели", "Амели"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeString(tt.input); got != tt.want {
				t.Errorf("SanitizeString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitizeStringCapsRunes(t *testing.T) {
	got := SanitizeString(strings.Repeat("é", MaxTextLength+10))
	if n := utf8.RuneCountInString(got); n != MaxTextLength {
		t.Errorf("SanitizeString() length = %d runes, want %d", n, MaxTextLength)
	}
	if !utf8.ValidString(got) {
		t.Error("SanitizeString() produced invalid UTF-8")
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "Tom & Jerry", "Tom & Jerry"},
		{"strips tags", "<b>Bold</b> move", "Bold move"},
		{"drops scripts", "Film<script>alert(1)</script>", "Film"},
		{"trims after stripping", "  <i></i> Heat ", "Heat"},
		{"entity-encoded script", "&lt;script&gt;alert(1)&lt;/script&gt;", ""},
		{"double-encoded tags", "&amp;lt;b&amp;gt;Bold&amp;lt;/b&amp;gt;", "Bold"},
		{"encoded ampersand reads plain", "Tom &amp; Jerry", "Tom & Jerry"},
		{"lone angle bracket kept", "a < b", "a < b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.input); got != tt.want {
				t.Errorf("CleanText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanTextNeverReturnsMarkup(t *testing.T) {
	input := "x"
	for i := 0; i < maxCleanPasses+2; i++ {
		input = html.EscapeString("<b>" + input + "</b>")
	}

	got := CleanText(input)
	if strings.Contains(got, "<") {
		t.Errorf("CleanText() = %q, should not contain raw markup", got)
	}
}

func TestValidateFileType(t *testing.T) {
	allowed := []string{".xlsx"}
	tests := []struct {
		filename string
		want     bool
	}{
		{"films.xlsx", true},
		{"FILMS.XLSX", true},
		{"films.csv", false},
		{"xlsx", false},
	}

	for _, tt := range tests {
		if got := ValidateFileType(tt.filename, allowed); got != tt.want {
			t.Errorf("ValidateFileType(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestValidateFileSize(t *testing.T) {
	if ValidateFileSize(0, 10) {
		t.Error("ValidateFileSize(0, 10) = true, want false")
	}
	if !ValidateFileSize(10, 10) {
		t.Error("ValidateFileSize(10, 10) = false, want true")
	}
	if ValidateFileSize(11, 10) {
		t.Error("ValidateFileSize(11, 10) = true, want false")
	}
}
