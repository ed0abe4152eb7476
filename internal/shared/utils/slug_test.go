package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"punctuation and digits", "Hello, World! 2024", "hello-world-2024"},
		{"simple", "My Post", "my-post"},
		{"leading and trailing noise", "  --Go & Rust--  ", "go-rust"},
		{"already a slug", "already-a-slug", "already-a-slug"},
		{"non ascii becomes separator", "Café au lait", "caf-au-lait"},
		{"only symbols", "!!!", ""},
		{"underscores", "snake_case_title", "snake-case-title"},
		{"dotted capital I", "İstanbul", "i-stanbul"},
		{"dotless small i", "ıstanbul", "stanbul"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.input))
		})
	}
}

func TestGenerateSlug_Shape(t *testing.T) {
	shape := regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	inputs := []string{
		"A  B   C",
		"Über cool -- post!!",
		"2024: year in review",
		"__x__",
	}
	for _, in := range inputs {
		slug := GenerateSlug(in)
		assert.Regexp(t, shape, slug, "input %q", in)
	}
}

func TestSuffixSlug(t *testing.T) {
	assert.Equal(t, "my-post-42", SuffixSlug("my-post", 42))
	assert.Equal(t, "my-post-0", SuffixSlug("my-post", 0))
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" Go ", "go", "", "Backend", "  "})
	assert.Equal(t, []string{"go", "backend"}, got)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", NormalizeEmail("  Jane@Example.COM "))
}
