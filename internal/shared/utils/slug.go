package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]`)
	hyphenRuns   = regexp.MustCompile(`-+`)

	dottedCapitalI = strings.NewReplacer("\u0130", "i\u0307")
)

// GenerateSlug turns a title into a URL safe slug.
// "Hello, World! 2024" → "hello-world-2024"
func GenerateSlug(input string) string {
	// Step 1: Lowercase. U+0130 uses the full mapping ("i" + combining dot)
	// like browsers do, so "İstanbul" → "i-stanbul".
	lower := strings.ToLower(dottedCapitalI.Replace(input))

	// Step 2: Every character outside a-z0-9 becomes a hyphen.
	// Non-ASCII letters are not transliterated.
	hyphenated := nonSlugChars.ReplaceAllString(lower, "-")

	// Step 3: Collapse consecutive hyphens
	normalized := hyphenRuns.ReplaceAllString(hyphenated, "-")

	// Step 4: Trim leading/trailing hyphens
	return strings.Trim(normalized, "-")
}

// SuffixSlug appends a numeric disambiguator: "my-post" + 42 → "my-post-42".
func SuffixSlug(slug string, n int) string {
	return slug + "-" + strconv.Itoa(n)
}
