// Package tokenize splits raw text into a flat word list. It is a stateless
// utility independent of section segmentation.
package tokenize

import "unicode"

// Words splits text into tokens on any run of non-alphanumeric characters.
// Empty tokens are dropped; case is preserved.
func Words(text string) []string {
	var tokens []string
	start := -1
	runes := []rune(text)
	for i, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, string(runes[start:i]))
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, string(runes[start:]))
	}
	return tokens
}
