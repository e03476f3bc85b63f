package model

import (
	"regexp"
	"strings"
	"unicode"
)

var wordSeparators = regexp.MustCompile(`[_\-\s.]+`)

// DefaultLabeler turns a property name into a label: "heatDelay" and
// "heat_delay" both become "Heat Delay".
func DefaultLabeler(name string) string {
	var words []string
	for _, chunk := range wordSeparators.Split(name, -1) {
		for _, word := range splitCamel(chunk) {
			words = append(words, capitalise(word))
		}
	}
	return strings.Join(words, " ")
}

func splitCamel(input string) []string {
	var (
		words   []string
		current []rune
	)
	runes := []rune(input)
	for idx, r := range runes {
		if idx > 0 && boundary(runes[idx-1], r) && len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
		current = append(current, r)
	}
	if len(current) > 0 {
		words = append(words, string(current))
	}
	return words
}

func boundary(prev, r rune) bool {
	return (unicode.IsLower(prev) && unicode.IsUpper(r)) ||
		(unicode.IsLetter(prev) && unicode.IsDigit(r)) ||
		(unicode.IsDigit(prev) && unicode.IsLetter(r))
}

func capitalise(word string) string {
	if word == "" {
		return ""
	}
	lower := []rune(strings.ToLower(word))
	lower[0] = unicode.ToUpper(lower[0])
	return string(lower)
}
