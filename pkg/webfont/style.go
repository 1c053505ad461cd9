package webfont

import (
	"regexp"
	"strings"
	"unicode"
)

// Style values used when a key does not say otherwise.
const (
	StyleNormal  = "normal"
	WeightNormal = "normal"
)

// AllowedStyles lists the style keys embedded for a family, in output order.
// Catalog files with any other key are ignored.
var AllowedStyles = []string{"regular", "600", "700", "italic", "600italic", "700italic"}

var (
	alphaRun   = regexp.MustCompile(`[a-z]+`)
	numericRun = regexp.MustCompile(`[0-9]+`)
)

// ClassifyStyle maps a catalog style key to CSS font-style and font-weight.
//
//	"700"       -> normal, 700
//	"regular"   -> normal, normal
//	"italic"    -> italic, normal
//	"700italic" -> italic, 700
//
// "regular" is the catalog's name for the upright face and is not a CSS
// font-style, so it classifies as normal. Keys that are neither numeric,
// alphabetic nor alphanumeric fall back to normal/normal.
func ClassifyStyle(key string) (style, weight string) {
	style, weight = StyleNormal, WeightNormal
	switch {
	case isDigits(key):
		weight = key
	case isAlpha(key):
		if key != "regular" {
			style = key
		}
	case isAlnum(key):
		if m := alphaRun.FindString(key); m != "" {
			style = m
		}
		if m := numericRun.FindString(key); m != "" {
			weight = m
		}
	}
	return style, weight
}

func isDigits(s string) bool {
	return s != "" && strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) < 0
}

func isAlpha(s string) bool {
	return s != "" && strings.IndexFunc(s, func(r rune) bool { return !isASCIILetter(r) }) < 0
}

func isAlnum(s string) bool {
	return s != "" && strings.IndexFunc(s, func(r rune) bool {
		return !isASCIILetter(r) && (r < '0' || r > '9')
	}) < 0
}

func isASCIILetter(r rune) bool {
	return r < unicode.MaxASCII && unicode.IsLetter(r)
}
