package utils

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	titleCaser   = cases.Title(language.English)
)

// CleanPlate uppercases a license plate and strips all whitespace, the form
// used for pattern and reserved-word checks.
func CleanPlate(plate string) string {
	return whitespaceRe.ReplaceAllString(strings.ToUpper(strings.TrimSpace(plate)), "")
}

// NormalizePlate uppercases a plate and collapses internal whitespace to
// single spaces, the form stored in the database.
func NormalizePlate(plate string) string {
	return whitespaceRe.ReplaceAllString(strings.ToUpper(strings.TrimSpace(plate)), " ")
}

// TitleCase trims, collapses internal whitespace, and title-cases a make or
// model name.
func TitleCase(s string) string {
	s = whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
	return titleCaser.String(strings.ToLower(s))
}
