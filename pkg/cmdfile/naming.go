// SPDX-License-Identifier: MPL-2.0

package cmdfile

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// VariantName converts a space separated command name to PascalCase.
// Hyphens and underscores inside a segment are word boundaries too.
func VariantName(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	})

	// casers keep state, one per call
	title := cases.Title(language.Und, cases.NoLower)

	var b strings.Builder
	for _, w := range words {
		b.WriteString(title.String(w))
	}
	return b.String()
}

// ModuleName converts a PascalCase or Title Case set name to snake_case.
func ModuleName(name string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range name {
		switch {
		case r == ' ' || r == '-' || r == '_':
			if b.Len() > 0 {
				b.WriteByte('_')
			}
			prevLower = false
			continue
		case unicode.IsUpper(r) && prevLower:
			b.WriteByte('_')
		}
		b.WriteRune(r)
		prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
	}
	return cases.Lower(language.Und).String(b.String())
}
