// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package strcase converts CamelCase Go identifiers to other cases,
// keeping acronyms together as one word.
package strcase

import (
	"strings"
	"unicode"
)

// ToKebab returns words in kebab-case (lower case words with dashes).
// An upper case letter starts a new word when it follows a lower case
// letter or is followed by one, so IDName becomes id-name.
func ToKebab(s string) string {
	return toWordCase(s, '-')
}

func toWordCase(s string, delim rune) string {
	var b strings.Builder
	rs := []rune(s)
	for i, r := range rs {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(rs[i-1]) || i+1 < len(rs) && unicode.IsLower(rs[i+1])) {
				b.WriteRune(delim)
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
