// Package textnorm canonicalizes candidate text so near-identical entries
// collapse onto the same key.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases s, strips diacritics and collapses whitespace.
//
// "  Ámélie\tDupont " and "amelie dupont" normalize to the same key.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	// Transformers are stateful, so each call builds its own chain.
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		cases.Lower(language.Und),
		norm.NFC,
	)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = strings.ToLower(s)
	}
	return strings.Join(strings.Fields(folded), " ")
}

// Dedupe keeps the first element per normalized key, preserving input order.
// Elements whose key normalizes to the empty string are dropped.
func Dedupe[T any](items []T, key func(T) string) []T {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		k := Normalize(key(item))
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Equal reports whether a and b normalize to the same key.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// Contains reports whether the normalized form of s contains the normalized
// form of sub. An empty sub never matches.
func Contains(s, sub string) bool {
	n := Normalize(sub)
	if n == "" {
		return false
	}
	return strings.Contains(Normalize(s), n)
}
