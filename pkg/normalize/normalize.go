// Package normalize provides the byte-level word transforms used by tag
// resolution: ASCII filtering, case variants and type canonicalization.
//
// Case folding is ASCII-only. Bytes outside 'A'..'Z' / 'a'..'z' are left
// untouched, so lexicon words containing UTF-8 sequences compare the same
// way before and after folding.
package normalize

import "strings"

// ToASCII removes every byte outside the 0..127 range.
// Non-ASCII bytes are deleted, not replaced.
func ToASCII(s string) string {
	i := 0
	for i < len(s) && s[i] < 0x80 {
		i++
	}
	if i == len(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(s[:i])
	for ; i < len(s); i++ {
		if s[i] < 0x80 {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// Lowercase folds ASCII upper-case letters to lower case.
// Returns s itself when there is nothing to fold.
func Lowercase(s string) string {
	for i := 0; i < len(s); i++ {
		if isUpper(s[i]) {
			return mapBytes(s, i, toLower)
		}
	}
	return s
}

// Uppercase folds ASCII lower-case letters to upper case.
func Uppercase(s string) string {
	for i := 0; i < len(s); i++ {
		if isLower(s[i]) {
			return mapBytes(s, i, toUpper)
		}
	}
	return s
}

// LowercaseFirst lowercases only the first byte. The empty string is
// returned unchanged.
func LowercaseFirst(s string) string {
	if s == "" || !isUpper(s[0]) {
		return s
	}
	return string(toLower(s[0])) + s[1:]
}

// UppercaseFirst lowercases the whole string, then uppercases the first
// byte ("aPFEL" -> "Apfel"). The empty string is returned unchanged.
func UppercaseFirst(s string) string {
	if s == "" {
		return s
	}
	lower := Lowercase(s)
	if !isLower(lower[0]) {
		return lower
	}
	return string(toUpper(lower[0])) + lower[1:]
}

// IsLower reports whether s contains no ASCII upper-case letter.
func IsLower(s string) bool {
	return Lowercase(s) == s
}

// HasUpper reports whether s contains at least one of 'A'..'Z'.
func HasUpper(s string) bool {
	return !IsLower(s)
}

// CanonicalType maps a raw lexicon type onto the canonical set so that
// later comparisons against "n", "v" and "adj" are reliable.
// The first matching rule wins:
//
//	vi, vt, ci                  -> v
//	a* (except "art")           -> adj
//	n, f, m, pron, b, "n,..."   -> n
//
// Anything else is returned unchanged.
func CanonicalType(raw string) string {
	switch {
	case raw == "vi" || raw == "vt" || raw == "ci":
		return "v"
	case strings.HasPrefix(raw, "a") && raw != "art":
		return "adj"
	case raw == "n" || raw == "f" || raw == "m" || raw == "pron" || raw == "b",
		strings.HasPrefix(raw, "n,"):
		return "n"
	}
	return raw
}

func isUpper(c byte) bool { return 'A' <= c && c <= 'Z' }
func isLower(c byte) bool { return 'a' <= c && c <= 'z' }

func toLower(c byte) byte {
	if isUpper(c) {
		return c + ('a' - 'A')
	}
	return c
}

func toUpper(c byte) byte {
	if isLower(c) {
		return c - ('a' - 'A')
	}
	return c
}

// mapBytes applies fn to every byte from index start on.
func mapBytes(s string, start int, fn func(byte) byte) string {
	b := []byte(s)
	for i := start; i < len(b); i++ {
		b[i] = fn(b[i])
	}
	return string(b)
}
