package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName prepares a topic, alias or blocklist name for storage and
// comparison:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - strips punctuation (including ASCII symbols such as $ + < = > ^ ` | ~)
//   - collapses every run of whitespace into a single space
//
// NormalizeName(NormalizeName(x)) == NormalizeName(x) for every x.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(name))
	prevSpace := false
	for _, r := range name {
		if isNamePunct(r) {
			continue
		}
		if unicode.IsSpace(r) {
			if prevSpace || b.Len() == 0 {
				continue
			}
			prevSpace = true
			b.WriteRune(' ')
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

func isNamePunct(r rune) bool {
	if unicode.IsPunct(r) {
		return true
	}
	return r < unicode.MaxASCII && unicode.IsSymbol(r)
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives a URL-safe slug from a canonical name: diacritics are
// folded to their base letters, every run of characters outside [a-z0-9]
// becomes a single hyphen, and leading/trailing hyphens are dropped.
// Names with no ASCII letters or digits fall back to "topic".
func Slugify(canonical string) string {
	folded, _, err := transform.String(stripMarks, strings.ToLower(canonical))
	if err != nil {
		folded = strings.ToLower(canonical)
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingHyphen := false
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	if b.Len() == 0 {
		return "topic"
	}
	return b.String()
}
