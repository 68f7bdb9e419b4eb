// Package textnorm repairs and normalizes the Turkish text found in the
// parliament datasets.
//
// Clean undoes the encoding damage present in scraped government pages.
// SearchKey produces the comparison form used by name matching, party
// classification, ballot classification and search. Every component that
// compares text goes through these two functions so that they agree.
package textnorm

import (
	"html"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// latin1Misreads maps characters produced by decoding Windows-1254 bytes as
// ISO-8859-1 back to the Turkish letters they encode (ý→ı, Þ→Ş, ...).
var latin1Misreads = buildLatin1Replacer()

func buildLatin1Replacer() *strings.Replacer {
	var pairs []string
	for b := 0xA0; b <= 0xFF; b++ {
		latin := rune(b)
		turkish := charmap.Windows1254.DecodeByte(byte(b))
		if turkish != latin {
			pairs = append(pairs, string(latin), string(turkish))
		}
	}
	return strings.NewReplacer(pairs...)
}

// Clean decodes HTML entities, repairs double-encoded UTF-8 and
// Latin-1 misreads of Turkish letters, and trims surrounding whitespace.
// Clean is idempotent on already clean text.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = html.UnescapeString(s)
	s = repairDoubleEncoded(s)
	s = latin1Misreads.Replace(s)
	return strings.TrimSpace(s)
}

// repairDoubleEncoded rejoins two-byte UTF-8 sequences that were decoded as
// Windows-1252 ("Ã¼" → "ü", "ÅŸ" → "ş").
func repairDoubleEncoded(s string) string {
	if !strings.ContainsFunc(s, isLeadRune) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	rs := []rune(s)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if isLeadRune(r) && i+1 < len(rs) {
			if cont, ok := charmap.Windows1252.EncodeRune(rs[i+1]); ok && cont >= 0x80 && cont <= 0xBF {
				fixed, size := utf8.DecodeRune([]byte{byte(r), cont})
				if size == 2 && unicode.IsLetter(fixed) {
					b.WriteRune(fixed)
					i++
					continue
				}
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isLeadRune reports whether r, read as a Windows-1252 byte, starts a
// two-byte UTF-8 sequence for a letter in U+00C0..U+017F, the range that
// covers every Turkish letter. Ç, Ö and Ü are never treated as leads.
func isLeadRune(r rune) bool {
	return r >= 0xC3 && r <= 0xC5
}

// SearchKey lowercases s with Turkish rules and folds diacritics so that
// "İĞNE", "Iğne" and "igne" compare equal. Dotless ı folds to i.
func SearchKey(s string) string {
	if s == "" {
		return ""
	}
	lower := cases.Lower(language.Turkish).String(s)
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), runes.Map(foldDotless), norm.NFC)
	folded, _, err := transform.String(fold, lower)
	if err != nil {
		return lower
	}
	return folded
}

func foldDotless(r rune) rune {
	if r == 'ı' {
		return 'i'
	}
	return r
}

// Key cleans s and returns its search key.
func Key(s string) string {
	return SearchKey(Clean(s))
}

// Tokens returns the whitespace separated tokens of Key(s).
func Tokens(s string) []string {
	return strings.Fields(Key(s))
}

// Contains reports whether needle occurs in haystack after both are folded.
// An empty needle matches everything.
func Contains(haystack, needle string) bool {
	return strings.Contains(Key(haystack), Key(needle))
}

// Slug returns a URL-safe identifier: folded ASCII letters and digits with
// every other run of characters collapsed to a single hyphen.
func Slug(s string) string {
	key := Key(s)

	var b strings.Builder
	b.Grow(len(key))
	pendingHyphen := false
	for _, r := range key {
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
	return b.String()
}
