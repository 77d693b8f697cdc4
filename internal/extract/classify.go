package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"vokabel/internal/domain"
)

// Common German verb endings
var verbEndings = []string{"en", "st", "t", "n", "e", "te", "ten", "test", "tet", "est", "et"}

// German adjectives often end with these
var adjectiveEndings = []string{"ig", "lich", "isch", "bar", "sam", "los", "voll", "haft"}

var (
	// \w is ASCII-only, umlauts and ß are listed explicitly
	nonTextChars = regexp.MustCompile(`[^\w\säöüÄÖÜß]`)
	nonWordChars = regexp.MustCompile(`[^\wäöüÄÖÜß]`)
)

// Classify assigns a part of speech to a cleaned token. The checks run in
// order and the first match wins, so a capitalized token is always a noun.
func Classify(token string) domain.WordType {
	switch {
	case isCapitalized(token):
		return domain.WordTypeNoun
	case hasAnySuffix(strings.ToLower(token), verbEndings):
		return domain.WordTypeVerb
	case hasAnySuffix(strings.ToLower(token), adjectiveEndings):
		return domain.WordTypeAdjective
	default:
		return domain.WordTypeUnclassified
	}
}

// CleanToken strips every character that is not a word character, umlaut or ß.
func CleanToken(token string) string {
	return nonWordChars.ReplaceAllString(token, "")
}

func isCapitalized(token string) bool {
	r, _ := utf8.DecodeRuneInString(token)
	if r == utf8.RuneError {
		return false
	}
	return unicode.ToUpper(r) == r && unicode.ToLower(r) != r
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func truncateRunes(s string, n int) string {
	if runeLen(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
