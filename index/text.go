package index

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Tokenize splits text into lexical tokens for keyword indexing.
//
// Text is NFKC-normalized and lowercased first, so full-width Latin and
// half-width katakana fold into their canonical forms. Whitespace-separated
// segments are trimmed of surrounding punctuation. Runs of CJK characters
// carry no word boundaries, so they are emitted as character bigrams
// (a single CJK character yields itself).
func Tokenize(text string) []string {
	text = strings.ToLower(norm.NFKC.String(text))

	var tokens []string
	for _, segment := range strings.Fields(text) {
		tokens = appendSegmentTokens(tokens, segment)
	}
	return tokens
}

// appendSegmentTokens splits a whitespace-free segment into tokens,
// separating CJK runs from non-CJK runs.
func appendSegmentTokens(tokens []string, segment string) []string {
	runes := []rune(segment)
	start := 0
	cjk := false

	flush := func(end int) {
		if end <= start {
			return
		}
		run := runes[start:end]
		if cjk {
			tokens = appendBigrams(tokens, run)
		} else if word := trimPunct(string(run)); word != "" {
			tokens = append(tokens, word)
		}
	}

	for i, r := range runes {
		isCJK := isCJKRune(r)
		if i == 0 {
			cjk = isCJK
			continue
		}
		if isCJK != cjk {
			flush(i)
			start = i
			cjk = isCJK
		}
	}
	flush(len(runes))

	return tokens
}

// appendBigrams emits character bigrams for a CJK run.
// Single-character runs are emitted as-is.
func appendBigrams(tokens []string, run []rune) []string {
	if len(run) == 1 {
		return append(tokens, string(run))
	}
	for i := 0; i+1 < len(run); i++ {
		tokens = append(tokens, string(run[i:i+2]))
	}
	return tokens
}

// trimPunct strips leading and trailing punctuation from a word.
func trimPunct(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}

// isCJKRune reports whether r belongs to a CJK script without word boundaries.
// Punctuation such as 、 and 「 is excluded so it never enters bigrams.
func isCJKRune(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r)
}
