package redline

import (
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
)

// Kind classifies a Token as prose content or whitespace.
type Kind int

const (
	// KindWord is any non-whitespace token: a word, a number, a punctuation
	// character, a CJK character, an emoji, and so on.
	KindWord Kind = iota
	// KindSpace is a token consisting entirely of whitespace.
	KindSpace
)

func (k Kind) String() string {
	switch k {
	case KindWord:
		return "word"
	case KindSpace:
		return "space"
	default:
		return "unknown"
	}
}

// Token is an atomic unit of comparison. Tokens are immutable value data:
// produced by Tokenize, read by Match and Render, never modified.
type Token struct {
	Text string
	Kind Kind
}

// Tokenize splits text into an ordered token sequence along Unicode UAX #29
// word boundaries. Segmentation partitions the input, so concatenating the
// token texts reproduces text exactly.
//
// The boundary rules are the fixed tokenization policy of this package:
// trailing/leading punctuation becomes its own token ("dog." -> "dog", "."),
// interior punctuation stays attached ("don't", "3.14"), runs of spaces stay
// together, and each newline is its own token. A segment is KindSpace iff
// every rune in it is Unicode whitespace.
//
// Tokenize is total: any input, including "", yields a valid sequence.
func Tokenize(text string) []Token {
	if text == "" {
		return nil
	}
	var tokens []Token
	seg := words.FromString(text)
	for seg.Next() {
		t := seg.Value()
		kind := KindWord
		if isBlank(t) {
			kind = KindSpace
		}
		tokens = append(tokens, Token{Text: t, Kind: kind})
	}
	return tokens
}

// isBlank reports whether s is non-empty and all whitespace.
func isBlank(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// hasNewline reports whether the token text contains a line break. Used by
// renderers to keep markup from crossing line boundaries.
func (t Token) hasNewline() bool {
	for i := 0; i < len(t.Text); i++ {
		if t.Text[i] == '\n' || t.Text[i] == '\r' {
			return true
		}
	}
	return false
}

// joinTokens concatenates token texts.
func joinTokens(tokens []Token) string {
	n := 0
	for _, t := range tokens {
		n += len(t.Text)
	}
	b := make([]byte, 0, n)
	for _, t := range tokens {
		b = append(b, t.Text...)
	}
	return string(b)
}
