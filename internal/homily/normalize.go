package homily

import (
	"regexp"
	"strings"

	"github.com/mylatinmass/audio-youtube-wf/internal/transcript"
)

// Token is a normalized view of one transcribed word. Recomputed per search,
// never stored back on the transcript.
type Token struct {
	Text  string
	Start float64
	End   float64
}

var nonWordRe = regexp.MustCompile(`[^\w\s|]`)

// Normalize strips every character that is not a word character, whitespace
// or the alternation separator '|', then lowercases. Applied identically to
// pattern literals and transcript words so "Ghost." and "ghost" compare equal.
func Normalize(text string) string {
	return strings.ToLower(nonWordRe.ReplaceAllString(text, ""))
}

// Flatten walks all segments (or the top-level word list when segments are
// absent) in order, normalizes each word and filters by time.
//
// Forward mode keeps tokens with start >= skip. Backward mode keeps tokens
// with end <= maxEnd-skip, where maxEnd is the largest end timestamp in the
// transcript. An empty transcript yields an empty slice, never an error.
func Flatten(t *transcript.Transcript, skip float64, backwards bool) []Token {
	words := t.AllWords()
	if len(words) == 0 {
		return nil
	}

	tokens := make([]Token, 0, len(words))
	for _, w := range words {
		tokens = append(tokens, Token{
			Text:  strings.TrimSpace(Normalize(w.Word)),
			Start: w.Start,
			End:   w.End,
		})
	}

	if backwards {
		maxEnd := tokens[0].End
		for _, tok := range tokens[1:] {
			if tok.End > maxEnd {
				maxEnd = tok.End
			}
		}
		threshold := maxEnd - skip
		kept := tokens[:0]
		for _, tok := range tokens {
			if tok.End <= threshold {
				kept = append(kept, tok)
			}
		}
		return kept
	}

	kept := tokens[:0]
	for _, tok := range tokens {
		if tok.Start >= skip {
			kept = append(kept, tok)
		}
	}
	return kept
}
