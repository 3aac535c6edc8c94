package homily

import "github.com/mylatinmass/audio-youtube-wf/internal/transcript"

// Span is the absolute time range of one phrase occurrence: start of its
// first token through end of its last token.
type Span struct {
	Start float64
	End   float64
}

// match is a pair of token indices (start, end exclusive) for one pattern
// occurrence within a flattened token sequence.
type match struct {
	start int
	end   int
}

// matchAt attempts the pattern at one start index. Semantics:
//
//   - Pattern exhausted: success, returns the current token index.
//   - Tokens exhausted: success only if every remaining pattern token is
//     optional.
//   - Mandatory token: must match the current token or the whole attempt
//     fails. There is no backtracking past a failed mandatory token, so each
//     attempt is a single linear pass.
//   - Optional token: skipping is tried first; consuming is tried only when
//     the skip branch fails. The skip-first order is a deliberate tie-break
//     and is pinned by tests.
func matchAt(tokens []Token, i int, pattern Pattern, pi int) (int, bool) {
	if pi == len(pattern) {
		return i, true
	}
	if i >= len(tokens) {
		for _, mt := range pattern[pi:] {
			if !mt.Optional {
				return 0, false
			}
		}
		return i, true
	}

	mt := pattern[pi]
	if mt.Optional {
		if end, ok := matchAt(tokens, i, pattern, pi+1); ok {
			return end, true
		}
		if mt.Matches(tokens[i].Text) {
			return matchAt(tokens, i+1, pattern, pi+1)
		}
		return 0, false
	}

	if mt.Matches(tokens[i].Text) {
		return matchAt(tokens, i+1, pattern, pi+1)
	}
	return 0, false
}

// searchAll attempts the pattern at every start index and records each
// success. Overlapping matches are all retained; nothing is deduplicated.
// Zero-width matches (a pattern of nothing but skipped optionals) carry no
// timing information and are discarded.
func searchAll(tokens []Token, pattern Pattern) []match {
	var matches []match
	for i := range tokens {
		if end, ok := matchAt(tokens, i, pattern, 0); ok && end > i {
			matches = append(matches, match{start: i, end: end})
		}
	}
	return matches
}

// FindPhrase flattens the transcript, searches for the compiled pattern and
// returns the time span of the first occurrence (forward mode) or the last
// occurrence (backward mode). In backward mode skip is measured back from the
// transcript's final end timestamp. The second return is false when the
// transcript has no words or the phrase never occurs; that is the expected
// not-found signal, not an error.
func FindPhrase(t *transcript.Transcript, pattern Pattern, backwards bool, skip float64) (Span, bool) {
	tokens := Flatten(t, skip, backwards)
	if len(tokens) == 0 {
		return Span{}, false
	}

	matches := searchAll(tokens, pattern)
	if len(matches) == 0 {
		return Span{}, false
	}

	m := matches[0]
	if backwards {
		m = matches[len(matches)-1]
	}
	return Span{Start: tokens[m.start].Start, End: tokens[m.end-1].End}, true
}

// FindPhraseString is FindPhrase for a raw pattern expression.
func FindPhraseString(t *transcript.Transcript, expr string, backwards bool, skip float64) (Span, bool) {
	return FindPhrase(t, CompilePattern(expr), backwards, skip)
}
