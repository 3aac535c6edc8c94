package homily

import (
	"fmt"
	"strings"

	"github.com/mylatinmass/audio-youtube-wf/internal/transcript"
)

// Variant selects the word-inclusion rule used when trimming segments to the
// homily boundaries. The two rules were both observed in production use and
// differ only at the edges; pick one per deployment.
type Variant string

const (
	// VariantStrict keeps a word only when it lies entirely inside the
	// boundary: first <= start <= end <= last.
	VariantStrict Variant = "strict"
	// VariantStartWithin keeps a word whose start falls inside the
	// boundary, even if it rings past the end: first <= start <= last.
	VariantStartWithin Variant = "start-within"
)

// ParseVariant validates a variant name from configuration.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantStrict, VariantStartWithin:
		return Variant(s), nil
	case "":
		return VariantStrict, nil
	}
	return "", fmt.Errorf("unknown extract variant %q", s)
}

// Extract trims the transcript to the resolved boundary and re-bases all
// timestamps so the homily's first retained word starts at 0. Segments that
// retain no words are dropped. The returned text is the space-joined raw
// words across all retained segments, in original order. An empty result is
// valid output, not an error.
func Extract(t *transcript.Transcript, b Boundary, variant Variant) (string, []transcript.Segment) {
	var out []transcript.Segment
	var allWords []string

	for _, seg := range t.Segments {
		// Segments without word timings, such as ones parsed from timed
		// text or entered manually, are kept or dropped whole.
		if len(seg.Words) == 0 {
			if !variant.keeps(transcript.Word{Word: seg.Text, Start: seg.Start, End: seg.End}, b) {
				continue
			}
			out = append(out, transcript.Segment{
				ID:    len(out),
				Start: seg.Start - b.First,
				End:   seg.End - b.First,
				Text:  seg.Text,
			})
			if text := strings.TrimSpace(seg.Text); text != "" {
				allWords = append(allWords, text)
			}
			continue
		}

		kept := make([]transcript.Word, 0, len(seg.Words))
		for _, w := range seg.Words {
			if variant.keeps(w, b) {
				kept = append(kept, transcript.Word{
					Word:  w.Word,
					Start: w.Start - b.First,
					End:   w.End - b.First,
				})
			}
		}
		if len(kept) == 0 {
			continue
		}

		words := make([]string, len(kept))
		for i, w := range kept {
			words[i] = strings.TrimSpace(w.Word)
		}
		out = append(out, transcript.Segment{
			ID:    len(out),
			Start: kept[0].Start,
			End:   kept[len(kept)-1].End,
			Text:  strings.Join(words, " "),
			Words: kept,
		})
		allWords = append(allWords, words...)
	}

	return strings.Join(allWords, " "), out
}

func (v Variant) keeps(w transcript.Word, b Boundary) bool {
	if v == VariantStartWithin {
		return w.Start >= b.First && w.Start <= b.Last
	}
	return b.First <= w.Start && w.Start <= w.End && w.End <= b.Last
}
