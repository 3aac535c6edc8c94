package homily

import (
	"errors"
	"fmt"

	"github.com/mylatinmass/audio-youtube-wf/internal/transcript"
)

// DefaultMarker is the trinitarian blessing that opens and closes a homily.
// "Amen" is mandatory: bare "Holy Ghost" occurs constantly in ordinary
// speech and must never demarcate a boundary.
const DefaultMarker = "Holy Ghost|Spirit. Amen."

// End-boundary strategies. Exactly one is active per resolver; they are
// never blended within a run.
const (
	// EndStrategyMarker closes the homily just before the last occurrence
	// of the marker phrase in the transcript.
	EndStrategyMarker = "marker"
	// EndStrategySilence closes the homily at the first inter-word silence
	// gap at or above the configured threshold after the homily start.
	EndStrategySilence = "silence"
)

// ErrNotFound signals a recoverable boundary-detection failure: the marker
// never occurs, or no words remain after the resolved start. Callers are
// expected to fall back to manual entry rather than abort.
var ErrNotFound = errors.New("homily boundary not found")

// Boundary is the resolved homily time range in the original transcript's
// time base, in absolute seconds.
type Boundary struct {
	First float64
	Last  float64
}

// ResolverConfig tunes boundary detection. Marker is the sole pattern
// surface; it is compiled once and self-checked at construction.
type ResolverConfig struct {
	Marker           string
	EndStrategy      string
	SilenceThreshold float64 // seconds, silence strategy only
}

// Resolver locates the homily inside a full-service transcript.
type Resolver struct {
	marker           string
	pattern          Pattern
	endStrategy      string
	silenceThreshold float64
}

// NewResolver compiles the marker and verifies it at construction: a marker
// that matches a synthetic bare "Holy Ghost" word pair without a trailing
// "Amen" is misconfigured and would split recordings at every ordinary
// mention of the phrase. That is a fatal configuration error, not a runtime
// transcript condition.
func NewResolver(cfg ResolverConfig) (*Resolver, error) {
	if cfg.Marker == "" {
		cfg.Marker = DefaultMarker
	}
	if cfg.EndStrategy == "" {
		cfg.EndStrategy = EndStrategyMarker
	}
	if cfg.EndStrategy != EndStrategyMarker && cfg.EndStrategy != EndStrategySilence {
		return nil, fmt.Errorf("unknown end strategy %q", cfg.EndStrategy)
	}
	if cfg.EndStrategy == EndStrategySilence && cfg.SilenceThreshold <= 0 {
		return nil, fmt.Errorf("silence strategy requires a positive threshold, got %v", cfg.SilenceThreshold)
	}

	pattern := CompilePattern(cfg.Marker)
	if len(pattern) == 0 {
		return nil, fmt.Errorf("marker %q compiles to an empty pattern", cfg.Marker)
	}

	bare := &transcript.Transcript{Segments: []transcript.Segment{{
		Words: []transcript.Word{
			{Word: "Holy", Start: 0.0, End: 0.5},
			{Word: "Ghost", Start: 0.5, End: 1.0},
		},
	}}}
	if _, ok := FindPhrase(bare, pattern, false, 0); ok {
		return nil, fmt.Errorf("marker %q matches bare \"Holy Ghost\": the trailing word must be mandatory", cfg.Marker)
	}

	return &Resolver{
		marker:           cfg.Marker,
		pattern:          pattern,
		endStrategy:      cfg.EndStrategy,
		silenceThreshold: cfg.SilenceThreshold,
	}, nil
}

// Marker returns the configured marker expression.
func (r *Resolver) Marker() string { return r.marker }

// Resolve locates the homily boundaries. The homily starts at the end of the
// first marker occurrence (the blessing itself is not part of the homily).
// The end is resolved by the configured strategy. A failure to find either
// boundary returns an error wrapping ErrNotFound; it never fabricates a
// plausible-but-wrong boundary.
func (r *Resolver) Resolve(t *transcript.Transcript) (Boundary, error) {
	opening, ok := FindPhrase(t, r.pattern, false, 0)
	if !ok {
		return Boundary{}, fmt.Errorf("opening marker %q: %w", r.marker, ErrNotFound)
	}
	first := opening.End

	var last float64
	var err error
	switch r.endStrategy {
	case EndStrategySilence:
		last, err = r.silenceEnd(t, first)
	default:
		last, err = r.markerEnd(t, first)
	}
	if err != nil {
		return Boundary{}, err
	}
	return Boundary{First: first, Last: last}, nil
}

// markerEnd closes the homily just before the final marker occurrence. The
// search walks every occurrence in order, which is equivalent to repeatedly
// re-searching forward past the previous match; the closing boundary is the
// end of the word immediately preceding the last occurrence.
func (r *Resolver) markerEnd(t *transcript.Transcript, first float64) (float64, error) {
	tokens := Flatten(t, 0, false)
	matches := searchAll(tokens, r.pattern)
	if len(matches) < 2 {
		return 0, fmt.Errorf("closing marker %q after %.2fs: %w", r.marker, first, ErrNotFound)
	}

	final := matches[len(matches)-1]
	if final.start == 0 {
		return 0, fmt.Errorf("closing marker %q has no preceding word: %w", r.marker, ErrNotFound)
	}
	last := tokens[final.start-1].End
	if last <= first {
		return 0, fmt.Errorf("closing marker %q precedes homily start: %w", r.marker, ErrNotFound)
	}
	return last, nil
}

// silenceEnd scans words chronologically from the homily start; the first
// gap of at least the configured threshold marks the end at the earlier
// word's end. With no qualifying gap the homily runs to the final word.
func (r *Resolver) silenceEnd(t *transcript.Transcript, first float64) (float64, error) {
	var prev *transcript.Word
	for _, w := range t.AllWords() {
		if w.Start < first {
			continue
		}
		w := w
		if prev != nil && w.Start-prev.End >= r.silenceThreshold {
			return prev.End, nil
		}
		prev = &w
	}
	if prev == nil {
		return 0, fmt.Errorf("no words after homily start %.2fs: %w", first, ErrNotFound)
	}
	return prev.End, nil
}
