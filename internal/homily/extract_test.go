package homily

import (
	"testing"

	"github.com/mylatinmass/audio-youtube-wf/internal/transcript"
)

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in      string
		want    Variant
		wantErr bool
	}{
		{"strict", VariantStrict, false},
		{"start-within", VariantStartWithin, false},
		{"", VariantStrict, false},
		{"loose", "", true},
	}

	for _, tt := range tests {
		got, err := ParseVariant(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseVariant(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseVariant(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// Reference case from the boundary-inclusivity comparison: words at
// [0,1] [1,2] [2,3] [3,4] with boundary first=1, last=3.
func TestExtractInclusivityVariants(t *testing.T) {
	tr := wordSeq(
		w("alpha", 0, 1),
		w("beta", 1, 2),
		w("gamma", 2, 3),
		w("delta", 3, 4),
	)
	b := Boundary{First: 1, Last: 3}

	t.Run("strict keeps fully contained words", func(t *testing.T) {
		text, segs := Extract(tr, b, VariantStrict)
		if text != "beta gamma" {
			t.Errorf("text = %q, want %q", text, "beta gamma")
		}
		if len(segs) != 1 {
			t.Fatalf("got %d segments, want 1", len(segs))
		}
		words := segs[0].Words
		if len(words) != 2 {
			t.Fatalf("got %d words, want 2", len(words))
		}
		// Re-based: the word at original [1,2] starts the homily at 0.
		if words[0].Start != 0 || words[0].End != 1 {
			t.Errorf("word 0 = [%v, %v], want [0, 1]", words[0].Start, words[0].End)
		}
		if segs[0].Start != 0 || segs[0].End != 2 {
			t.Errorf("segment = [%v, %v], want [0, 2]", segs[0].Start, segs[0].End)
		}
	})

	t.Run("start-within also keeps the word ringing past the end", func(t *testing.T) {
		text, segs := Extract(tr, b, VariantStartWithin)
		if text != "beta gamma delta" {
			t.Errorf("text = %q, want %q", text, "beta gamma delta")
		}
		if len(segs) != 1 || len(segs[0].Words) != 3 {
			t.Fatalf("segments = %+v, want 1 segment with 3 words", segs)
		}
		last := segs[0].Words[2]
		if last.Start != 2 || last.End != 3 {
			t.Errorf("last word = [%v, %v], want [2, 3]", last.Start, last.End)
		}
	})
}

func TestExtractDropsEmptySegments(t *testing.T) {
	tr := &transcript.Transcript{Segments: []transcript.Segment{
		{Words: []transcript.Word{w("before", 0, 1)}},
		{Words: []transcript.Word{w("inside", 10, 11), w("too", 11, 12)}},
		{Words: []transcript.Word{w("after", 50, 51)}},
	}}

	text, segs := Extract(tr, Boundary{First: 10, Last: 12}, VariantStrict)
	if text != "inside too" {
		t.Errorf("text = %q, want %q", text, "inside too")
	}
	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1 (outside segments dropped)", len(segs))
	}
	if segs[0].ID != 0 {
		t.Errorf("retained segment ID = %d, want 0 (renumbered)", segs[0].ID)
	}
	if segs[0].Text != "inside too" {
		t.Errorf("segment text = %q", segs[0].Text)
	}
}

func TestExtractEmptyRange(t *testing.T) {
	tr := wordSeq(w("word", 0, 1))
	text, segs := Extract(tr, Boundary{First: 100, Last: 200}, VariantStrict)
	if text != "" || len(segs) != 0 {
		t.Errorf("expected empty result, got text=%q segs=%v", text, segs)
	}
}

func TestExtractMultipleSegmentsPreservesOrder(t *testing.T) {
	tr := &transcript.Transcript{Segments: []transcript.Segment{
		{Words: []transcript.Word{w("first", 10, 11), w("part", 11, 12)}},
		{Words: []transcript.Word{w("second", 12, 13), w("part", 13, 14)}},
	}}

	text, segs := Extract(tr, Boundary{First: 10, Last: 14}, VariantStrict)
	if text != "first part second part" {
		t.Errorf("text = %q", text)
	}
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2", len(segs))
	}
	if segs[1].Start != 2 || segs[1].End != 4 {
		t.Errorf("segment 1 = [%v, %v], want [2, 4]", segs[1].Start, segs[1].End)
	}
	if segs[1].ID != 1 {
		t.Errorf("segment 1 ID = %d, want 1", segs[1].ID)
	}
}

func TestExtractSegmentsWithoutWordTimings(t *testing.T) {
	tr := &transcript.Transcript{
		Segments: []transcript.Segment{
			{ID: 0, Start: 0, End: 40, Text: "blessing"},
			{ID: 1, Start: 45, End: 300, Text: "first part of the homily"},
			{ID: 2, Start: 300, End: 600, Text: "second part of the homily"},
			{ID: 3, Start: 610, End: 700, Text: "closing prayers"},
		},
	}

	text, segs := Extract(tr, Boundary{First: 45, Last: 600}, VariantStrict)
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2", len(segs))
	}
	if segs[0].Start != 0 || segs[0].End != 255 {
		t.Errorf("segment 0 times = [%v,%v], want [0,255]", segs[0].Start, segs[0].End)
	}
	if segs[1].ID != 1 {
		t.Errorf("segment IDs not renumbered: %d", segs[1].ID)
	}
	want := "first part of the homily second part of the homily"
	if text != want {
		t.Errorf("text = %q, want %q", text, want)
	}
}
