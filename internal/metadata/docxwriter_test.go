package metadata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSplitParagraphs(t *testing.T) {
	text := "One. Two. Three. Four. Five. Six."
	paras := splitParagraphs(text)

	if len(paras) != 2 {
		t.Fatalf("got %d paragraphs: %v", len(paras), paras)
	}
	if paras[0] != "One. Two. Three. Four." {
		t.Errorf("first paragraph = %q", paras[0])
	}
	if paras[1] != "Five. Six." {
		t.Errorf("second paragraph = %q", paras[1])
	}
}

func TestSplitParagraphsNoTerminator(t *testing.T) {
	paras := splitParagraphs("words without any sentence ending")
	if len(paras) != 1 {
		t.Fatalf("got %d paragraphs", len(paras))
	}
}

func TestSplitParagraphsEmpty(t *testing.T) {
	if paras := splitParagraphs("   "); paras != nil {
		t.Errorf("blank input should yield no paragraphs, got %v", paras)
	}
}

func TestWriteTranscriptDocx(t *testing.T) {
	out := filepath.Join(t.TempDir(), "homily.docx")
	text := strings.Repeat("In the name of the Father. ", 10)

	if err := WriteTranscriptDocx("Sunday Homily", text, out); err != nil {
		t.Fatalf("WriteTranscriptDocx: %v", err)
	}

	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output file is empty")
	}
}
