package metadata

import (
	"strings"

	"github.com/gomutex/godocx"
)

const (
	fontName         = "Times New Roman"
	fontSize         = 13
	sentencesPerPara = 4
)

// WriteTranscriptDocx renders the homily transcript as a styled docx for
// proofreading and archival. The raw text is one long run of words, so it
// is regrouped into paragraphs of a few sentences each.
func WriteTranscriptDocx(title, text, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	doc.AddParagraph("").AddText(title).Font(fontName).Size(16).Color("000000").Bold(true)
	doc.AddParagraph("")

	for _, para := range splitParagraphs(text) {
		doc.AddParagraph("").AddText(para).Font(fontName).Size(fontSize).Color("000000")
	}

	return doc.SaveTo(outputPath)
}

// splitParagraphs breaks a flat transcript into paragraphs on sentence
// boundaries. Abbreviation handling is deliberately naive; the output is
// for human readers, not parsing.
func splitParagraphs(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var paras []string
	var current []string
	sentences := 0

	for _, w := range words {
		current = append(current, w)
		if strings.HasSuffix(w, ".") || strings.HasSuffix(w, "?") || strings.HasSuffix(w, "!") {
			sentences++
			if sentences >= sentencesPerPara {
				paras = append(paras, strings.Join(current, " "))
				current = nil
				sentences = 0
			}
		}
	}
	if len(current) > 0 {
		paras = append(paras, strings.Join(current, " "))
	}
	return paras
}
