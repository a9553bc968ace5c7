// Package pdf produces the PDF artifact.
//
// By default the body is the plain-text document labelled as PDF, which is
// what the web client has always shipped. LayoutNative typesets a real PDF with
// gofpdf instead.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"story-archiver/model"
	"story-archiver/text"
)

const (
	headingFont = "Helvetica"
	bodyFont    = "Times"
	margin      = 20.0
	lineHeight  = 6.0
)

func PackStoryToPDF(story *model.Story, chapters model.ChapterSet, layout model.PdfLayout) ([]byte, error) {
	if layout != model.PdfLayoutNative {
		return text.PackStoryToText(story, chapters), nil
	}
	return typeset(story, chapters)
}

func typeset(story *model.Story, chapters model.ChapterSet) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetTitle(story.Title, true)
	pdf.SetAuthor(story.Author, true)
	pdf.SetCreator("story-archiver", true)
	// Core fonts are cp1252; translate UTF-8 input.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		if pdf.PageNo() == 1 {
			return
		}
		pdf.SetY(-15)
		pdf.SetFont(headingFont, "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	// Title page
	pdf.AddPage()
	pdf.Ln(60)
	pdf.SetFont(headingFont, "B", 28)
	pdf.MultiCell(0, 12, tr(story.Title), "", "C", false)
	pdf.Ln(8)
	pdf.SetFont(bodyFont, "I", 16)
	pdf.MultiCell(0, 8, tr("by "+story.Author), "", "C", false)
	if story.HasFandom() {
		pdf.Ln(6)
		pdf.SetFont(bodyFont, "", 12)
		pdf.MultiCell(0, lineHeight, tr("Fandom: "+story.FandomText()), "", "C", false)
	}
	if story.HasSummary() {
		pdf.Ln(10)
		pdf.SetFont(bodyFont, "", 12)
		pdf.MultiCell(0, lineHeight, tr("Summary: "+strings.TrimSpace(story.Summary)), "", "J", false)
	}

	for _, section := range text.Sections(story, chapters) {
		pdf.AddPage()
		pdf.SetFont(headingFont, "B", 20)
		pdf.MultiCell(0, 10, tr(section.Title), "", "L", false)
		pdf.Ln(6)
		pdf.SetFont(bodyFont, "", 12)
		for _, p := range section.Paragraphs {
			pdf.MultiCell(0, lineHeight, tr(p), "", "J", false)
			pdf.Ln(3)
		}
	}

	buf := bytes.Buffer{}
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
