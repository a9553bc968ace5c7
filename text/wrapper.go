package text

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"story-archiver/model"
	"story-archiver/template"
)

// Placeholder is the body used for chapters whose text was not supplied.
func Placeholder(n int) string {
	return fmt.Sprintf("This is the content of chapter %d. In a real implementation, this would contain the actual story content.", n)
}

// Sections lists the chapters to render, ascending, with supplied text where
// available and placeholder text otherwise.
func Sections(story *model.Story, chapters model.ChapterSet) []template.Section {
	sections := make([]template.Section, story.ChapterCount())
	for i := range sections {
		n := i + 1
		sections[i].Title = chapters.Title(n)
		if c := chapters.Get(n); c != nil {
			sections[i].Paragraphs = c.Paragraphs
		} else {
			sections[i].Paragraphs = []string{Placeholder(n)}
		}
	}
	return sections
}

// PackStoryToText renders the plain-text document.
func PackStoryToText(story *model.Story, chapters model.ChapterSet) []byte {
	sb := strings.Builder{}
	sb.WriteString(story.Title + "\n")
	sb.WriteString("by " + story.Author + "\n\n")
	if story.HasFandom() {
		sb.WriteString("Fandom: " + story.FandomText() + "\n")
	}
	if story.HasSummary() {
		sb.WriteString("Summary: " + story.Summary + "\n")
	}
	sb.WriteString("\n\n")
	for _, section := range Sections(story, chapters) {
		sb.WriteString("\n" + section.Title + "\n\n")
		sb.WriteString(strings.Join(section.Paragraphs, "\n\n"))
		sb.WriteString("\n\n")
	}
	return []byte(sb.String())
}

// PackStoryToMarkdown renders the Markdown document. Metadata lines for absent
// fields are left out entirely.
func PackStoryToMarkdown(story *model.Story, chapters model.ChapterSet) []byte {
	sb := strings.Builder{}
	sb.WriteString("# " + story.Title + "\n\n")
	sb.WriteString("**Author:** " + story.Author + "\n")
	if story.HasFandom() {
		sb.WriteString("**Fandom:** " + story.FandomText() + "\n")
	}
	if story.HasSummary() {
		sb.WriteString("**Summary:** " + story.Summary + "\n")
	}
	sb.WriteString("\n---\n\n")
	for _, section := range Sections(story, chapters) {
		sb.WriteString("\n## " + section.Title + "\n\n")
		sb.WriteString(strings.Join(section.Paragraphs, "\n\n"))
		sb.WriteString("\n\n")
	}
	return []byte(sb.String())
}

// PackStoryToHTML renders the standalone HTML document.
func PackStoryToHTML(story *model.Story, chapters model.ChapterSet, appearance model.Appearance) ([]byte, error) {
	buf := bytes.Buffer{}
	err := template.HTMLDocument(story, Sections(story, chapters), template.AppearanceCSS(appearance)).Render(context.Background(), &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to render html: %w", err)
	}
	return buf.Bytes(), nil
}
