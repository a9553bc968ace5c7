package template

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"story-archiver/model"
)

// Section is one chapter of a linear document.
type Section struct {
	Title      string
	Paragraphs []string
}

// HTMLDocument renders the standalone HTML artifact.
func HTMLDocument(story *model.Story, sections []Section, extraCSS string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := templ.EscapeString(story.Title)
		sb := strings.Builder{}
		sb.WriteString(`<!DOCTYPE html>
<html lang="` + templ.EscapeString(languageOr(story.Language, "en")) + `">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>` + title + `</title>
    <style>` + HTMLStyleCSS + extraCSS + `</style>
</head>
<body>
    <h1>` + title + `</h1>
    <div class="meta">
        <p>By ` + templ.EscapeString(story.Author) + `</p>
`)
		if story.HasFandom() {
			sb.WriteString(fmt.Sprintf("        <p>Fandom: %s</p>\n", templ.EscapeString(story.FandomText())))
		}
		if story.HasSummary() {
			sb.WriteString(fmt.Sprintf("        <p>Summary: %s</p>\n", multiline(story.Summary)))
		}
		sb.WriteString("    </div>\n")
		for _, section := range sections {
			sb.WriteString("    <div class=\"chapter\">\n")
			sb.WriteString(fmt.Sprintf("        <h2>%s</h2>\n", templ.EscapeString(section.Title)))
			for _, p := range section.Paragraphs {
				sb.WriteString(fmt.Sprintf("        <p>%s</p>\n", templ.EscapeString(p)))
			}
			sb.WriteString("    </div>\n")
		}
		sb.WriteString("</body>\n</html>")
		_, err := io.WriteString(w, sb.String())
		return err
	})
}

func languageOr(lang, fallback string) string {
	if strings.TrimSpace(lang) == "" {
		return fallback
	}
	return lang
}
