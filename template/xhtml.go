package template

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"story-archiver/model"
)

const xhtmlHead = `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <title>%s</title>
  <link rel="stylesheet" type="text/css" href="styles.css"/>
</head>
<body>
`

const xhtmlTail = `</body>
</html>`

// TitlePageXHTML renders OEBPS/titlepage.xhtml.
func TitlePageXHTML(story *model.Story) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		sb := strings.Builder{}
		sb.WriteString(fmt.Sprintf(xhtmlHead, "Title Page"))
		sb.WriteString(`  <div class="title-page">` + "\n")
		sb.WriteString(fmt.Sprintf("    <h1>%s</h1>\n", templ.EscapeString(story.Title)))
		sb.WriteString(fmt.Sprintf("    <h2>by %s</h2>\n", templ.EscapeString(story.Author)))
		if story.HasFandom() {
			sb.WriteString(fmt.Sprintf("    <p><strong>Fandom:</strong> %s</p>\n", templ.EscapeString(story.FandomText())))
		}
		if story.HasSummary() {
			sb.WriteString(fmt.Sprintf("    <div><strong>Summary:</strong><br/>%s</div>\n", multiline(story.Summary)))
		}
		sb.WriteString("  </div>\n")
		sb.WriteString(xhtmlTail)
		_, err := io.WriteString(w, sb.String())
		return err
	})
}

// ChapterXHTML renders one OEBPS/chapterN.xhtml document.
func ChapterXHTML(title string, paragraphs []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		escaped := templ.EscapeString(title)
		sb := strings.Builder{}
		sb.WriteString(fmt.Sprintf(xhtmlHead, escaped))
		sb.WriteString(`  <div class="chapter">` + "\n")
		sb.WriteString(fmt.Sprintf("    <h2>%s</h2>\n", escaped))
		for _, p := range paragraphs {
			sb.WriteString(fmt.Sprintf("    <p>%s</p>\n", templ.EscapeString(p)))
		}
		sb.WriteString("  </div>\n")
		sb.WriteString(xhtmlTail)
		_, err := io.WriteString(w, sb.String())
		return err
	})
}

// multiline escapes s and turns its line breaks into <br/>.
func multiline(s string) string {
	lines := strings.Split(strings.ReplaceAll(strings.TrimSpace(s), "\r\n", "\n"), "\n")
	for i := range lines {
		lines[i] = templ.EscapeString(lines[i])
	}
	return strings.Join(lines, "<br/>")
}
