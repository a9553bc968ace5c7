package template

import (
	"fmt"
	"strings"

	"story-archiver/model"
)

// StyleCSS is OEBPS/styles.css, linked from every content document.
const StyleCSS = `body {
  font-family: Georgia, serif;
  line-height: 1.6;
  margin: 0;
  padding: 20px;
}

h1, h2 {
  color: #333;
}

.title-page {
  text-align: center;
  page-break-after: always;
}

.chapter {
  page-break-before: always;
}

p {
  margin-bottom: 1em;
  text-align: justify;
}`

// HTMLStyleCSS is inlined into the standalone HTML document.
const HTMLStyleCSS = `
        body { font-family: Georgia, serif; max-width: 800px; margin: 0 auto; padding: 20px; }
        h1 { color: #333; border-bottom: 2px solid #333; }
        .meta { color: #666; font-style: italic; margin-bottom: 30px; }
        .chapter { margin-bottom: 40px; }
        .chapter h2 { color: #555; }
    `

var fontFamilies = map[string]string{
	"serif":      "Georgia, serif",
	"sans-serif": "Helvetica, Arial, sans-serif",
	"monospace":  "\"Courier New\", monospace",
	"dyslexic":   "OpenDyslexic, sans-serif",
}

var fontSizes = map[string]string{
	"small":       "0.9em",
	"regular":     "1em",
	"large":       "1.15em",
	"extra large": "1.3em",
}

// AppearanceCSS renders the rules implied by the reader's formatting
// preferences. It returns "" for the zero Appearance.
func AppearanceCSS(a model.Appearance) string {
	if a.IsZero() {
		return ""
	}
	var body, p []string
	if family, ok := fontFamilies[strings.ToLower(a.FontStyle)]; ok {
		body = append(body, "font-family: "+family+";")
	}
	if size, ok := fontSizes[strings.ToLower(a.FontSize)]; ok {
		body = append(body, "font-size: "+size+";")
	}
	switch strings.ToLower(a.ParagraphStyle) {
	case "indent":
		p = append(p, "margin: 0;", "text-indent: 1.5em;")
	case "space":
		p = append(p, "margin: 0 0 1em 0;", "text-indent: 0;")
	case "space + indent":
		p = append(p, "margin: 0 0 1em 0;", "text-indent: 1.5em;")
	}
	if a.JustifyText {
		p = append(p, "text-align: justify;")
	} else {
		p = append(p, "text-align: left;")
	}

	sb := strings.Builder{}
	if len(body) > 0 {
		sb.WriteString(fmt.Sprintf("\n\nbody {\n  %s\n}", strings.Join(body, "\n  ")))
	}
	sb.WriteString(fmt.Sprintf("\n\np {\n  %s\n}", strings.Join(p, "\n  ")))
	return sb.String()
}
