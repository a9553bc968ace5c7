package utils

import (
	"strings"
	"time"

	"story-archiver/model"
)

const DefaultFilenameTemplate = "{author} - {title}"

// RenderFilename substitutes {title}, {author}, {fandom} and {date} in tpl.
// Every other placeholder, recognized or not, is left as written.
func RenderFilename(tpl string, story *model.Story) string {
	return RenderFilenameAt(tpl, story, time.Now())
}

// RenderFilenameAt is RenderFilename with an explicit clock.
func RenderFilenameAt(tpl string, story *model.Story, now time.Time) string {
	fandom := "Unknown"
	if story.HasFandom() {
		fandom = story.FandomText()
	}
	// A single pass over tpl: substituted values are never re-scanned.
	r := strings.NewReplacer(
		"{title}", Sanitize(story.Title),
		"{author}", Sanitize(story.Author),
		"{fandom}", Sanitize(fandom),
		"{date}", now.UTC().Format(time.DateOnly),
	)
	return r.Replace(tpl)
}

// Filename is the rendered stem followed by "." and the format name.
func Filename(story *model.Story, format model.Format, tpl string) string {
	return RenderFilename(tpl, story) + "." + string(format)
}
