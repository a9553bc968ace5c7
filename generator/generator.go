// Package generator turns a story into a document artifact in the requested
// format.
package generator

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"story-archiver/epub"
	"story-archiver/model"
	"story-archiver/pdf"
	"story-archiver/text"
)

// Options select the format and carry the optional inputs the formats use.
type Options struct {
	Format     model.Format
	Chapters   []model.Chapter
	Cover      []byte // PNG, embedded into EPUB only
	Appearance model.Appearance
	PdfLayout  model.PdfLayout
	Logger     logrus.FieldLogger
}

// OptionsFromConfig builds Options from a resolved configuration.
func OptionsFromConfig(cfg model.GenerationConfig, chapters []model.Chapter, cover []byte) Options {
	return Options{
		Format:     cfg.Format,
		Chapters:   chapters,
		Cover:      cover,
		Appearance: cfg.Appearance,
		PdfLayout:  cfg.PdfLayout,
	}
}

// Generate produces the artifact for story. Unknown formats are rejected with
// model.ErrUnknownFormat.
func Generate(story *model.Story, opts Options) (*model.Artifact, error) {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithFields(logrus.Fields{"story": story.Id, "format": opts.Format})

	chapters := model.NewChapterSet(opts.Chapters)
	var (
		data []byte
		err  error
	)
	switch opts.Format {
	case model.FormatEpub:
		data, err = epub.PackStory(story, epub.Options{
			Chapters:   chapters,
			Cover:      opts.Cover,
			Appearance: opts.Appearance,
			Logger:     log,
		})
	case model.FormatPdf:
		data, err = pdf.PackStoryToPDF(story, chapters, opts.PdfLayout)
	case model.FormatTxt:
		data = text.PackStoryToText(story, chapters)
	case model.FormatHtml:
		data, err = text.PackStoryToHTML(story, chapters, opts.Appearance)
	case model.FormatMarkdown:
		data = text.PackStoryToMarkdown(story, chapters)
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownFormat, opts.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s: %w", opts.Format, err)
	}

	log.WithField("bytes", len(data)).Debug("Generated document")
	return &model.Artifact{
		Format:    opts.Format,
		MediaType: opts.Format.MediaType(),
		Data:      data,
	}, nil
}
