package generator

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"story-archiver/model"
	"story-archiver/text"
)

func intPtr(n int) *int { return &n }

func TestGenerate_AllFormats(t *testing.T) {
	story := &model.Story{Id: "7", Title: "T", Author: "A", Chapters: intPtr(2)}
	for _, format := range model.Formats {
		t.Run(string(format), func(t *testing.T) {
			artifact, err := Generate(story, Options{Format: format})
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if artifact.Format != format {
				t.Errorf("format = %q", artifact.Format)
			}
			if artifact.MediaType != format.MediaType() {
				t.Errorf("media type = %q", artifact.MediaType)
			}
			if len(artifact.Data) == 0 {
				t.Errorf("empty artifact")
			}
		})
	}
}

func TestGenerate_PdfIsPlainText(t *testing.T) {
	story := &model.Story{Id: "7", Title: "T", Author: "A"}
	artifact, err := Generate(story, Options{Format: model.FormatPdf})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if artifact.MediaType != "application/pdf" {
		t.Errorf("media type = %q", artifact.MediaType)
	}
	if !bytes.Equal(artifact.Data, text.PackStoryToText(story, nil)) {
		t.Errorf("pdf body is not the plain text body")
	}
}

func TestGenerate_EpubEmbedsCover(t *testing.T) {
	story := &model.Story{Id: "7", Title: "T", Author: "A"}
	artifact, err := Generate(story, Options{Format: model.FormatEpub, Cover: []byte("png")})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(artifact.Data), int64(len(artifact.Data)))
	if err != nil {
		t.Fatalf("zip: %v", err)
	}
	found := false
	for _, f := range zr.File {
		if f.Name == "OEBPS/cover.png" {
			found = true
		}
	}
	if !found {
		t.Errorf("cover not embedded")
	}
}

func TestGenerate_UnknownFormat(t *testing.T) {
	story := &model.Story{Id: "7", Title: "T", Author: "A"}
	_, err := Generate(story, Options{Format: "docx"})
	if !errors.Is(err, model.ErrUnknownFormat) {
		t.Errorf("err = %v, want ErrUnknownFormat", err)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := model.GenerationConfig{
		Format:     model.FormatHtml,
		Appearance: model.Appearance{JustifyText: true},
		PdfLayout:  model.PdfLayoutNative,
	}
	opts := OptionsFromConfig(cfg, []model.Chapter{{Number: 1}}, []byte{1})
	if opts.Format != model.FormatHtml || !opts.Appearance.JustifyText || opts.PdfLayout != model.PdfLayoutNative {
		t.Errorf("opts = %+v", opts)
	}
	if len(opts.Chapters) != 1 || len(opts.Cover) != 1 {
		t.Errorf("inputs not carried: %+v", opts)
	}
}
