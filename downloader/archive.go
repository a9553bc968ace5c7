// Package downloader fetches story descriptions and turns them into saved
// archive files.
package downloader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"story-archiver/cover"
	"story-archiver/generator"
	"story-archiver/model"
	"story-archiver/story"
	"story-archiver/utils"
)

// Result is the outcome of archiving one story.
type Result struct {
	Story    *model.Story
	Artifact *model.Artifact
	Filename string
	// Cover is the rendered PNG, nil when covers are disabled or rendering
	// failed. CoverErr records the failure.
	Cover    []byte
	CoverErr error
}

// Archiver renders covers and documents for stories.
type Archiver struct {
	Covers         *cover.Renderer
	CoverOverrides cover.Theme
	Logger         logrus.FieldLogger
	Now            func() time.Time
}

func NewArchiver(logger logrus.FieldLogger) *Archiver {
	return &Archiver{
		Covers: cover.NewRenderer(2),
		Logger: logger,
		Now:    time.Now,
	}
}

func (a *Archiver) logger() logrus.FieldLogger {
	if a.Logger == nil {
		return logrus.StandardLogger()
	}
	return a.Logger
}

// Archive draws the cover (when enabled), generates the document and names
// it. A cover failure is logged and recorded on the result but never stops
// the document from being produced.
func (a *Archiver) Archive(s *model.Story, chapters []model.Chapter, cfg model.GenerationConfig) (*Result, error) {
	if err := story.Validate(s); err != nil {
		return nil, err
	}
	log := a.logger().WithFields(logrus.Fields{"story": s.Id, "format": cfg.Format})
	result := &Result{Story: s}

	if cfg.GenerateCover {
		covers := a.Covers
		if covers == nil {
			covers = cover.NewRenderer(1)
		}
		png, err := covers.Generate(s, cfg.CoverTheme, a.CoverOverrides)
		if err != nil {
			log.WithError(err).Warn("Cover generation failed, continuing without a cover")
			result.CoverErr = err
		} else {
			result.Cover = png
		}
	}

	opts := generator.OptionsFromConfig(cfg, chapters, result.Cover)
	opts.Logger = log
	artifact, err := generator.Generate(s, opts)
	if err != nil {
		return nil, err
	}
	result.Artifact = artifact

	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	result.Filename = utils.RenderFilenameAt(cfg.FilenameTemplate, s, now()) + "." + string(cfg.Format)
	log.WithField("file", result.Filename).Info("Archived story")
	return result, nil
}

// Save writes the artifact into dir. For formats that cannot embed the cover,
// the cover is written beside it as {stem}.png. It returns the written paths.
func Save(result *Result, dir string) ([]string, error) {
	if result == nil || result.Artifact == nil {
		return nil, fmt.Errorf("nothing to save")
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	path := filepath.Join(dir, result.Filename)
	if err := os.WriteFile(path, result.Artifact.Data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	written = append(written, path)

	if result.Cover != nil && result.Artifact.Format != model.FormatEpub {
		stem := strings.TrimSuffix(result.Filename, filepath.Ext(result.Filename))
		coverPath := filepath.Join(dir, stem+".png")
		if err := os.WriteFile(coverPath, result.Cover, 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", coverPath, err)
		}
		written = append(written, coverPath)
	}
	return written, nil
}
