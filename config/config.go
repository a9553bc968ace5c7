// Package config loads the persisted settings and resolves them, together with
// the per-request options, into the effective generation configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"story-archiver/cover"
	"story-archiver/model"
	"story-archiver/utils"
)

const (
	EnvAnalyzerURL     = "STORY_ARCHIVER_ANALYZER_URL"
	DefaultAnalyzerURL = "http://localhost:5000"

	DefaultFormat        = model.FormatEpub
	DefaultDownloadDelay = 2
)

// Load reads settings from a YAML file. A missing file yields empty settings,
// which Resolve turns into the defaults. The analyzer URL can be overridden
// from the environment.
func Load(path string) (*model.Settings, error) {
	settings := &model.Settings{}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, settings); err != nil {
				return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
			}
		}
	}
	if url := strings.TrimSpace(os.Getenv(EnvAnalyzerURL)); url != "" {
		settings.AnalyzerUrl = url
	}
	if err := utils.ValidateStruct(settings); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

// AnalyzerURL is the base URL of the analysis service.
func AnalyzerURL(settings *model.Settings) string {
	if settings != nil && settings.AnalyzerUrl != "" {
		return strings.TrimRight(settings.AnalyzerUrl, "/")
	}
	return DefaultAnalyzerURL
}

// Resolve merges request options over settings over the built-in defaults.
// Both arguments may be nil.
func Resolve(settings *model.Settings, options *model.DownloadOptions) model.GenerationConfig {
	if settings == nil {
		settings = &model.Settings{}
	}
	if options == nil {
		options = &model.DownloadOptions{}
	}

	cfg := model.GenerationConfig{
		Format:           DefaultFormat,
		FilenameTemplate: utils.DefaultFilenameTemplate,
		GenerateCover:    true,
		ChapterDelay:     DefaultDownloadDelay * time.Second,
		CoverTheme:       cover.DefaultTheme,
		PdfLayout:        model.PdfLayoutText,
		Appearance: model.Appearance{
			FontStyle:      settings.FontStyle,
			FontSize:       settings.FontSize,
			ParagraphStyle: settings.ParagraphStyle,
			JustifyText:    settings.JustifyText,
		},
	}

	switch {
	case options.Format.Valid():
		cfg.Format = options.Format
	case settings.DefaultFormat.Valid():
		cfg.Format = settings.DefaultFormat
	}
	if settings.FilenameTemplate != "" {
		cfg.FilenameTemplate = settings.FilenameTemplate
	}

	cfg.IncludeReviews = firstBool(false, options.IncludeReviews, settings.IncludeReviews)
	cfg.GenerateCover = firstBool(true, options.GenerateCover, settings.GenerateCovers)

	if settings.DownloadDelay != nil && *settings.DownloadDelay >= 0 {
		cfg.ChapterDelay = time.Duration(*settings.DownloadDelay) * time.Second
	}
	if settings.CoverTheme != "" {
		cfg.CoverTheme = settings.CoverTheme
	}
	if settings.PdfLayout == model.PdfLayoutNative {
		cfg.PdfLayout = model.PdfLayoutNative
	}
	return cfg
}

func firstBool(fallback bool, values ...*bool) bool {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return fallback
}
