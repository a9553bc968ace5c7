package model

import (
	"fmt"
	"strings"
	"time"
)

type Format string

const (
	FormatEpub     Format = "epub"
	FormatPdf      Format = "pdf"
	FormatTxt      Format = "txt"
	FormatHtml     Format = "html"
	FormatMarkdown Format = "markdown"
)

var Formats = []Format{FormatEpub, FormatPdf, FormatTxt, FormatHtml, FormatMarkdown}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
	return f, nil
}

func (f Format) Valid() bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

// MediaType is the content type the artifact is labelled with. PDF is labelled
// application/pdf even when its body is the plain-text stand-in.
func (f Format) MediaType() string {
	switch f {
	case FormatEpub:
		return "application/epub+zip"
	case FormatPdf:
		return "application/pdf"
	case FormatTxt:
		return "text/plain; charset=utf-8"
	case FormatHtml:
		return "text/html; charset=utf-8"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	}
	return "application/octet-stream"
}

// DownloadOptions are the per-request choices. Nil or empty fields fall back to
// the persisted settings.
type DownloadOptions struct {
	Format         Format `json:"format,omitempty" yaml:"format,omitempty" validate:"omitempty,oneof=epub pdf txt html markdown"`
	IncludeReviews *bool  `json:"includeReviews,omitempty" yaml:"includeReviews,omitempty"`
	GenerateCover  *bool  `json:"generateCover,omitempty" yaml:"generateCover,omitempty"`
}

type PdfLayout string

const (
	PdfLayoutText   PdfLayout = "text"
	PdfLayoutNative PdfLayout = "native"
)

// Settings are the persisted defaults edited in the settings dialog.
type Settings struct {
	DefaultFormat       Format    `json:"defaultFormat,omitempty" yaml:"defaultFormat,omitempty" validate:"omitempty,oneof=epub pdf txt html markdown"`
	FilenameTemplate    string    `json:"filenameTemplate,omitempty" yaml:"filenameTemplate,omitempty"`
	IncludeReviews      *bool     `json:"includeReviews,omitempty" yaml:"includeReviews,omitempty"`
	GenerateCovers      *bool     `json:"generateCovers,omitempty" yaml:"generateCovers,omitempty"`
	DownloadDelay       *int      `json:"downloadDelay,omitempty" yaml:"downloadDelay,omitempty" validate:"omitempty,min=0"`
	Theme               string    `json:"theme,omitempty" yaml:"theme,omitempty" validate:"omitempty,oneof=light dark system"`
	CoverTheme          string    `json:"coverTheme,omitempty" yaml:"coverTheme,omitempty"`
	FontStyle           string    `json:"fontStyle,omitempty" yaml:"fontStyle,omitempty"`
	FontSize            string    `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	CustomCoverImage    string    `json:"customCoverImage,omitempty" yaml:"customCoverImage,omitempty"`
	PunctuationStyle    string    `json:"punctuationStyle,omitempty" yaml:"punctuationStyle,omitempty"`
	ParagraphStyle      string    `json:"paragraphStyle,omitempty" yaml:"paragraphStyle,omitempty"`
	JustifyText         bool      `json:"justifyText,omitempty" yaml:"justifyText,omitempty"`
	StoryStatusOverride string    `json:"storyStatusOverride,omitempty" yaml:"storyStatusOverride,omitempty"`
	PdfLayout           PdfLayout `json:"pdfLayout,omitempty" yaml:"pdfLayout,omitempty" validate:"omitempty,oneof=text native"`
	AnalyzerUrl         string    `json:"analyzerUrl,omitempty" yaml:"analyzerUrl,omitempty" validate:"omitempty,url"`
}

// Appearance carries the reader-facing formatting preferences applied to the
// stylesheets. The zero value leaves the built-in styles untouched.
type Appearance struct {
	FontStyle      string
	FontSize       string
	ParagraphStyle string
	JustifyText    bool
}

func (a Appearance) IsZero() bool {
	return a == Appearance{}
}

// GenerationConfig is the effective configuration for one request.
type GenerationConfig struct {
	Format           Format
	FilenameTemplate string
	IncludeReviews   bool
	GenerateCover    bool
	ChapterDelay     time.Duration
	CoverTheme       string
	Appearance       Appearance
	PdfLayout        PdfLayout
}

// Artifact is a generated document.
type Artifact struct {
	Format    Format
	MediaType string
	Data      []byte
}
