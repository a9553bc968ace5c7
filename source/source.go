// Package source loads real chapter text from files on disk.
package source

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/russross/blackfriday/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"story-archiver/model"
)

// Options control how chapter files are read.
type Options struct {
	// Encoding names the charset of the files (any WHATWG label such as
	// "gbk" or "windows-1252"). Empty means UTF-8.
	Encoding string
	Logger   logrus.FieldLogger
}

var (
	numberRe    = regexp.MustCompile(`\d+`)
	blankLineRe = regexp.MustCompile(`\n[ \t]*\n`)
	lineBreakRe = regexp.MustCompile(`\s*\n\s*`)
)

type chapterFile struct {
	path   string
	number int
}

// LoadDir reads every chapter file in dir. Files are ordered by the first
// number in their name and numbered from 1 in that order; files without a
// number or with an unsupported extension are skipped.
func LoadDir(dir string, opts Options) ([]model.Chapter, error) {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read chapter dir %s: %w", dir, err)
	}

	var files []chapterFile
	for _, e := range entries {
		if e.IsDir() || !supported(e.Name()) {
			continue
		}
		m := numberRe.FindString(e.Name())
		if m == "" {
			log.WithField("file", e.Name()).Warn("Skipping chapter file without a number")
			continue
		}
		n, err := strconv.Atoi(m)
		if err != nil {
			log.WithField("file", e.Name()).Warn("Skipping chapter file with an unreadable number")
			continue
		}
		files = append(files, chapterFile{path: filepath.Join(dir, e.Name()), number: n})
	}
	sort.SliceStable(files, func(i, j int) bool {
		if files[i].number != files[j].number {
			return files[i].number < files[j].number
		}
		return files[i].path < files[j].path
	})

	chapters := make([]model.Chapter, 0, len(files))
	for i, f := range files {
		chapter, err := LoadFile(f.path, i+1, opts)
		if err != nil {
			return nil, err
		}
		log.WithFields(logrus.Fields{"file": filepath.Base(f.path), "chapter": chapter.Number}).Debug("Loaded chapter")
		chapters = append(chapters, chapter)
	}
	return chapters, nil
}

func supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md", ".markdown", ".html", ".htm", ".xhtml":
		return true
	}
	return false
}

// LoadFile reads a single chapter file as chapter number.
func LoadFile(path string, number int, opts Options) (model.Chapter, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.Chapter{}, fmt.Errorf("failed to read chapter %s: %w", path, err)
	}
	data, err := decode(raw, opts.Encoding)
	if err != nil {
		return model.Chapter{}, fmt.Errorf("failed to decode chapter %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return FromMarkdown(number, data)
	case ".html", ".htm", ".xhtml":
		return FromHTML(number, string(data))
	default:
		return FromText(number, string(data)), nil
	}
}

func decode(data []byte, encoding string) ([]byte, error) {
	if encoding == "" {
		return data, nil
	}
	enc, err := htmlindex.Get(encoding)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", encoding, err)
	}
	return io.ReadAll(transform.NewReader(bytes.NewReader(data), enc.NewDecoder()))
}

// FromText splits plain text into paragraphs on blank lines. Line breaks
// inside a paragraph become spaces.
func FromText(number int, text string) model.Chapter {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimPrefix(text, "\ufeff")
	chapter := model.Chapter{Number: number}
	for _, block := range blankLineRe.Split(text, -1) {
		block = strings.TrimSpace(lineBreakRe.ReplaceAllString(block, " "))
		if block != "" {
			chapter.Paragraphs = append(chapter.Paragraphs, block)
		}
	}
	return chapter
}

// FromMarkdown renders markdown to HTML and extracts it like FromHTML.
func FromMarkdown(number int, markdown []byte) (model.Chapter, error) {
	markdown = bytes.ReplaceAll(markdown, []byte("\r\n"), []byte("\n"))
	return FromHTML(number, string(blackfriday.Run(markdown)))
}

// FromHTML extracts the chapter heading and paragraph texts from an HTML
// fragment or document. When there are no <p> elements the body text is
// split on blank lines instead.
func FromHTML(number int, html string) (model.Chapter, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return model.Chapter{}, fmt.Errorf("failed to parse chapter %d: %w", number, err)
	}
	doc.Find("script, style, nav, header, footer").Remove()

	chapter := model.Chapter{Number: number}
	heading := doc.Find("h1, h2, h3").First()
	chapter.Title = strings.TrimSpace(heading.Text())

	doc.Find("p").Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(lineBreakRe.ReplaceAllString(s.Text(), " "))
		if text != "" {
			chapter.Paragraphs = append(chapter.Paragraphs, text)
		}
	})
	if len(chapter.Paragraphs) == 0 {
		heading.Remove()
		chapter.Paragraphs = FromText(number, doc.Find("body").Text()).Paragraphs
	}
	return chapter, nil
}
