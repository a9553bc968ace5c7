package epub

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"hash/crc32"
	"runtime"
	"time"

	"github.com/a-h/templ"
	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"story-archiver/model"
	"story-archiver/template"
)

const (
	MimeType      = "application/epub+zip"
	ContainerPath = "META-INF/container.xml"
	ContentPath   = "OEBPS/content.opf"
	TocPath       = "OEBPS/toc.ncx"
	StylePath     = "OEBPS/styles.css"
	TitlePagePath = "OEBPS/titlepage.xhtml"
	CoverPath     = "OEBPS/cover.png"

	uniqueIdentifier = "BookId"
	defaultLanguage  = "en"
)

// Options control what goes into the package beyond the story metadata.
type Options struct {
	// Chapters supplies real chapter text; missing chapters get placeholder
	// paragraphs.
	Chapters model.ChapterSet
	// Cover is an optional PNG embedded as the package cover image.
	Cover      []byte
	Appearance model.Appearance
	Logger     logrus.FieldLogger
}

type zipEntry struct {
	path    string
	content string
}

type chapterDoc struct {
	number int
	title  string
	body   string
}

func ChapterPath(n int) string {
	return fmt.Sprintf("OEBPS/chapter%d.xhtml", n)
}

// PackStory builds the EPUB package for story in memory.
func PackStory(story *model.Story, opts Options) ([]byte, error) {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	log.WithField("story", story.Id).Debugf("Creating epub for %s", story.Title)

	chapters, err := renderChapters(story, opts.Chapters)
	if err != nil {
		return nil, err
	}

	buf := bytes.Buffer{}
	zipWriter := zip.NewWriter(&buf)

	// mimetype must be the first entry and must not be compressed.
	err = addStoredToZip(zipWriter, "mimetype", []byte(MimeType))
	if err != nil {
		return nil, err
	}

	container, err := CreateContainerXML()
	if err != nil {
		return nil, fmt.Errorf("failed to create container xml: %w", err)
	}
	contentOPF, err := CreateContentOPF(story, chapters, len(opts.Cover) > 0)
	if err != nil {
		return nil, fmt.Errorf("failed to create content opf: %w", err)
	}
	tocNCX, err := CreateTocNCX(story, chapters)
	if err != nil {
		return nil, fmt.Errorf("failed to create toc ncx: %w", err)
	}
	titlePage, err := renderToString(template.TitlePageXHTML(story))
	if err != nil {
		return nil, fmt.Errorf("failed to render title page: %w", err)
	}

	files := []zipEntry{
		{ContainerPath, container},
		{ContentPath, contentOPF},
		{TocPath, tocNCX},
		{StylePath, template.StyleCSS + template.AppearanceCSS(opts.Appearance)},
		{TitlePagePath, titlePage},
	}
	for _, chapter := range chapters {
		files = append(files, zipEntry{ChapterPath(chapter.number), chapter.body})
	}
	for _, file := range files {
		err = addStringToZip(zipWriter, file.path, file.content, zip.Deflate)
		if err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", file.path, err)
		}
	}

	if len(opts.Cover) > 0 {
		// PNG data is already compressed.
		err = addStoredToZip(zipWriter, CoverPath, opts.Cover)
		if err != nil {
			return nil, fmt.Errorf("failed to write cover: %w", err)
		}
	}

	if err := zipWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish epub: %w", err)
	}
	return buf.Bytes(), nil
}

// renderChapters renders the chapter documents concurrently. The result is
// ordered by chapter number regardless of completion order.
func renderChapters(story *model.Story, supplied model.ChapterSet) ([]chapterDoc, error) {
	docs := make([]chapterDoc, story.ChapterCount())
	g := errgroup.Group{}
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range docs {
		n := i + 1
		g.Go(func() error {
			title := supplied.Title(n)
			paragraphs := placeholderParagraphs(n)
			if c := supplied.Get(n); c != nil {
				paragraphs = c.Paragraphs
			}
			body, err := renderToString(template.ChapterXHTML(title, paragraphs))
			if err != nil {
				return fmt.Errorf("failed to render chapter %d: %w", n, err)
			}
			docs[i] = chapterDoc{number: n, title: title, body: body}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func placeholderParagraphs(n int) []string {
	return []string{
		fmt.Sprintf("This is the content of chapter %d. In a real implementation, this would contain the actual story content fetched from the source website.", n),
		"The content would be properly formatted and cleaned up, with proper paragraph breaks and formatting preserved from the original source.",
	}
}

func CreateContainerXML() (string, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0"`)
	container := doc.CreateElement("container")
	container.CreateAttr("version", "1.0")
	container.CreateAttr("xmlns", "urn:oasis:names:tc:opendocument:xmlns:container")
	rootfile := container.CreateElement("rootfiles").CreateElement("rootfile")
	rootfile.CreateAttr("full-path", ContentPath)
	rootfile.CreateAttr("media-type", "application/oebps-package+xml")
	doc.Indent(2)
	return doc.WriteToString()
}

func CreateContentOPF(story *model.Story, chapters []chapterDoc, withCover bool) (string, error) {
	language := story.Language
	if language == "" {
		language = defaultLanguage
	}
	dc := &model.DublinCoreMetadata{
		XmlnsDC:  model.NamespaceDC,
		XmlnsOPF: model.NamespaceOPF,
		Titles: []model.DCTitle{
			{Value: story.Title},
		},
		Creators: []model.DCCreator{
			{Value: story.Author, Role: "aut"},
		},
		Identifiers: []model.DCIdentifier{
			{Value: story.Id, ID: uniqueIdentifier},
		},
		Languages: []model.DCLanguage{
			{Value: language},
		},
	}
	if story.HasSummary() {
		dc.Descriptions = append(dc.Descriptions, model.DCDescription{Value: story.Summary})
	}
	// one subject, so list and pre-joined fandoms produce the same package
	if story.HasFandom() {
		dc.Subjects = append(dc.Subjects, model.DCSubject{Value: story.FandomText()})
	}
	if story.Published != nil {
		dc.Dates = append(dc.Dates, model.DCDate{Value: story.Published.UTC().Format(time.DateOnly), Event: "publication"})
	}
	if story.Updated != nil {
		dc.Dates = append(dc.Dates, model.DCDate{Value: story.Updated.UTC().Format(time.DateOnly), Event: "modification"})
	}
	if withCover {
		dc.Metas = append(dc.Metas, model.DublinCoreMeta{Name: "cover", Content: "cover-image"})
	}

	manifest := &model.Manifest{
		Items: make([]model.ManifestItem, 0, len(chapters)+4),
	}
	manifest.Items = append(manifest.Items,
		model.ManifestItem{ID: "ncx", Link: "toc.ncx", Media: "application/x-dtbncx+xml"},
		model.ManifestItem{ID: "stylesheet", Link: "styles.css", Media: "text/css"},
		model.ManifestItem{ID: "titlepage", Link: "titlepage.xhtml", Media: "application/xhtml+xml"},
	)
	for _, chapter := range chapters {
		manifest.Items = append(manifest.Items, model.ManifestItem{
			ID:    fmt.Sprintf("chapter%d", chapter.number),
			Link:  fmt.Sprintf("chapter%d.xhtml", chapter.number),
			Media: "application/xhtml+xml",
		})
	}
	if withCover {
		manifest.Items = append(manifest.Items, model.ManifestItem{ID: "cover-image", Link: "cover.png", Media: "image/png"})
	}

	spine := &model.Spine{
		Toc:   "ncx",
		Items: []model.SpineItem{{IDref: "titlepage"}},
	}
	for _, chapter := range chapters {
		spine.Items = append(spine.Items, model.SpineItem{IDref: fmt.Sprintf("chapter%d", chapter.number)})
	}

	return renderToString(template.ContentOPF(uniqueIdentifier, dc, manifest, spine))
}

func CreateTocNCX(story *model.Story, chapters []chapterDoc) (string, error) {
	navMap := model.NavMap{Points: make([]*model.NavPoint, 0, len(chapters)+1)}
	navMap.Points = append(navMap.Points, &model.NavPoint{
		Id:        "titlepage",
		PlayOrder: 1,
		Label:     "Title Page",
		Content:   model.NavPointContent{Src: "titlepage.xhtml"},
	})
	for _, chapter := range chapters {
		navMap.Points = append(navMap.Points, &model.NavPoint{
			Id:        fmt.Sprintf("chapter%d", chapter.number),
			PlayOrder: chapter.number + 1,
			Label:     chapter.title,
			Content:   model.NavPointContent{Src: fmt.Sprintf("chapter%d.xhtml", chapter.number)},
		})
	}

	ncx := &model.TocNCX{
		Xmlns:   model.NamespaceNCX,
		Version: "2005-1",
		Head: model.TocNCXHead{
			Meta: []model.TocNCXHeadMeta{
				{Name: "dtb:uid", Content: story.Id},
			},
		},
		DocTitle: story.Title,
		NavMap:   navMap,
	}
	return renderToString(template.TocNCX(ncx))
}

func renderToString(c templ.Component) (string, error) {
	buf := bytes.Buffer{}
	if err := c.Render(context.Background(), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func addStringToZip(zipWriter *zip.Writer, relPath, content string, method uint16) error {
	header := &zip.FileHeader{
		Name:   relPath,
		Method: method,
	}
	writer, err := zipWriter.CreateHeader(header)
	if err != nil {
		return err
	}

	_, err = writer.Write([]byte(content))
	return err
}

// addStoredToZip writes an uncompressed entry with sizes and checksum in the
// local header and no data descriptor.
func addStoredToZip(zipWriter *zip.Writer, relPath string, content []byte) error {
	size := uint64(len(content))
	header := &zip.FileHeader{
		Name:               relPath,
		Method:             zip.Store,
		CRC32:              crc32.ChecksumIEEE(content),
		CompressedSize64:   size,
		UncompressedSize64: size,
	}
	writer, err := zipWriter.CreateRaw(header)
	if err != nil {
		return err
	}

	_, err = writer.Write(content)
	return err
}
