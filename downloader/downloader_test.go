package downloader

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"story-archiver/config"
	"story-archiver/cover"
	"story-archiver/model"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestClientAnalyze(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/stories/analyze" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"title":"My Story","author":"Jane","fandom":"Original Work","chapters":4}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", ClientOptions{Logger: quietLogger()})
	got, err := c.Analyze(context.Background(), "https://archiveofourown.org/works/1")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if gotBody["url"] != "https://archiveofourown.org/works/1" {
		t.Errorf("request body = %v", gotBody)
	}
	if got.Title != "My Story" || got.Author != "Jane" || got.Fandom.String() != "Original Work" {
		t.Errorf("analysis = %+v", got)
	}
	if got.Chapters == nil || *got.Chapters != 4 {
		t.Errorf("chapters = %v", got.Chapters)
	}
	if got.Url != "https://archiveofourown.org/works/1" {
		t.Errorf("url = %q", got.Url)
	}
}

func TestClientAnalyze_NonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, ClientOptions{Logger: quietLogger()})
	_, err := c.Analyze(context.Background(), "https://example.com")
	if !errors.Is(err, ErrAnalyzeFailed) {
		t.Errorf("err = %v, want ErrAnalyzeFailed", err)
	}
}

func TestClientAnalyze_RetriesTooManyRequests(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"title":"T","author":"A"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, ClientOptions{RetryWait: time.Millisecond, Logger: quietLogger()})
	if _, err := c.Analyze(context.Background(), "https://example.com"); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("calls = %d, want 2", n)
	}
}

func fixedArchiver() *Archiver {
	a := NewArchiver(quietLogger())
	a.Covers = cover.NewRenderer(1).WithSeed(1)
	a.Now = func() time.Time { return time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC) }
	return a
}

func testStory() *model.Story {
	n := 2
	return &model.Story{Id: "s1", Title: "My Story", Author: "Jane Doe", Chapters: &n}
}

func TestArchive_EpubEmbedsCover(t *testing.T) {
	cfg := config.Resolve(nil, nil)
	res, err := fixedArchiver().Archive(testStory(), nil, cfg)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if res.Filename != "Jane Doe - My Story.epub" {
		t.Errorf("filename = %q", res.Filename)
	}
	if res.Cover == nil || res.CoverErr != nil {
		t.Fatalf("cover = %d bytes, err %v", len(res.Cover), res.CoverErr)
	}
	zr, err := zip.NewReader(bytes.NewReader(res.Artifact.Data), int64(len(res.Artifact.Data)))
	if err != nil {
		t.Fatalf("zip: %v", err)
	}
	var found bool
	for _, f := range zr.File {
		found = found || f.Name == "OEBPS/cover.png"
	}
	if !found {
		t.Errorf("cover not embedded")
	}

	dir := t.TempDir()
	paths, err := Save(res, dir)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(paths) != 1 || paths[0] != filepath.Join(dir, "Jane Doe - My Story.epub") {
		t.Errorf("paths = %q", paths)
	}
}

func TestArchive_TextWritesCoverBeside(t *testing.T) {
	cfg := config.Resolve(&model.Settings{FilenameTemplate: "{title} {date}"}, &model.DownloadOptions{Format: model.FormatTxt})
	res, err := fixedArchiver().Archive(testStory(), nil, cfg)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if res.Filename != "My Story 2024-03-09.txt" {
		t.Errorf("filename = %q", res.Filename)
	}
	dir := t.TempDir()
	paths, err := Save(res, filepath.Join(dir, "out"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("paths = %q", paths)
	}
	data, err := os.ReadFile(filepath.Join(dir, "out", "My Story 2024-03-09.png"))
	if err != nil {
		t.Fatalf("cover not written: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Errorf("cover is not a PNG")
	}
}

func TestArchive_NoCover(t *testing.T) {
	no := false
	cfg := config.Resolve(nil, &model.DownloadOptions{Format: model.FormatMarkdown, GenerateCover: &no})
	res, err := fixedArchiver().Archive(testStory(), nil, cfg)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if res.Cover != nil || res.CoverErr != nil {
		t.Errorf("cover rendered although disabled")
	}
	if res.Artifact.MediaType != "text/markdown; charset=utf-8" {
		t.Errorf("media type = %q", res.Artifact.MediaType)
	}
}

func TestArchive_InvalidStory(t *testing.T) {
	_, err := fixedArchiver().Archive(&model.Story{Id: "x", Title: "T"}, nil, config.Resolve(nil, nil))
	if !errors.Is(err, model.ErrInvalidStory) {
		t.Errorf("err = %v, want ErrInvalidStory", err)
	}
}

func TestArchive_UnknownFormat(t *testing.T) {
	cfg := config.Resolve(nil, nil)
	cfg.Format = "docx"
	_, err := fixedArchiver().Archive(testStory(), nil, cfg)
	if !errors.Is(err, model.ErrUnknownFormat) {
		t.Errorf("err = %v, want ErrUnknownFormat", err)
	}
}
