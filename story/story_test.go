package story

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"story-archiver/model"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestSiteFromURL(t *testing.T) {
	tests := map[string]string{
		"https://archiveofourown.org/works/123":          "Archive of Our Own",
		"https://www.fanfiction.net/s/456/1/Title":       "FanFiction.Net",
		"https://www.fictionpress.com/s/789":             "FictionPress",
		"https://www.fimfiction.net/story/42/some-story": "FIMFiction",
		"https://www.wattpad.com/story/1001-title":       "Wattpad",
		"https://example.com/works/1":                    "Unknown",
		"not a url":                                      "Unknown",
		"":                                               "Unknown",
	}
	for in, want := range tests {
		if got := SiteFromURL(in); got != want {
			t.Errorf("SiteFromURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsValidStoryURL(t *testing.T) {
	tests := map[string]bool{
		"https://archiveofourown.org/works/123": true,
		"http://m.fanfiction.net/s/1":           true,
		"https://notarchiveofourown.org/works/1": false,
		"https://example.com":                   false,
		"archiveofourown.org/works/1":           false,
		"::::":                                  false,
	}
	for in, want := range tests {
		if got := IsValidStoryURL(in); got != want {
			t.Errorf("IsValidStoryURL(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestExtractStoryID(t *testing.T) {
	tests := map[string]string{
		"https://archiveofourown.org/works/123/chapters/9": "123",
		"https://www.fanfiction.net/s/456/1/Title":         "456",
		"https://www.fictionpress.com/s/789":               "789",
		"https://www.fimfiction.net/story/42/some-story":   "42",
		"https://www.wattpad.com/story/1001-title":         "1001",
		"https://archiveofourown.org/users/someone":        "",
		"https://example.com/s/1":                          "",
	}
	for in, want := range tests {
		if got := ExtractStoryID(in); got != want {
			t.Errorf("ExtractStoryID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalize(t *testing.T) {
	got, err := Normalize(&model.StoryAnalysis{
		Title:    "  My Story ",
		Author:   " Jane Doe",
		Fandom:   model.Fandom{" Harry Potter ", "", "Naruto"},
		Summary:  strPtr(" A summary. "),
		Language: strPtr("fr"),
		Chapters: intPtr(0),
		Words:    intPtr(-3),
		Url:      "https://archiveofourown.org/works/123",
	})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got.Id != "ao3-123" {
		t.Errorf("id = %q", got.Id)
	}
	if got.Title != "My Story" || got.Author != "Jane Doe" || got.Summary != "A summary." || got.Language != "fr" {
		t.Errorf("story = %+v", got)
	}
	if got.FandomText() != "Harry Potter, Naruto" {
		t.Errorf("fandom = %q", got.FandomText())
	}
	if got.Chapters != nil || got.Words != nil {
		t.Errorf("out-of-range counts kept: chapters=%v words=%v", got.Chapters, got.Words)
	}
	if got.ChapterCount() != 1 {
		t.Errorf("chapter count = %d", got.ChapterCount())
	}
	if got.Site != "Archive of Our Own" {
		t.Errorf("site = %q", got.Site)
	}
}

func TestNormalize_KeepsGivenID(t *testing.T) {
	got, err := Normalize(&model.StoryAnalysis{Id: "abc", Title: "T", Author: "A", Chapters: intPtr(3)})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got.Id != "abc" || got.ChapterCount() != 3 {
		t.Errorf("story = %+v", got)
	}
}

func TestNormalize_GeneratesID(t *testing.T) {
	got, err := Normalize(&model.StoryAnalysis{Title: "T", Author: "A"})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if _, err := uuid.Parse(got.Id); err != nil {
		t.Errorf("id %q is not a uuid: %v", got.Id, err)
	}
}

func TestNormalize_Invalid(t *testing.T) {
	tests := []*model.StoryAnalysis{
		nil,
		{Title: "T"},
		{Author: "A"},
		{Title: "   ", Author: "A"},
		{Title: "T", Author: "A", Url: "not a url"},
	}
	for i, a := range tests {
		if _, err := Normalize(a); !errors.Is(err, model.ErrInvalidStory) {
			t.Errorf("case %d: err = %v, want ErrInvalidStory", i, err)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "story.yaml")
	if err := os.WriteFile(yamlPath, []byte("title: Y\nauthor: Z\nfandom: Original Work\nchapters: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	jsonPath := filepath.Join(dir, "story.json")
	if err := os.WriteFile(jsonPath, []byte(`{"id":"j1","title":"J","author":"K","fandom":["A","B"]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	y, err := LoadFile(yamlPath)
	if err != nil {
		t.Fatalf("LoadFile yaml: %v", err)
	}
	if y.Title != "Y" || y.FandomText() != "Original Work" || y.ChapterCount() != 2 {
		t.Errorf("yaml story = %+v", y)
	}

	j, err := LoadFile(jsonPath)
	if err != nil {
		t.Fatalf("LoadFile json: %v", err)
	}
	if j.Id != "j1" || j.FandomText() != "A, B" {
		t.Errorf("json story = %+v", j)
	}
}
