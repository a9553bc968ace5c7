package model

import "fmt"

// Chapter is the extracted text of one chapter. Number is 1-based.
type Chapter struct {
	Number     int      `json:"number" yaml:"number"`
	Title      string   `json:"title,omitempty" yaml:"title,omitempty"`
	Paragraphs []string `json:"paragraphs" yaml:"paragraphs"`
}

// ChapterSet indexes supplied chapters by number.
type ChapterSet map[int]*Chapter

func NewChapterSet(chapters []Chapter) ChapterSet {
	set := make(ChapterSet, len(chapters))
	for i := range chapters {
		if chapters[i].Number < 1 || len(chapters[i].Paragraphs) == 0 {
			continue
		}
		set[chapters[i].Number] = &chapters[i]
	}
	return set
}

// Get returns the supplied chapter for number n, or nil when the body must be
// placeholder content.
func (s ChapterSet) Get(n int) *Chapter {
	if s == nil {
		return nil
	}
	return s[n]
}

// Title is the section heading for chapter n.
func (s ChapterSet) Title(n int) string {
	if c := s.Get(n); c != nil && c.Title != "" {
		return c.Title
	}
	return fmt.Sprintf("Chapter %d", n)
}
