package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Fandom holds one or more fandom names. Upstream sites report either a single
// string or a list; both decode into the same value.
type Fandom []string

func (f Fandom) String() string {
	return strings.Join(f, ", ")
}

func (f Fandom) IsZero() bool {
	return len(f.compact()) == 0
}

func (f Fandom) compact() []string {
	out := make([]string, 0, len(f))
	for _, name := range f {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func (f *Fandom) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*f = fandomFromString(single)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("fandom must be a string or a list of strings: %w", err)
	}
	*f = Fandom(list).compact()
	return nil
}

func (f *Fandom) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var single string
		if err := value.Decode(&single); err != nil {
			return err
		}
		*f = fandomFromString(single)
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*f = Fandom(list).compact()
		return nil
	}
	return fmt.Errorf("fandom must be a string or a list of strings, got yaml kind %v", value.Kind)
}

func fandomFromString(s string) Fandom {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return Fandom{s}
}

// Story is the canonical story record handed to the generators. It is never
// mutated once built.
type Story struct {
	Id        string         `json:"id" yaml:"id" validate:"required"`
	Title     string         `json:"title" yaml:"title" validate:"required"`
	Author    string         `json:"author" yaml:"author" validate:"required"`
	Fandom    Fandom         `json:"fandom,omitempty" yaml:"fandom,omitempty"`
	Summary   string         `json:"summary,omitempty" yaml:"summary,omitempty"`
	Status    string         `json:"status,omitempty" yaml:"status,omitempty"`
	Rating    string         `json:"rating,omitempty" yaml:"rating,omitempty"`
	Language  string         `json:"language,omitempty" yaml:"language,omitempty"`
	Chapters  *int           `json:"chapters,omitempty" yaml:"chapters,omitempty" validate:"omitempty,min=1"`
	Words     *int           `json:"words,omitempty" yaml:"words,omitempty" validate:"omitempty,min=0"`
	Published *time.Time     `json:"published,omitempty" yaml:"published,omitempty"`
	Updated   *time.Time     `json:"updated,omitempty" yaml:"updated,omitempty"`
	Url       string         `json:"url,omitempty" yaml:"url,omitempty" validate:"omitempty,url"`
	Site      string         `json:"site,omitempty" yaml:"site,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// ChapterCount is the number of sections to emit. Absent or non-positive counts
// produce a single chapter.
func (s *Story) ChapterCount() int {
	if s.Chapters == nil || *s.Chapters < 1 {
		return 1
	}
	return *s.Chapters
}

func (s *Story) HasFandom() bool {
	return !s.Fandom.IsZero()
}

func (s *Story) FandomText() string {
	return Fandom(s.Fandom.compact()).String()
}

func (s *Story) HasSummary() bool {
	return strings.TrimSpace(s.Summary) != ""
}

// StoryAnalysis is the record returned by the analysis collaborator for a URL.
// Every field except title and author may be missing.
type StoryAnalysis struct {
	Id        string         `json:"id,omitempty" yaml:"id,omitempty"`
	Title     string         `json:"title" yaml:"title"`
	Author    string         `json:"author" yaml:"author"`
	Fandom    Fandom         `json:"fandom,omitempty" yaml:"fandom,omitempty"`
	Summary   *string        `json:"summary,omitempty" yaml:"summary,omitempty"`
	Status    *string        `json:"status,omitempty" yaml:"status,omitempty"`
	Rating    *string        `json:"rating,omitempty" yaml:"rating,omitempty"`
	Language  *string        `json:"language,omitempty" yaml:"language,omitempty"`
	Chapters  *int           `json:"chapters,omitempty" yaml:"chapters,omitempty"`
	Words     *int           `json:"words,omitempty" yaml:"words,omitempty"`
	Published *time.Time     `json:"published,omitempty" yaml:"published,omitempty"`
	Updated   *time.Time     `json:"updated,omitempty" yaml:"updated,omitempty"`
	Url       string         `json:"url,omitempty" yaml:"url,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}
