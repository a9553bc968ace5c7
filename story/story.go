// Package story turns analysis records into validated Story values.
package story

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"story-archiver/model"
	"story-archiver/utils"
)

// Normalize builds a Story from an analysis record: strings are trimmed, the
// id is derived from the URL (or generated) when missing, out-of-range counts
// are dropped and the result is validated.
func Normalize(a *model.StoryAnalysis) (*model.Story, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: no analysis", model.ErrInvalidStory)
	}
	s := &model.Story{
		Id:        strings.TrimSpace(a.Id),
		Title:     strings.TrimSpace(a.Title),
		Author:    strings.TrimSpace(a.Author),
		Summary:   deref(a.Summary),
		Status:    deref(a.Status),
		Rating:    deref(a.Rating),
		Language:  deref(a.Language),
		Published: a.Published,
		Updated:   a.Updated,
		Url:       strings.TrimSpace(a.Url),
		Metadata:  a.Metadata,
	}
	for _, f := range a.Fandom {
		if f = strings.TrimSpace(f); f != "" {
			s.Fandom = append(s.Fandom, f)
		}
	}
	if a.Chapters != nil && *a.Chapters >= 1 {
		n := *a.Chapters
		s.Chapters = &n
	}
	if a.Words != nil && *a.Words >= 0 {
		n := *a.Words
		s.Words = &n
	}
	if s.Url != "" {
		s.Site = SiteFromURL(s.Url)
	}
	if s.Id == "" {
		s.Id = qualifiedID(s.Url)
	}
	if s.Id == "" {
		s.Id = uuid.NewString()
	}

	if err := Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the struct constraints of a story.
func Validate(s *model.Story) error {
	if s == nil {
		return fmt.Errorf("%w: nil story", model.ErrInvalidStory)
	}
	if err := utils.ValidateStruct(s); err != nil {
		return fmt.Errorf("%w: %v", model.ErrInvalidStory, err)
	}
	return nil
}

// LoadFile reads an analysis record from a JSON or YAML file and normalizes
// it.
func LoadFile(path string) (*model.Story, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read story %s: %w", path, err)
	}
	var a model.StoryAnalysis
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &a)
	default:
		err = yaml.Unmarshal(data, &a)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse story %s: %w", path, err)
	}
	return Normalize(&a)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
