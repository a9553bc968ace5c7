package model

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestFandomDecoding(t *testing.T) {
	tests := []struct {
		name string
		json string
		yaml string
		want Fandom
	}{
		{"single", `"Harry Potter"`, `Harry Potter`, Fandom{"Harry Potter"}},
		{"list", `["A", " ", "B "]`, "[A, ' ', 'B ']", Fandom{"A", "B"}},
		{"empty", `""`, `""`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fromJSON Fandom
			if err := json.Unmarshal([]byte(tt.json), &fromJSON); err != nil {
				t.Fatalf("json: %v", err)
			}
			var fromYAML Fandom
			if err := yaml.Unmarshal([]byte(tt.yaml), &fromYAML); err != nil {
				t.Fatalf("yaml: %v", err)
			}
			if !reflect.DeepEqual(fromJSON, tt.want) {
				t.Errorf("json got = %q, want %q", fromJSON, tt.want)
			}
			if !reflect.DeepEqual(fromYAML, tt.want) {
				t.Errorf("yaml got = %q, want %q", fromYAML, tt.want)
			}
		})
	}

	var f Fandom
	if err := json.Unmarshal([]byte(`42`), &f); err == nil {
		t.Errorf("expected an error for a number")
	}
}

func TestStoryHelpers(t *testing.T) {
	zero, three := 0, 3
	tests := []struct {
		chapters *int
		want     int
	}{
		{nil, 1},
		{&zero, 1},
		{&three, 3},
	}
	for _, tt := range tests {
		s := &Story{Chapters: tt.chapters}
		if got := s.ChapterCount(); got != tt.want {
			t.Errorf("ChapterCount() = %d, want %d", got, tt.want)
		}
	}

	s := &Story{Fandom: Fandom{" ", "A", "B"}, Summary: "  "}
	if !s.HasFandom() || s.FandomText() != "A, B" {
		t.Errorf("fandom = %q", s.FandomText())
	}
	if s.HasSummary() {
		t.Errorf("blank summary counted as present")
	}
	if (&Story{Fandom: Fandom{""}}).HasFandom() {
		t.Errorf("blank fandom counted as present")
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(" " + string(f) + " ")
		if err != nil || got != f {
			t.Errorf("ParseFormat(%q) = %q, %v", f, got, err)
		}
	}
	if got, err := ParseFormat("EPUB"); err != nil || got != FormatEpub {
		t.Errorf("ParseFormat is not case-insensitive: %q, %v", got, err)
	}
	if _, err := ParseFormat("docx"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("err = %v, want ErrUnknownFormat", err)
	}
}

func TestChapterSet(t *testing.T) {
	set := NewChapterSet([]Chapter{
		{Number: 1, Title: "Opening", Paragraphs: []string{"a"}},
		{Number: 2, Paragraphs: []string{"b"}},
		{Number: 0, Paragraphs: []string{"ignored"}},
		{Number: 3},
	})
	if len(set) != 2 {
		t.Errorf("got %d chapters", len(set))
	}
	if set.Title(1) != "Opening" || set.Title(2) != "Chapter 2" || set.Title(3) != "Chapter 3" {
		t.Errorf("titles = %q %q %q", set.Title(1), set.Title(2), set.Title(3))
	}
	var empty ChapterSet
	if empty.Get(1) != nil || empty.Title(4) != "Chapter 4" {
		t.Errorf("nil set not handled")
	}
}
