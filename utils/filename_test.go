package utils

import (
	"regexp"
	"testing"
	"time"

	"story-archiver/model"
)

func TestSanitize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"punctuation", "My Story!", "My Story"},
		{"collapse", "  a \t\n b  ", "a b"},
		{"hyphen and underscore", "re-read_me", "re-read_me"},
		{"slashes", "Part 1/2: The End?", "Part 12 The End"},
		{"non ascii letters", "Café Ōkami", "Caf kami"},
		{"nbsp", "a  b", "a b"},
		{"empty", "", ""},
		{"only symbols", "!!!", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Sanitize(c.input); got != c.want {
				t.Errorf("Sanitize(%q) = %q, want %q", c.input, got, c.want)
			}
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	allowed := regexp.MustCompile(`^[A-Za-z0-9_ -]*$`)
	inputs := []string{
		"Jane Doe", "My Story!", "  spaced   out  ", "x/y\\z", "日本語 title", "a--b__c", " em space　",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		if twice := Sanitize(once); twice != once {
			t.Errorf("Sanitize not idempotent for %q: %q then %q", in, once, twice)
		}
		if !allowed.MatchString(once) {
			t.Errorf("Sanitize(%q) = %q contains disallowed characters", in, once)
		}
	}
}

func TestRenderFilename(t *testing.T) {
	story := &model.Story{Id: "1", Title: "My Story!", Author: "Jane Doe"}

	if got := RenderFilename("{author} - {title}", story); got != "Jane Doe - My Story" {
		t.Errorf("stem = %q, want %q", got, "Jane Doe - My Story")
	}
	if got := Filename(story, model.FormatEpub, "{author} - {title}"); got != "Jane Doe - My Story.epub" {
		t.Errorf("filename = %q, want %q", got, "Jane Doe - My Story.epub")
	}
}

func TestRenderFilenameAt_Placeholders(t *testing.T) {
	now := time.Date(2024, 3, 9, 23, 30, 0, 0, time.UTC)
	story := &model.Story{Id: "1", Title: "T", Author: "A"}

	cases := []struct {
		name   string
		tpl    string
		fandom model.Fandom
		want   string
	}{
		{"fandom unknown", "{fandom}", nil, "Unknown"},
		{"fandom list", "{fandom}", model.Fandom{"Harry Potter", "Star Wars"}, "Harry Potter Star Wars"},
		{"date", "{title}-{date}", nil, "T-2024-03-09"},
		{"repeated", "{title}{title}", nil, "TT"},
		{"unsubstituted kept", "{title} ({chapters}, {words}, {status})", nil, "T ({chapters}, {words}, {status})"},
		{"unknown kept", "{nope} {author}", nil, "{nope} A"},
		{"literal text untouched", "Fic: {title}!", nil, "Fic: T!"},
		{"empty", "", nil, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := *story
			s.Fandom = c.fandom
			if got := RenderFilenameAt(c.tpl, &s, now); got != c.want {
				t.Errorf("RenderFilenameAt(%q) = %q, want %q", c.tpl, got, c.want)
			}
		})
	}
}

func TestRenderFilenameAt_FandomForms(t *testing.T) {
	now := time.Now()
	list := &model.Story{Title: "T", Author: "A", Fandom: model.Fandom{"A", "B"}}
	joined := &model.Story{Title: "T", Author: "A", Fandom: model.Fandom{"A, B"}}
	if a, b := RenderFilenameAt("{fandom}", list, now), RenderFilenameAt("{fandom}", joined, now); a != b {
		t.Errorf("list fandom = %q, joined fandom = %q", a, b)
	}
}

func TestRenderFilenameAt_NoReentry(t *testing.T) {
	story := &model.Story{Title: "{author}", Author: "Jane"}
	if got := RenderFilenameAt("{title}|{author}", story, time.Now()); got != "author|Jane" {
		t.Errorf("got %q, want %q", got, "author|Jane")
	}
}

func TestCleanDirName(t *testing.T) {
	if got := CleanDirName(` a<b>c:d"e/f\g|h?i*j `); got != "a_b_c_d_e_f_g_h_i_j" {
		t.Errorf("CleanDirName = %q", got)
	}
}
