package cover

// Theme describes the palette and typeface of a generated cover. Background is
// either a single CSS colour or a linear-gradient() expression.
type Theme struct {
	Name        string `json:"name" yaml:"name"`
	Background  string `json:"background" yaml:"background"`
	TitleColor  string `json:"titleColor" yaml:"titleColor"`
	AuthorColor string `json:"authorColor" yaml:"authorColor"`
	AccentColor string `json:"accentColor" yaml:"accentColor"`
	Font        string `json:"font" yaml:"font"`
}

const DefaultTheme = "Classic"

var catalog = []Theme{
	{
		Name:        "Classic",
		Background:  "linear-gradient(135deg, #667eea 0%, #764ba2 100%)",
		TitleColor:  "#ffffff",
		AuthorColor: "#f0f0f0",
		AccentColor: "#ffd700",
		Font:        "Georgia, serif",
	},
	{
		Name:        "Modern",
		Background:  "linear-gradient(135deg, #f093fb 0%, #f5576c 100%)",
		TitleColor:  "#ffffff",
		AuthorColor: "#f8f8f8",
		AccentColor: "#ffeb3b",
		Font:        "Helvetica, Arial, sans-serif",
	},
	{
		Name:        "Dark",
		Background:  "linear-gradient(135deg, #2c3e50 0%, #34495e 100%)",
		TitleColor:  "#ecf0f1",
		AuthorColor: "#bdc3c7",
		AccentColor: "#e74c3c",
		Font:        "Georgia, serif",
	},
	{
		Name:        "Nature",
		Background:  "linear-gradient(135deg, #4CAF50 0%, #45a049 100%)",
		TitleColor:  "#ffffff",
		AuthorColor: "#f0f0f0",
		AccentColor: "#ffeb3b",
		Font:        "Helvetica, Arial, sans-serif",
	},
	{
		Name:        "Ocean",
		Background:  "linear-gradient(135deg, #0077be 0%, #1e88e5 100%)",
		TitleColor:  "#ffffff",
		AuthorColor: "#e3f2fd",
		AccentColor: "#00bcd4",
		Font:        "Georgia, serif",
	},
	{
		Name:        "Sunset",
		Background:  "linear-gradient(135deg, #ff6b6b 0%, #ffd93d 100%)",
		TitleColor:  "#ffffff",
		AuthorColor: "#fff3e0",
		AccentColor: "#ff5722",
		Font:        "Helvetica, Arial, sans-serif",
	},
}

// Themes returns a copy of the built-in catalog.
func Themes() []Theme {
	return append([]Theme(nil), catalog...)
}

// Lookup reports whether a built-in theme is named name.
func Lookup(name string) (Theme, bool) {
	for _, t := range catalog {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// Resolve finds the named theme, falling back to Classic, and applies the
// non-empty fields of overrides on top.
func Resolve(name string, overrides Theme) Theme {
	theme, ok := Lookup(name)
	if !ok {
		theme = catalog[0]
	}
	return theme.Merge(overrides)
}

func (t Theme) Merge(o Theme) Theme {
	if o.Name != "" {
		t.Name = o.Name
	}
	if o.Background != "" {
		t.Background = o.Background
	}
	if o.TitleColor != "" {
		t.TitleColor = o.TitleColor
	}
	if o.AuthorColor != "" {
		t.AuthorColor = o.AuthorColor
	}
	if o.AccentColor != "" {
		t.AccentColor = o.AccentColor
	}
	if o.Font != "" {
		t.Font = o.Font
	}
	return t
}
