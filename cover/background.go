package cover

import (
	"image/color"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

const gradientPrefix = "linear-gradient("

// ParseBackground turns a CSS background into the colours to paint, in stop
// order. A single colour means a flat fill. A gradient with any unparseable
// stop is painted flat with its first usable colour, and a background with no
// usable colour at all paints black.
func ParseBackground(background string) []color.NRGBA {
	background = strings.TrimSpace(background)
	var colors []color.NRGBA
	if inner, ok := gradientArgs(background); ok {
		params := splitTopLevel(inner)
		// The leading angle or direction is accepted but not used: the
		// gradient always runs corner to corner.
		if len(params) > 0 {
			if _, err := csscolorparser.Parse(firstToken(params[0])); err != nil {
				params = params[1:]
			}
		}
		malformed := false
		for _, p := range params {
			if c, ok := parseColor(firstToken(p)); ok {
				colors = append(colors, c)
			} else {
				malformed = true
			}
		}
		// any unusable stop turns the gradient into a flat fill
		if malformed && len(colors) > 1 {
			colors = colors[:1]
		}
	} else if c, ok := parseColor(background); ok {
		colors = append(colors, c)
	}
	if len(colors) == 0 {
		return []color.NRGBA{{A: 0xff}}
	}
	return colors
}

func gradientArgs(s string) (string, bool) {
	if !strings.HasPrefix(strings.ToLower(s), gradientPrefix) {
		return "", false
	}
	inner := s[len(gradientPrefix):]
	if i := strings.LastIndex(inner, ")"); i >= 0 {
		inner = inner[:i]
	}
	return inner, true
}

// splitTopLevel splits on commas that are not nested inside parentheses, so
// that rgba(…) stops survive.
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	return append(parts, strings.TrimSpace(s[start:]))
}

// firstToken drops the stop position ("#fff 30%" -> "#fff") while keeping
// functional notations intact.
func firstToken(stop string) string {
	stop = strings.TrimSpace(stop)
	if i := strings.Index(stop, ")"); i >= 0 && strings.Contains(stop[:i], "(") {
		return stop[:i+1]
	}
	if f := strings.Fields(stop); len(f) > 0 {
		return f[0]
	}
	return ""
}

func parseColor(s string) (color.NRGBA, bool) {
	if s == "" {
		return color.NRGBA{}, false
	}
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return color.NRGBA{}, false
	}
	r, g, b, a := c.RGBA255()
	return color.NRGBA{R: r, G: g, B: b, A: a}, true
}

// mustColor parses a theme colour, falling back to fallback.
func mustColor(s string, fallback color.NRGBA) color.NRGBA {
	if c, ok := parseColor(strings.TrimSpace(s)); ok {
		return c
	}
	return fallback
}
