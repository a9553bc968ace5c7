package cover

import "strings"

// WrapTitle breaks title into lines greedily: a word moves to a new line when
// appending it would make the current line wider than maxWidth. A single word
// wider than maxWidth still gets its own line.
func WrapTitle(measure func(string) float64, title string, maxWidth float64) []string {
	var (
		lines   []string
		current string
	)
	for _, word := range strings.Fields(title) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if current != "" && measure(candidate) > maxWidth {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
