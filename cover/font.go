package cover

import (
	"fmt"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	titleSize  = 72
	authorSize = 36
	fandomSize = 24
)

type family int

const (
	familySans family = iota
	familySerif
	familyMono
)

// familyOf maps a CSS font stack to one of the bundled Go font families.
func familyOf(stack string) family {
	for _, name := range strings.Split(strings.ToLower(stack), ",") {
		name = strings.Trim(strings.TrimSpace(name), `"'`)
		switch {
		case name == "monospace" || strings.Contains(name, "mono") || strings.Contains(name, "courier"):
			return familyMono
		case name == "sans-serif" || name == "helvetica" || name == "arial" || name == "verdana":
			return familySans
		case name == "serif" || name == "georgia" || strings.Contains(name, "times"):
			return familySerif
		}
	}
	return familySans
}

type typeface struct {
	bold, regular, italic *truetype.Font
}

var loadTypefaces = sync.OnceValues(func() (map[family]typeface, error) {
	parse := func(name string, ttf []byte) (*truetype.Font, error) {
		f, err := truetype.Parse(ttf)
		if err != nil {
			return nil, fmt.Errorf("failed to parse font %s: %w", name, err)
		}
		return f, nil
	}
	sources := map[family][3]struct {
		name string
		ttf  []byte
	}{
		familySans:  {{"gobold", gobold.TTF}, {"goregular", goregular.TTF}, {"goitalic", goitalic.TTF}},
		familySerif: {{"gobold", gobold.TTF}, {"gomedium", gomedium.TTF}, {"gomediumitalic", gomediumitalic.TTF}},
		familyMono:  {{"gomonobold", gomonobold.TTF}, {"gomono", gomono.TTF}, {"gomonoitalic", gomonoitalic.TTF}},
	}
	out := make(map[family]typeface, len(sources))
	for fam, src := range sources {
		var fonts [3]*truetype.Font
		for i, s := range src {
			f, err := parse(s.name, s.ttf)
			if err != nil {
				return nil, err
			}
			fonts[i] = f
		}
		out[fam] = typeface{bold: fonts[0], regular: fonts[1], italic: fonts[2]}
	}
	return out, nil
})

// faces are per canvas: truetype faces cache glyphs and must not be shared
// between goroutines.
type faces struct {
	title, author, fandom font.Face
}

func newFaces(fam family) (*faces, error) {
	all, err := loadTypefaces()
	if err != nil {
		return nil, err
	}
	tf := all[fam]
	face := func(f *truetype.Font, size float64) font.Face {
		return truetype.NewFace(f, &truetype.Options{Size: size, Hinting: font.HintingFull})
	}
	return &faces{
		title:  face(tf.bold, titleSize),
		author: face(tf.italic, authorSize),
		fandom: face(tf.regular, fandomSize),
	}, nil
}
