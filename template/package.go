package template

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"story-archiver/model"
)

// ContentOPF renders the OPF 2.0 package document.
func ContentOPF(uniqueIdentifier string, dc *model.DublinCoreMetadata, manifest *model.Manifest, spine *model.Spine) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		metadata, err := dc.Marshal()
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}
		items, err := manifest.Marshal()
		if err != nil {
			return fmt.Errorf("failed to marshal manifest: %w", err)
		}
		order, err := spine.Marshal()
		if err != nil {
			return fmt.Errorf("failed to marshal spine: %w", err)
		}
		_, err = fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="%s" unique-identifier="%s" version="2.0">
%s

%s

%s
</package>`, model.NamespaceOPF, templ.EscapeString(uniqueIdentifier), metadata, items, order)
		return err
	})
}

// TocNCX renders the legacy navigation document.
func TocNCX(ncx *model.TocNCX) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		body, err := ncx.Marshal()
		if err != nil {
			return fmt.Errorf("failed to marshal ncx: %w", err)
		}
		_, err = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>`+"\n"+body)
		return err
	})
}
