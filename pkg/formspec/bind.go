package formspec

import (
	"context"
	"fmt"

	"github.com/syms-residuos/backoffice/pkg/model"
)

// OptionSource produces the options for a catalog-backed select.
type OptionSource func(ctx context.Context) (model.OptionList, error)

// Sources maps optionsSource names to loaders.
type Sources map[string]OptionSource

// Static wraps a fixed option list as an OptionSource.
func Static(options model.OptionList) OptionSource {
	return func(context.Context) (model.OptionList, error) {
		return options, nil
	}
}

// Bind returns a copy of spec with every optionsSource field populated. Each
// source is loaded at most once per call. A field whose source is not
// registered keeps its declared options, so it renders without selectable
// values rather than failing the page.
func Bind(ctx context.Context, spec model.FormSpec, sources Sources) (model.FormSpec, error) {
	loaded := make(map[string]model.OptionList)
	out := spec
	for _, field := range spec.Fields {
		name := field.Metadata[OptionsSourceKey]
		if name == "" {
			continue
		}
		source, ok := sources[name]
		if !ok || source == nil {
			continue
		}
		options, cached := loaded[name]
		if !cached {
			var err error
			options, err = source(ctx)
			if err != nil {
				return model.FormSpec{}, fmt.Errorf("formspec: load options %q for %s.%s: %w", name, spec.ID, field.Name, err)
			}
			loaded[name] = options
		}
		out = out.WithOptions(field.Name, options)
	}
	return out, nil
}
