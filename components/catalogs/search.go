package catalogs

import (
	"sort"
	"strings"

	"github.com/syms-residuos/backoffice/pkg/model"
)

// Search filters options whose label or value contains query, case
// insensitively. Label prefix matches sort first; otherwise source order is
// kept.
func Search(options model.OptionList, query string, limit int, opts Options) model.OptionList {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.EmptySearchMode != EmptySearchTop {
			return nil
		}
		if len(options) <= limit {
			return append(model.OptionList{}, options...)
		}
		return append(model.OptionList{}, options[:limit]...)
	}

	q := strings.ToLower(query)
	matches := make([]matchedOption, 0, 16)
	for _, option := range options {
		label := strings.ToLower(option.Label)
		if !strings.Contains(label, q) && !strings.Contains(strings.ToLower(option.Value), q) {
			continue
		}
		matches = append(matches, matchedOption{
			option:   option,
			isPrefix: strings.HasPrefix(label, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].isPrefix && !matches[j].isPrefix
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make(model.OptionList, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.option)
	}
	return out
}

type matchedOption struct {
	option   model.Option
	isPrefix bool
}
