package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/syms-residuos/backoffice/pkg/model"
)

// Built-in widget identifiers. Input widgets map onto HTML input types.
const (
	WidgetSelect = "select"
	WidgetEmail  = "email"
	WidgetTel    = "tel"
	WidgetText   = "text"
)

// MetadataKey is the field metadata entry carrying the resolved widget.
const MetadataKey = "widget"

// Matcher decides whether a widget should handle the field, given the rules
// the schema declares for it.
type Matcher func(field model.Field, rules []model.Rule) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on explicit metadata or
// registered matchers. Higher priority wins; ties fall back to registration
// order. Fields nothing matches resolve to WidgetText.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a matcher with the provided name and priority.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget for a field. An explicit metadata hint wins over
// matchers, except that select fields always resolve to WidgetSelect.
func (r *Registry) Resolve(field model.Field, rules []model.Rule) string {
	if field.Kind == model.FieldKindSelect {
		return WidgetSelect
	}
	if explicit := strings.TrimSpace(field.Metadata[MetadataKey]); explicit != "" {
		return explicit
	}
	if r == nil {
		return WidgetText
	}

	r.mu.RLock()
	candidates := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].priority == candidates[j].priority {
			return candidates[i].order < candidates[j].order
		}
		return candidates[i].priority > candidates[j].priority
	})
	for _, entry := range candidates {
		if entry.match(field, rules) {
			return entry.name
		}
	}
	return WidgetText
}

// Decorate implements model.Decorator, recording the resolved widget in each
// field's metadata.
func (r *Registry) Decorate(form *model.FormSpec) error {
	if form == nil {
		return nil
	}
	fields := make([]model.Field, len(form.Fields))
	for idx, field := range form.Fields {
		widget := r.Resolve(field, form.Schema.RulesFor(field.Name))
		metadata := make(map[string]string, len(field.Metadata)+1)
		for key, value := range field.Metadata {
			metadata[key] = value
		}
		metadata[MetadataKey] = widget
		field.Metadata = metadata
		fields[idx] = field
	}
	form.Fields = fields
	return nil
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetEmail, 90, func(field model.Field, rules []model.Rule) bool {
		for _, rule := range rules {
			if rule.Kind == model.RuleEmail {
				return true
			}
		}
		return false
	})

	r.Register(WidgetTel, 80, func(field model.Field, _ []model.Rule) bool {
		name := strings.ToLower(field.Name)
		return strings.Contains(name, "telefono") || strings.Contains(name, "phone")
	})
}
