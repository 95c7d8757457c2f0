package formspec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/syms-residuos/backoffice/pkg/model"
	"github.com/syms-residuos/backoffice/pkg/validation"
)

// OptionsSourceKey is the field metadata entry naming the catalog that
// populates a select.
const OptionsSourceKey = "optionsSource"

// Store holds the forms parsed from a filesystem, keyed by form id.
type Store struct {
	forms   map[string]model.FormSpec
	sources map[string]string
}

// LoadFS walks fsys and parses every .json/.yaml/.yml file. Form ids must be
// unique across files and every form must pass model and rule checks.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]model.FormSpec), sources: make(map[string]string)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSpecFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("formspec: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for _, raw := range doc.Forms {
			spec, err := raw.toSpec()
			if err != nil {
				return fmt.Errorf("formspec: %s: %w", path, err)
			}
			if prev, exists := store.sources[spec.ID]; exists {
				return fmt.Errorf("formspec: duplicate form %q (files %s and %s)", spec.ID, prev, path)
			}
			store.forms[spec.ID] = spec
			store.sources[spec.ID] = path
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Form returns the spec registered under id.
func (s *Store) Form(id string) (model.FormSpec, bool) {
	if s == nil {
		return model.FormSpec{}, false
	}
	spec, ok := s.forms[id]
	return spec, ok
}

// MustForm returns the spec registered under id or panics.
func (s *Store) MustForm(id string) model.FormSpec {
	spec, ok := s.Form(id)
	if !ok {
		panic(fmt.Sprintf("formspec: form %q not loaded", id))
	}
	return spec
}

// IDs lists loaded form ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Merge overlays other onto s; forms in other replace forms with the same id.
func (s *Store) Merge(other *Store) {
	if other == nil {
		return
	}
	for id, spec := range other.forms {
		s.forms[id] = spec
		s.sources[id] = other.sources[id]
	}
}

type documentFile struct {
	Forms []formFile `json:"forms" yaml:"forms"`
}

type formFile struct {
	ID          string      `json:"id" yaml:"id"`
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description" yaml:"description"`
	SubmitLabel string      `json:"submitLabel" yaml:"submitLabel"`
	Fields      []fieldFile `json:"fields" yaml:"fields"`
}

type fieldFile struct {
	Name          string            `json:"name" yaml:"name"`
	Label         string            `json:"label" yaml:"label"`
	Kind          string            `json:"kind" yaml:"kind"`
	Placeholder   string            `json:"placeholder" yaml:"placeholder"`
	HelpText      string            `json:"helpText" yaml:"helpText"`
	Options       []model.Option    `json:"options" yaml:"options"`
	OptionsSource string            `json:"optionsSource" yaml:"optionsSource"`
	Widget        string            `json:"widget" yaml:"widget"`
	Metadata      map[string]string `json:"metadata" yaml:"metadata"`
	Rules         []ruleFile        `json:"rules" yaml:"rules"`
}

type ruleFile struct {
	Kind    string `json:"kind" yaml:"kind"`
	Param   scalar `json:"param" yaml:"param"`
	Message string `json:"message" yaml:"message"`
}

// scalar accepts any scalar (3, "3", true) and keeps its literal text.
type scalar string

func (s *scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: rule param must be a scalar", node.Line)
	}
	*s = scalar(node.Value)
	return nil
}

func (s *scalar) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*s = scalar(text)
		return nil
	}
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = scalar(strings.TrimSpace(string(raw)))
	return nil
}

func (f formFile) toSpec() (model.FormSpec, error) {
	id := strings.TrimSpace(f.ID)
	if id == "" {
		return model.FormSpec{}, errors.New("form without id")
	}

	spec := model.FormSpec{
		ID:          id,
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		SubmitLabel: strings.TrimSpace(f.SubmitLabel),
	}
	for _, raw := range f.Fields {
		field := model.Field{
			Name:        strings.TrimSpace(raw.Name),
			Label:       strings.TrimSpace(raw.Label),
			Kind:        model.FieldKind(strings.TrimSpace(raw.Kind)),
			Placeholder: raw.Placeholder,
			HelpText:    raw.HelpText,
			Options:     append(model.OptionList(nil), raw.Options...),
			Metadata:    cloneMetadata(raw.Metadata),
		}
		if field.Kind == "" {
			field.Kind = model.FieldKindInput
		}
		if src := strings.TrimSpace(raw.OptionsSource); src != "" {
			field.Metadata = withMetadata(field.Metadata, OptionsSourceKey, src)
		}
		if widget := strings.TrimSpace(raw.Widget); widget != "" {
			field.Metadata = withMetadata(field.Metadata, "widget", widget)
		}
		spec.Fields = append(spec.Fields, field)

		rules := make([]model.Rule, 0, len(raw.Rules))
		for _, rule := range raw.Rules {
			rules = append(rules, model.Rule{
				Kind:    strings.TrimSpace(rule.Kind),
				Param:   strings.TrimSpace(string(rule.Param)),
				Message: strings.TrimSpace(rule.Message),
			})
		}
		spec.Schema = spec.Schema.With(field.Name, rules...)
	}

	if err := spec.Check(); err != nil {
		return model.FormSpec{}, err
	}
	if err := validation.CheckRules(spec.Schema); err != nil {
		return model.FormSpec{}, fmt.Errorf("form %q: %w", id, err)
	}
	return spec, nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("formspec: file %s is empty", source)
	}
	if strings.EqualFold(filepath.Ext(source), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("formspec: parse %s: %w", source, err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("formspec: parse %s: %w", source, err)
	}
	return doc, nil
}

func isSpecFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func cloneMetadata(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for key, value := range src {
		out[key] = value
	}
	return out
}

func withMetadata(meta map[string]string, key, value string) map[string]string {
	if meta == nil {
		meta = make(map[string]string, 1)
	}
	meta[key] = value
	return meta
}
