package model

import (
	"fmt"
	"sort"
	"strings"
)

// FieldKind is the widget family a field renders as.
type FieldKind string

const (
	FieldKindInput  FieldKind = "input"
	FieldKindSelect FieldKind = "select"
)

// Canonical rule identifiers understood by the validation package. Length
// rules encode their threshold in Param, oneOf encodes a space separated list
// (values containing whitespace are single-quoted, see OneOfValues) and pattern
// stores the raw regular expression.
const (
	RuleRequired  = "required"
	RuleMinLength = "minLength"
	RuleMaxLength = "maxLength"
	RuleEmail     = "email"
	RuleOneOf     = "oneOf"
	RulePattern   = "pattern"
)

// Option is one selectable {value, label} pair.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// OptionList is an ordered, read-only sequence of options sourced from a
// catalog lookup.
type OptionList []Option

// Has reports whether value is one of the option values.
func (l OptionList) Has(value string) bool {
	_, ok := l.Label(value)
	return ok
}

// Label returns the label for value.
func (l OptionList) Label(value string) (string, bool) {
	for _, opt := range l {
		if opt.Value == value {
			return opt.Label, true
		}
	}
	return "", false
}

// Values returns the option values in order.
func (l OptionList) Values() []string {
	if len(l) == 0 {
		return nil
	}
	out := make([]string, 0, len(l))
	for _, opt := range l {
		out = append(out, opt.Value)
	}
	return out
}

// Field describes one editable form field. Struct fields are annotated so
// renderers and template engines can serialise them directly.
type Field struct {
	Name        string            `json:"name" yaml:"name"`
	Label       string            `json:"label" yaml:"label"`
	Kind        FieldKind         `json:"kind" yaml:"kind"`
	Options     OptionList        `json:"options,omitempty" yaml:"options,omitempty"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	HelpText    string            `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Rule is a single constraint with the message surfaced when it fails.
type Rule struct {
	Kind    string `json:"kind" yaml:"kind"`
	Param   string `json:"param,omitempty" yaml:"param,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// FieldRules groups the rules that apply to one field.
type FieldRules struct {
	Field string `json:"field" yaml:"field"`
	Rules []Rule `json:"rules" yaml:"rules"`
}

// Schema maps field names to rules. Order is preserved so validation output is
// deterministic.
type Schema struct {
	Fields []FieldRules `json:"fields"`
}

// NewSchema builds a schema from per-field rule groups. Groups that target the
// same field are merged.
func NewSchema(groups ...FieldRules) Schema {
	var schema Schema
	for _, group := range groups {
		schema = schema.With(group.Field, group.Rules...)
	}
	return schema
}

// Rules is shorthand for a FieldRules literal.
func Rules(field string, rules ...Rule) FieldRules {
	return FieldRules{Field: strings.TrimSpace(field), Rules: rules}
}

// Required fails when the value is missing or blank.
func Required(message string) Rule {
	return Rule{Kind: RuleRequired, Message: message}
}

// MinLength fails when the value has fewer than n characters.
func MinLength(n int, message string) Rule {
	return Rule{Kind: RuleMinLength, Param: fmt.Sprint(n), Message: message}
}

// MaxLength fails when the value has more than n characters.
func MaxLength(n int, message string) Rule {
	return Rule{Kind: RuleMaxLength, Param: fmt.Sprint(n), Message: message}
}

// Email fails when the value is not an e-mail address.
func Email(message string) Rule {
	return Rule{Kind: RuleEmail, Message: message}
}

// OneOf fails when the value is not one of values.
func OneOf(values []string, message string) Rule {
	quoted := make([]string, 0, len(values))
	for _, value := range values {
		if value == "" || strings.HasPrefix(value, "'") || strings.ContainsAny(value, " \t\n\r") {
			value = "'" + strings.ReplaceAll(value, "'", "''") + "'"
		}
		quoted = append(quoted, value)
	}
	return Rule{Kind: RuleOneOf, Param: strings.Join(quoted, " "), Message: message}
}

// OneOfValues splits a oneOf param into its values. Quoted values keep their
// whitespace and write a literal quote as ''. It reports false when a quoted
// value is not terminated.
func OneOfValues(param string) ([]string, bool) {
	var values []string
	for i := 0; i < len(param); {
		switch c := param[i]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '\'':
			var value strings.Builder
			closed := false
			for i++; i < len(param); i++ {
				if param[i] != '\'' {
					value.WriteByte(param[i])
					continue
				}
				if i+1 < len(param) && param[i+1] == '\'' {
					value.WriteByte('\'')
					i++
					continue
				}
				closed = true
				i++
				break
			}
			if !closed {
				return nil, false
			}
			values = append(values, value.String())
		default:
			end := strings.IndexAny(param[i:], " \t\n\r")
			if end < 0 {
				end = len(param) - i
			}
			values = append(values, param[i:i+end])
			i += end
		}
	}
	return values, true
}

// Pattern fails when the value does not match expr.
func Pattern(expr, message string) Rule {
	return Rule{Kind: RulePattern, Param: expr, Message: message}
}

// With returns a copy of the schema with rules appended to field.
func (s Schema) With(field string, rules ...Rule) Schema {
	field = strings.TrimSpace(field)
	out := Schema{Fields: make([]FieldRules, 0, len(s.Fields)+1)}
	merged := false
	for _, group := range s.Fields {
		cloned := FieldRules{Field: group.Field, Rules: append([]Rule(nil), group.Rules...)}
		if group.Field == field {
			cloned.Rules = append(cloned.Rules, rules...)
			merged = true
		}
		out.Fields = append(out.Fields, cloned)
	}
	if !merged && field != "" {
		out.Fields = append(out.Fields, FieldRules{Field: field, Rules: append([]Rule(nil), rules...)})
	}
	return out
}

// RulesFor returns the rules registered for field.
func (s Schema) RulesFor(field string) []Rule {
	for _, group := range s.Fields {
		if group.Field == field {
			return group.Rules
		}
	}
	return nil
}

// Has reports whether field has a rule entry.
func (s Schema) Has(field string) bool {
	for _, group := range s.Fields {
		if group.Field == field {
			return true
		}
	}
	return false
}

// IsRequired reports whether field carries a required rule.
func (s Schema) IsRequired(field string) bool {
	for _, rule := range s.RulesFor(field) {
		if rule.Kind == RuleRequired {
			return true
		}
	}
	return false
}

// FieldNames lists the fields with rule entries, in declaration order.
func (s Schema) FieldNames() []string {
	out := make([]string, 0, len(s.Fields))
	for _, group := range s.Fields {
		out = append(out, group.Field)
	}
	return out
}

// Values is the transient value buffer a form edits. Keys are field names.
type Values map[string]string

// Clone returns an independent copy.
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	out := make(Values, len(v))
	for key, value := range v {
		out[key] = value
	}
	return out
}

// Trimmed returns a copy with surrounding whitespace removed from every value.
func (v Values) Trimmed() Values {
	if v == nil {
		return nil
	}
	out := make(Values, len(v))
	for key, value := range v {
		out[key] = strings.TrimSpace(value)
	}
	return out
}

// Get returns the value for field or "".
func (v Values) Get(field string) string {
	if v == nil {
		return ""
	}
	return v[field]
}

// Record is an opaque persisted row keyed by column/field name.
type Record map[string]any

// FormSpec is the data-driven description of one form: an ordered descriptor
// list plus the schema that validates it.
type FormSpec struct {
	ID          string  `json:"id"`
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	SubmitLabel string  `json:"submitLabel,omitempty"`
	Fields      []Field `json:"fields"`
	Schema      Schema  `json:"schema"`
}

// Field returns the descriptor named name.
func (f FormSpec) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Names lists descriptor names in render order.
func (f FormSpec) Names() []string {
	out := make([]string, 0, len(f.Fields))
	for _, field := range f.Fields {
		out = append(out, field.Name)
	}
	return out
}

// WithOptions returns a copy of the spec with options set on field.
func (f FormSpec) WithOptions(field string, options OptionList) FormSpec {
	out := f
	out.Fields = make([]Field, len(f.Fields))
	for idx, candidate := range f.Fields {
		if candidate.Name == field {
			candidate.Options = append(OptionList(nil), options...)
		}
		out.Fields[idx] = candidate
	}
	return out
}

// SpecError lists invariant violations found by FormSpec.Check.
type SpecError struct {
	Form   string
	Issues []string
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("model: form %q is invalid: %s", e.Form, strings.Join(e.Issues, "; "))
}

// Check verifies the structural invariants of the spec: names are present and
// unique, kinds are known, every descriptor has a schema entry and every
// schema entry targets a descriptor.
func (f FormSpec) Check() error {
	var issues []string
	seen := make(map[string]struct{}, len(f.Fields))
	for idx, field := range f.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			issues = append(issues, fmt.Sprintf("field #%d has no name", idx))
			continue
		}
		if _, dup := seen[name]; dup {
			issues = append(issues, fmt.Sprintf("field %q is declared twice", name))
		}
		seen[name] = struct{}{}

		switch field.Kind {
		case FieldKindInput, FieldKindSelect:
		default:
			issues = append(issues, fmt.Sprintf("field %q has unknown kind %q", name, field.Kind))
		}
		if field.Kind == FieldKindInput && len(field.Options) > 0 {
			issues = append(issues, fmt.Sprintf("field %q declares options but is not a select", name))
		}
		if !f.Schema.Has(name) {
			issues = append(issues, fmt.Sprintf("field %q has no schema entry", name))
		}
	}

	orphans := make([]string, 0)
	for _, name := range f.Schema.FieldNames() {
		if _, ok := seen[name]; !ok {
			orphans = append(orphans, name)
		}
	}
	sort.Strings(orphans)
	for _, name := range orphans {
		issues = append(issues, fmt.Sprintf("schema rule targets unknown field %q", name))
	}

	if len(issues) == 0 {
		return nil
	}
	return &SpecError{Form: f.ID, Issues: issues}
}
