package apidoc

import (
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/syms-residuos/backoffice/pkg/model"
)

// SchemaFromForm converts a form into an object schema. Every field is a
// string; rules map onto the matching JSON Schema keywords.
func SchemaFromForm(form model.FormSpec) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	if form.Title != "" {
		schema.Title = form.Title
	}
	if form.Description != "" {
		schema.Description = form.Description
	}

	for _, field := range form.Fields {
		prop := openapi3.NewStringSchema()
		if field.Label != "" {
			prop.Title = field.Label
		}
		if field.HelpText != "" {
			prop.Description = field.HelpText
		}
		if field.Kind == model.FieldKindSelect && len(field.Options) > 0 {
			prop.WithEnum(enumValues(field.Options.Values())...)
		}
		for _, rule := range form.Schema.RulesFor(field.Name) {
			applyRule(prop, rule)
		}
		schema.WithProperty(field.Name, prop)
		if form.Schema.IsRequired(field.Name) {
			schema.Required = append(schema.Required, field.Name)
		}
	}
	return schema
}

func applyRule(prop *openapi3.Schema, rule model.Rule) {
	switch rule.Kind {
	case model.RuleRequired:
		if prop.MinLength == 0 {
			prop.WithMinLength(1)
		}
	case model.RuleMinLength:
		if n, err := strconv.ParseInt(strings.TrimSpace(rule.Param), 10, 64); err == nil && n >= 0 {
			prop.WithMinLength(n)
		}
	case model.RuleMaxLength:
		if n, err := strconv.ParseInt(strings.TrimSpace(rule.Param), 10, 64); err == nil && n >= 0 {
			prop.WithMaxLength(n)
		}
	case model.RuleEmail:
		prop.WithFormat("email")
	case model.RuleOneOf:
		if values, ok := model.OneOfValues(rule.Param); ok {
			prop.WithEnum(enumValues(values)...)
		}
	case model.RulePattern:
		prop.WithPattern(rule.Param)
	}
}

func enumValues(values []string) []any {
	out := make([]any, 0, len(values))
	for _, value := range values {
		out = append(out, value)
	}
	return out
}

// ActionResultSchema describes {"error": string|null}.
func ActionResultSchema() *openapi3.Schema {
	errSchema := openapi3.NewStringSchema()
	errSchema.Nullable = true
	return openapi3.NewObjectSchema().WithProperty("error", errSchema)
}

// DeleteResultSchema describes {"ok": bool}.
func DeleteResultSchema() *openapi3.Schema {
	schema := openapi3.NewObjectSchema().WithProperty("ok", openapi3.NewBoolSchema())
	schema.Required = []string{"ok"}
	return schema
}
