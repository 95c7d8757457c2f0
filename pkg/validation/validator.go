package validation

import (
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/syms-residuos/backoffice/pkg/model"
)

// Errors maps field names to the messages of the rules they failed, in rule
// declaration order.
type Errors map[string][]string

// Empty reports whether no field failed.
func (e Errors) Empty() bool {
	return len(e) == 0
}

// First returns the first message recorded for field.
func (e Errors) First(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Fields lists failing field names in sorted order.
func (e Errors) Fields() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validator evaluates model.Schema rules against submitted values. Length,
// e-mail and membership checks delegate to go-playground/validator; patterns
// are compiled once and cached. Validator is safe for concurrent use.
type Validator struct {
	validate *validator.Validate

	mu       sync.RWMutex
	patterns map[string]*regexp.Regexp
}

// New constructs a Validator.
func New() *Validator {
	return &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		patterns: make(map[string]*regexp.Regexp),
	}
}

var defaultValidator = New()

// Validate runs the schema against values using a shared Validator.
func Validate(schema model.Schema, values model.Values) Errors {
	return defaultValidator.Validate(schema, values)
}

// Validate evaluates every rule group in schema. A failing required rule
// suppresses the remaining rules for that field, and blank values on fields
// without a required rule are accepted as-is. The returned map is nil when all
// rules pass.
func (v *Validator) Validate(schema model.Schema, values model.Values) Errors {
	var errs Errors
	for _, group := range schema.Fields {
		msgs := v.Field(group.Rules, values.Get(group.Field))
		if len(msgs) == 0 {
			continue
		}
		if errs == nil {
			errs = make(Errors)
		}
		errs[group.Field] = append(errs[group.Field], msgs...)
	}
	return errs
}

// Field evaluates rules against a single value and returns the failure
// messages.
func (v *Validator) Field(rules []model.Rule, value string) []string {
	if strings.TrimSpace(value) == "" {
		for _, rule := range rules {
			if rule.Kind == model.RuleRequired {
				return []string{messageFor(rule)}
			}
		}
		return nil
	}

	var msgs []string
	for _, rule := range rules {
		if rule.Kind == model.RuleRequired {
			continue
		}
		if !v.passes(rule, value) {
			msgs = append(msgs, messageFor(rule))
		}
	}
	return msgs
}

func (v *Validator) passes(rule model.Rule, value string) bool {
	switch rule.Kind {
	case model.RuleMinLength:
		return v.validate.Var(value, "min="+rule.Param) == nil
	case model.RuleMaxLength:
		return v.validate.Var(value, "max="+rule.Param) == nil
	case model.RuleEmail:
		return v.validate.Var(strings.TrimSpace(value), "email") == nil
	case model.RuleOneOf:
		allowed, ok := model.OneOfValues(rule.Param)
		return ok && slices.Contains(allowed, value)
	case model.RulePattern:
		re, err := v.pattern(rule.Param)
		if err != nil {
			return false
		}
		return re.MatchString(value)
	default:
		return true
	}
}

func (v *Validator) pattern(expr string) (*regexp.Regexp, error) {
	v.mu.RLock()
	re, ok := v.patterns[expr]
	v.mu.RUnlock()
	if ok {
		return re, nil
	}

	compiled, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	v.mu.Lock()
	v.patterns[expr] = compiled
	v.mu.Unlock()
	return compiled, nil
}

func messageFor(rule model.Rule) string {
	if msg := strings.TrimSpace(rule.Message); msg != "" {
		return msg
	}
	switch rule.Kind {
	case model.RuleRequired:
		return "Este campo es requerido."
	case model.RuleMinLength:
		return fmt.Sprintf("Debe tener al menos %s caracteres.", rule.Param)
	case model.RuleMaxLength:
		return fmt.Sprintf("Debe tener como máximo %s caracteres.", rule.Param)
	case model.RuleEmail:
		return "Debe ser un email valido."
	case model.RuleOneOf:
		return "Seleccione una opción valida."
	default:
		return "Valor invalido."
	}
}

// CheckRules reports malformed rules: unknown kinds, non-numeric length
// parameters and patterns that fail to compile.
func CheckRules(schema model.Schema) error {
	var issues []string
	for _, group := range schema.Fields {
		for _, rule := range group.Rules {
			if issue := checkRule(rule); issue != "" {
				issues = append(issues, fmt.Sprintf("%s: %s", group.Field, issue))
			}
		}
	}
	if len(issues) == 0 {
		return nil
	}
	return fmt.Errorf("validation: invalid rules: %s", strings.Join(issues, "; "))
}

func checkRule(rule model.Rule) string {
	switch rule.Kind {
	case model.RuleRequired, model.RuleEmail:
		return ""
	case model.RuleMinLength, model.RuleMaxLength:
		n, err := strconv.Atoi(strings.TrimSpace(rule.Param))
		if err != nil || n < 0 {
			return fmt.Sprintf("%s expects a non-negative integer, got %q", rule.Kind, rule.Param)
		}
		return ""
	case model.RuleOneOf:
		values, ok := model.OneOfValues(rule.Param)
		if !ok {
			return fmt.Sprintf("oneOf has an unterminated quote in %q", rule.Param)
		}
		if len(values) == 0 {
			return "oneOf expects at least one value"
		}
		return ""
	case model.RulePattern:
		if _, err := regexp.Compile(rule.Param); err != nil {
			return fmt.Sprintf("pattern does not compile: %v", err)
		}
		return ""
	default:
		return fmt.Sprintf("unknown rule %q", rule.Kind)
	}
}
