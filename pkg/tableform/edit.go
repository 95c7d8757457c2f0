package tableform

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/syms-residuos/backoffice/pkg/model"
)

// FieldAdapter converts one record field to its form representation and
// back.
type FieldAdapter struct {
	Field    string
	ToForm   func(any) (string, error)
	FromForm func(string) (any, error)
}

// BoolSelect adapts a boolean record field to a two-option select: true maps
// to trueValue and false to falseValue.
func BoolSelect(field, trueValue, falseValue string) FieldAdapter {
	return FieldAdapter{
		Field: field,
		ToForm: func(v any) (string, error) {
			switch b := v.(type) {
			case bool:
				if b {
					return trueValue, nil
				}
				return falseValue, nil
			case *bool:
				if b == nil {
					return "", nil
				}
				if *b {
					return trueValue, nil
				}
				return falseValue, nil
			case nil:
				return "", nil
			default:
				return "", fmt.Errorf("tableform: %s: expected bool, got %T", field, v)
			}
		},
		FromForm: func(s string) (any, error) {
			switch strings.TrimSpace(s) {
			case trueValue:
				return true, nil
			case falseValue:
				return false, nil
			default:
				return nil, fmt.Errorf("tableform: %s: unexpected value %q", field, s)
			}
		},
	}
}

// EditForm is a Form pre-filled from an existing record.
type EditForm struct {
	*Form
	record   model.Record
	adapters map[string]FieldAdapter
}

// NewEdit adapts record into initial values and builds the underlying Form.
// Every descriptor must have a matching record key. Options are applied after
// the record values, so WithInitialValues overrides them.
func NewEdit(spec model.FormSpec, record model.Record, onSubmit SubmitFunc, adapters []FieldAdapter, opts ...Option) (*EditForm, error) {
	e := &EditForm{
		record:   record,
		adapters: make(map[string]FieldAdapter, len(adapters)),
	}
	for _, adapter := range adapters {
		e.adapters[adapter.Field] = adapter
	}

	if err := checkRecord(spec, record); err != nil {
		return nil, err
	}
	initial, err := e.toValues(spec)
	if err != nil {
		return nil, err
	}

	form, err := New(spec, onSubmit, append([]Option{WithInitialValues(initial)}, opts...)...)
	if err != nil {
		return nil, err
	}
	e.Form = form
	return e, nil
}

// Check reports descriptor names missing from the record.
func (e *EditForm) Check() error {
	return checkRecord(e.spec, e.record)
}

// Record returns the record the form was built from.
func (e *EditForm) Record() model.Record {
	return e.record
}

// Reconstitute maps submitted values back to the record's native
// representation. Fields without an adapter stay strings.
func (e *EditForm) Reconstitute(values model.Values) (model.Record, error) {
	out := make(model.Record, len(e.spec.Fields))
	for _, name := range e.spec.Names() {
		raw, ok := values[name]
		if !ok {
			continue
		}
		adapter, ok := e.adapters[name]
		if !ok || adapter.FromForm == nil {
			out[name] = raw
			continue
		}
		native, err := adapter.FromForm(raw)
		if err != nil {
			return nil, err
		}
		out[name] = native
	}
	return out, nil
}

// RecordSubmitFunc receives the reconstituted record instead of raw values.
type RecordSubmitFunc func(ctx context.Context, record model.Record) (bool, error)

// NewEditRecord is NewEdit for handlers that want native values: submitted
// values are passed through Reconstitute before fn is called. A value an
// adapter cannot convert is reported as a rejection.
func NewEditRecord(spec model.FormSpec, record model.Record, fn RecordSubmitFunc, adapters []FieldAdapter, opts ...Option) (*EditForm, error) {
	if fn == nil {
		return nil, ErrNoSubmit
	}
	var e *EditForm
	submit := func(ctx context.Context, values model.Values) (bool, error) {
		native, err := e.Reconstitute(values)
		if err != nil {
			return false, Reject(err.Error())
		}
		return fn(ctx, native)
	}
	e, err := NewEdit(spec, record, submit, adapters, opts...)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (e *EditForm) toValues(spec model.FormSpec) (model.Values, error) {
	values := make(model.Values, len(spec.Fields))
	for _, name := range spec.Names() {
		raw := e.record[name]
		if adapter, ok := e.adapters[name]; ok && adapter.ToForm != nil {
			converted, err := adapter.ToForm(raw)
			if err != nil {
				return nil, err
			}
			values[name] = converted
			continue
		}
		values[name] = stringify(raw)
	}
	return values, nil
}

func checkRecord(spec model.FormSpec, record model.Record) error {
	var missing []string
	for _, name := range spec.Names() {
		if _, ok := record[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("tableform: record is missing fields %s", strings.Join(missing, ", "))
}

func stringify(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case *string:
		if value == nil {
			return ""
		}
		return *value
	case bool:
		return strconv.FormatBool(value)
	case fmt.Stringer:
		return value.String()
	default:
		return fmt.Sprint(value)
	}
}
