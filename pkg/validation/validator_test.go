package validation_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/syms-residuos/backoffice/pkg/model"
	"github.com/syms-residuos/backoffice/pkg/validation"
)

func empresaSchema() model.Schema {
	return model.NewSchema(
		model.Rules("nombre",
			model.Required("El nombre es requerido."),
			model.MinLength(3, "El nombre debe tener al menos 3 caracteres."),
		),
		model.Rules("email",
			model.Required("El email es requerido."),
			model.Email("El email debe ser valido."),
		),
		model.Rules("estado",
			model.Required("El estado es requerido."),
			model.OneOf([]string{"activo", "inactivo"}, "Estado invalido."),
		),
		model.Rules("telefono", model.MinLength(9, "El telefono debe tener al menos 9 caracteres.")),
	)
}

func TestValidate_AllRulesPass(t *testing.T) {
	values := model.Values{
		"nombre": "Reciclajes del Sur",
		"email":  "contacto@sur.cl",
		"estado": "activo",
	}
	if errs := validation.Validate(empresaSchema(), values); errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidate_ReportsConfiguredMessages(t *testing.T) {
	tests := []struct {
		name   string
		values model.Values
		want   validation.Errors
	}{
		{
			name:   "missing required field",
			values: model.Values{"email": "a@b.cl", "estado": "activo"},
			want:   validation.Errors{"nombre": {"El nombre es requerido."}},
		},
		{
			name:   "blank counts as missing",
			values: model.Values{"nombre": "   ", "email": "a@b.cl", "estado": "activo"},
			want:   validation.Errors{"nombre": {"El nombre es requerido."}},
		},
		{
			name:   "too short",
			values: model.Values{"nombre": "ab", "email": "a@b.cl", "estado": "activo"},
			want:   validation.Errors{"nombre": {"El nombre debe tener al menos 3 caracteres."}},
		},
		{
			name:   "bad email",
			values: model.Values{"nombre": "abc", "email": "not-an-email", "estado": "activo"},
			want:   validation.Errors{"email": {"El email debe ser valido."}},
		},
		{
			name:   "value outside options",
			values: model.Values{"nombre": "abc", "email": "a@b.cl", "estado": "pendiente"},
			want:   validation.Errors{"estado": {"Estado invalido."}},
		},
		{
			name:   "optional field validated when present",
			values: model.Values{"nombre": "abc", "email": "a@b.cl", "estado": "activo", "telefono": "1234"},
			want:   validation.Errors{"telefono": {"El telefono debe tener al menos 9 caracteres."}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validation.Validate(empresaSchema(), tt.values)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate_MinLengthCountsRunes(t *testing.T) {
	schema := model.NewSchema(model.Rules("ciudad", model.MinLength(3, "short")))
	if errs := validation.Validate(schema, model.Values{"ciudad": "Ñuñ"}); errs != nil {
		t.Fatalf("expected multibyte value to pass, got %v", errs)
	}
}

func TestValidate_Pattern(t *testing.T) {
	schema := model.NewSchema(model.Rules("rut", model.Pattern(`^[0-9]{7,8}-[0-9kK]$`, "RUT invalido.")))
	v := validation.New()

	if errs := v.Validate(schema, model.Values{"rut": "12345678-9"}); errs != nil {
		t.Fatalf("expected valid rut, got %v", errs)
	}
	errs := v.Validate(schema, model.Values{"rut": "12.345.678-9"})
	if got := errs.First("rut"); got != "RUT invalido." {
		t.Fatalf("expected pattern message, got %q", got)
	}
}

func TestValidate_OneOfValuesWithSpaces(t *testing.T) {
	regions := []string{"Biobio", "Libertador General Bernardo O'Higgins", "Los Rios"}
	schema := model.NewSchema(model.Rules("region", model.OneOf(regions, "Region invalida.")))

	for _, value := range regions {
		if errs := validation.Validate(schema, model.Values{"region": value}); errs != nil {
			t.Fatalf("expected %q to pass, got %v", value, errs)
		}
	}
	for _, value := range []string{"Los", "Rios", "O'Higgins"} {
		errs := validation.Validate(schema, model.Values{"region": value})
		if got := errs.First("region"); got != "Region invalida." {
			t.Fatalf("expected %q to fail, got %q", value, got)
		}
	}
}

func TestValidate_DefaultMessage(t *testing.T) {
	schema := model.NewSchema(model.Rules("nombre", model.Rule{Kind: model.RuleRequired}))
	errs := validation.Validate(schema, model.Values{})
	if got := errs.First("nombre"); got != "Este campo es requerido." {
		t.Fatalf("unexpected default message %q", got)
	}
}

func TestErrorsFieldsSorted(t *testing.T) {
	errs := validation.Errors{"rut": {"x"}, "email": {"y"}, "nombre": {"z"}}
	if diff := cmp.Diff([]string{"email", "nombre", "rut"}, errs.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckRules(t *testing.T) {
	if err := validation.CheckRules(empresaSchema()); err != nil {
		t.Fatalf("expected valid rules, got %v", err)
	}

	bad := model.NewSchema(
		model.Rules("nombre", model.Rule{Kind: model.RuleMinLength, Param: "three"}),
		model.Rules("rut", model.Pattern("([", "bad")),
		model.Rules("otro", model.Rule{Kind: "uppercase"}),
		model.Rules("region", model.Rule{Kind: model.RuleOneOf, Param: "'Los Rios"}),
	)
	err := validation.CheckRules(bad)
	if err == nil {
		t.Fatalf("expected error for malformed rules")
	}
	for _, fragment := range []string{"nombre: minLength", "rut: pattern", `otro: unknown rule "uppercase"`, "region: oneOf has an unterminated quote"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("expected %q in %q", fragment, err.Error())
		}
	}
}
