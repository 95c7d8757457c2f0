package testsupport

import (
	"bytes"
	"io"
	"testing"

	"github.com/syms-residuos/backoffice/pkg/model"
)

// EmpresaSpec returns a small empresa-shaped form used across renderer and
// form tests.
func EmpresaSpec() model.FormSpec {
	return model.FormSpec{
		ID:          "empresa",
		Title:       "Editar empresa",
		SubmitLabel: "Guardar",
		Fields: []model.Field{
			{Name: "nombre", Label: "Nombre", Kind: model.FieldKindInput, Placeholder: "Nombre", HelpText: "Nombre de la empresa"},
			{Name: "email", Label: "Email", Kind: model.FieldKindInput, Placeholder: "Email"},
			{
				Name:  "estado",
				Label: "Estado",
				Kind:  model.FieldKindSelect,
				Options: model.OptionList{
					{Value: "activo", Label: "Activo"},
					{Value: "inactivo", Label: "Inactivo"},
				},
			},
		},
		Schema: model.NewSchema(
			model.Rules("nombre",
				model.Required("El nombre es requerido."),
				model.MinLength(3, "El nombre debe tener al menos 3 caracteres."),
			),
			model.Rules("email",
				model.Required("El email es requerido."),
				model.Email("El email debe ser valido."),
			),
			model.Rules("estado", model.Required("El estado es requerido.")),
		),
	}
}

// ValidEmpresaValues satisfies every rule of EmpresaSpec.
func ValidEmpresaValues() model.Values {
	return model.Values{
		"nombre": "Reciclajes del Sur",
		"email":  "contacto@sur.cl",
		"estado": "activo",
	}
}

// CaptureTemplateOutput executes a render function that writes to an
// io.Writer, returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
