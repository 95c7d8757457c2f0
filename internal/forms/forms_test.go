package forms_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/syms-residuos/backoffice/internal/forms"
	"github.com/syms-residuos/backoffice/internal/store"
	"github.com/syms-residuos/backoffice/pkg/formspec"
	"github.com/syms-residuos/backoffice/pkg/model"
	"github.com/syms-residuos/backoffice/pkg/tableform"
)

type staticCatalogs struct{}

func (staticCatalogs) RegionOptions(context.Context) (model.OptionList, error) {
	return model.OptionList{{Value: "1", Label: "Biobio"}}, nil
}

func (staticCatalogs) CiudadOptions(context.Context) (model.OptionList, error) {
	return model.OptionList{{Value: "5", Label: "Concepcion"}}, nil
}

func (staticCatalogs) CiiuOptions(context.Context) (model.OptionList, error) {
	return model.OptionList{{Value: "2", Label: "381100"}}, nil
}

func TestLoadEmbedded(t *testing.T) {
	specs, err := forms.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{forms.Empresa, forms.Transportista}, specs.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	empresa := specs.MustForm(forms.Empresa)
	want := []string{"nombre", "industria", "ciiu", "rut", "representanteLegal", "email", "telefono", "direccion", "region", "ciudad", "estado"}
	if diff := cmp.Diff(want, empresa.Names()); diff != "" {
		t.Fatalf("empresa fields mismatch (-want +got):\n%s", diff)
	}
	for _, name := range want {
		if !empresa.Schema.IsRequired(name) {
			t.Fatalf("expected %s to be required", name)
		}
	}
}

func TestBindCatalogs(t *testing.T) {
	specs, err := forms.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	bound, err := formspec.Bind(context.Background(), specs.MustForm(forms.Empresa), forms.Sources(staticCatalogs{}))
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	ciudad, _ := bound.Field("ciudad")
	if got, ok := ciudad.Options.Label("5"); !ok || got != "Concepcion" {
		t.Fatalf("expected bound ciudad options, got %q", got)
	}
}

func TestEmpresaEditRoundTrip(t *testing.T) {
	specs, err := forms.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	record := forms.EmpresaRecord(store.Empresa{
		ID: "e-1", Nombre: "Reciclajes del Sur", Industria: "Reciclaje", CiiuID: 2, Rut: "76123456",
		RepresentanteLegal: "Ana Perez", Email: "contacto@sur.cl", Telefono: "912345678",
		Ubicacion: "Av. Uno 123", RegionID: 1, CiudadID: 5, Estado: false,
	})

	submit := func(context.Context, model.Values) (bool, error) { return true, nil }
	edit, err := tableform.NewEdit(specs.MustForm(forms.Empresa), record, submit, forms.Adapters())
	if err != nil {
		t.Fatalf("new edit: %v", err)
	}

	initial := edit.InitialValues()
	if initial["estado"] != forms.EstadoInactivo || initial["region"] != "1" || initial["direccion"] != "Av. Uno 123" {
		t.Fatalf("unexpected initial values %v", initial)
	}

	initial["estado"] = forms.EstadoActivo
	native, err := edit.Reconstitute(initial)
	if err != nil {
		t.Fatalf("reconstitute: %v", err)
	}
	if native["estado"] != true {
		t.Fatalf("expected estado true, got %v", native["estado"])
	}
}

func TestLoadOverrideDir(t *testing.T) {
	dir := t.TempDir()
	override := []byte(`forms:
  - id: empresa
    fields:
      - name: nombre
        label: Razon social
        rules:
          - {kind: required, message: La razon social es requerida.}
`)
	if err := os.WriteFile(filepath.Join(dir, "empresa.yaml"), override, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	specs, err := forms.Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	nombre, _ := specs.MustForm(forms.Empresa).Field("nombre")
	if nombre.Label != "Razon social" {
		t.Fatalf("expected override label, got %q", nombre.Label)
	}
	if _, ok := specs.Form(forms.Transportista); !ok {
		t.Fatalf("embedded forms must survive the overlay")
	}
}

func TestMessages(t *testing.T) {
	msgs := forms.Messages(forms.Empresa, true)
	if msgs.Success != "Empresa editada correctamente." {
		t.Fatalf("unexpected success %q", msgs.Success)
	}
	if msgs.Unexpected != "Hubo un error al editar la empresa, si el error persiste contacte a soporte." {
		t.Fatalf("unexpected %q", msgs.Unexpected)
	}
	if got := forms.Messages(forms.Transportista, false).Success; got != "Transportista creado correctamente." {
		t.Fatalf("unexpected %q", got)
	}
}
