package backoffice_test

import (
	"context"
	"io/fs"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/syms-residuos/backoffice"
	"github.com/syms-residuos/backoffice/pkg/formspec"
	"github.com/syms-residuos/backoffice/pkg/model"
)

func TestEmbeddedAssets(t *testing.T) {
	if _, err := fs.Stat(backoffice.EmbeddedTemplates(), "templates/form.tmpl"); err != nil {
		t.Fatalf("expected embedded form template: %v", err)
	}
	if _, err := fs.Stat(backoffice.EmbeddedForms(), "empresas.yaml"); err != nil {
		t.Fatalf("expected embedded empresa form: %v", err)
	}
}

func TestLoadForms(t *testing.T) {
	store, err := backoffice.LoadForms("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{backoffice.FormEmpresa, backoffice.FormTransportista}
	if diff := cmp.Diff(want, store.IDs()); diff != "" {
		t.Fatalf("form ids mismatch (-want +got):\n%s", diff)
	}
}

func TestNewOrchestrator(t *testing.T) {
	regions := model.OptionList{{Value: "13", Label: "Metropolitana"}}
	o, err := backoffice.NewOrchestrator(formspec.Sources{"region": formspec.Static(regions)})
	if err != nil {
		t.Fatalf("orchestrator: %v", err)
	}

	spec, err := o.Spec(context.Background(), backoffice.FormTransportista)
	if err != nil {
		t.Fatalf("spec: %v", err)
	}
	region, _ := spec.Field("region")
	if diff := cmp.Diff(regions, region.Options); diff != "" {
		t.Fatalf("region options mismatch (-want +got):\n%s", diff)
	}
}
