package formspec_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/syms-residuos/backoffice/pkg/formspec"
	"github.com/syms-residuos/backoffice/pkg/model"
)

const empresaYAML = `
forms:
  - id: empresa
    title: Editar empresa
    submitLabel: Guardar
    fields:
      - name: nombre
        label: Nombre
        placeholder: Nombre
        helpText: Nombre de la empresa
        rules:
          - {kind: required, message: El nombre es requerido.}
          - {kind: minLength, param: 3, message: El nombre debe tener al menos 3 caracteres.}
      - name: estado
        label: Estado
        kind: select
        options:
          - {value: activo, label: Activo}
          - {value: inactivo, label: Inactivo}
        rules:
          - {kind: required, message: El estado es requerido.}
      - name: region
        label: Region
        kind: select
        optionsSource: region
        rules:
          - {kind: required, message: La region es requerida.}
`

const transportistaJSON = `{
  "forms": [
    {
      "id": "transportista",
      "fields": [
        {"name": "telefono", "label": "Telefono", "rules": [{"kind": "minLength", "param": 9, "message": "corto"}]}
      ]
    }
  ]
}`

func TestLoadFS(t *testing.T) {
	store, err := formspec.LoadFS(fstest.MapFS{
		"empresas.yaml":       {Data: []byte(empresaYAML)},
		"transportistas.json": {Data: []byte(transportistaJSON)},
		"README.md":           {Data: []byte("ignored")},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if diff := cmp.Diff([]string{"empresa", "transportista"}, store.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	empresa := store.MustForm("empresa")
	if diff := cmp.Diff([]string{"nombre", "estado", "region"}, empresa.Names()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
	wantRules := []model.Rule{
		{Kind: model.RuleRequired, Message: "El nombre es requerido."},
		{Kind: model.RuleMinLength, Param: "3", Message: "El nombre debe tener al menos 3 caracteres."},
	}
	if diff := cmp.Diff(wantRules, empresa.Schema.RulesFor("nombre")); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}
	region, _ := empresa.Field("region")
	if region.Metadata[formspec.OptionsSourceKey] != "region" {
		t.Fatalf("expected options source metadata, got %v", region.Metadata)
	}
	nombre, _ := empresa.Field("nombre")
	if nombre.Kind != model.FieldKindInput {
		t.Fatalf("expected default input kind, got %q", nombre.Kind)
	}

	transportista := store.MustForm("transportista")
	if got := transportista.Schema.RulesFor("telefono")[0].Param; got != "9" {
		t.Fatalf("expected numeric JSON param as text, got %q", got)
	}
}

func TestLoadFS_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		files    fstest.MapFS
		fragment string
	}{
		{
			name: "duplicate ids",
			files: fstest.MapFS{
				"a.yaml": {Data: []byte(empresaYAML)},
				"b.yml":  {Data: []byte(empresaYAML)},
			},
			fragment: `duplicate form "empresa"`,
		},
		{
			name:     "bad rule",
			files:    fstest.MapFS{"a.yaml": {Data: []byte("forms:\n  - id: x\n    fields:\n      - name: a\n        rules:\n          - {kind: minLength, param: abc}\n")}},
			fragment: "minLength expects a non-negative integer",
		},
		{
			name:     "unknown kind",
			files:    fstest.MapFS{"a.yaml": {Data: []byte("forms:\n  - id: x\n    fields:\n      - {name: a, kind: radio}\n")}},
			fragment: `unknown kind "radio"`,
		},
		{
			name:     "empty file",
			files:    fstest.MapFS{"a.yaml": {Data: []byte("  ")}},
			fragment: "is empty",
		},
		{
			name:     "missing id",
			files:    fstest.MapFS{"a.yaml": {Data: []byte("forms:\n  - fields: []\n")}},
			fragment: "form without id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := formspec.LoadFS(tt.files)
			if err == nil || !strings.Contains(err.Error(), tt.fragment) {
				t.Fatalf("expected error containing %q, got %v", tt.fragment, err)
			}
		})
	}
}

func TestBind(t *testing.T) {
	store, err := formspec.LoadFS(fstest.MapFS{"empresas.yaml": {Data: []byte(empresaYAML)}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	spec := store.MustForm("empresa")

	calls := 0
	regions := model.OptionList{{Value: "8", Label: "Biobío"}}
	bound, err := formspec.Bind(context.Background(), spec, formspec.Sources{
		"region": func(context.Context) (model.OptionList, error) {
			calls++
			return regions, nil
		},
	})
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	region, _ := bound.Field("region")
	if diff := cmp.Diff(regions, region.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if calls != 1 {
		t.Fatalf("expected one source call, got %d", calls)
	}
	if original, _ := spec.Field("region"); len(original.Options) != 0 {
		t.Fatalf("bind mutated the stored spec")
	}

	unbound, err := formspec.Bind(context.Background(), spec, nil)
	if err != nil {
		t.Fatalf("bind without sources: %v", err)
	}
	if region, _ := unbound.Field("region"); len(region.Options) != 0 {
		t.Fatalf("expected empty options without a source")
	}

	boom := errors.New("boom")
	_, err = formspec.Bind(context.Background(), spec, formspec.Sources{
		"region": func(context.Context) (model.OptionList, error) { return nil, boom },
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected source error, got %v", err)
	}
}
