package gotemplate_test

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/syms-residuos/backoffice/pkg/render/template/gotemplate"
	"github.com/syms-residuos/backoffice/pkg/testsupport"
)

func templatesFS() fstest.MapFS {
	return fstest.MapFS{
		"hello.tmpl":      {Data: []byte("Hola {{ name }}")},
		"use-global.tmpl": {Data: []byte("env={{ settings.env }}")},
		"use-filter.tmpl": {Data: []byte("{{ name|shout }}")},
		"errors.tmpl":     {Data: []byte("[{{ errors.nombre|first_message }}][{{ errors.rut|first_message }}]")},
		"struct.tmpl":     {Data: []byte("{{ empresa.nombre }} ({{ empresa.activo|yesno:\"activo,inactivo\" }})")},
	}
}

func newEngine(t *testing.T, opts ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()
	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(templatesFS())}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})
	if result != "Hola Ada" || written != result {
		t.Fatalf("unexpected output result=%q written=%q", result, written)
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t, gotemplate.WithGlobalData(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}))

	result, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "env=staging" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}

	result, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "ADA!" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestEngine_FirstMessageFilter(t *testing.T) {
	engine := newEngine(t)
	result, err := engine.RenderTemplate("errors", map[string]any{
		"errors": map[string][]string{"nombre": {"El nombre es requerido.", "otro"}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "[El nombre es requerido.][]" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestEngine_StructsUseJSONNames(t *testing.T) {
	type empresa struct {
		Nombre string `json:"nombre"`
		Activo bool   `json:"activo"`
	}
	engine := newEngine(t)
	result, err := engine.RenderTemplate("struct", map[string]any{"empresa": empresa{Nombre: "Sur", Activo: false}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Sur (inactivo)" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestEngine_RenderStringEscapes(t *testing.T) {
	engine := newEngine(t)
	result, err := engine.RenderString("<p>{{ value }}</p>", map[string]any{"value": "<b>x</b>"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if result != "<p>&lt;b&gt;x&lt;/b&gt;</p>" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without template sources")
	}
}

func TestEngine_MissingTemplate(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected missing template error")
	}
}
