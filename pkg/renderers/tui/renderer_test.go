package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/syms-residuos/backoffice/pkg/model"
	"github.com/syms-residuos/backoffice/pkg/render"
	"github.com/syms-residuos/backoffice/pkg/testsupport"
)

// stubDriver replays scripted answers. Inputs rejected by the validator are
// recorded and the next scripted answer is tried, like survey re-prompting.
type stubDriver struct {
	inputs    []string
	selectIdx []int
	inputPos  int
	selectPos int

	rejected []string
	defaults []string
	info     []string
	selects  []SelectConfig
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.defaults = append(s.defaults, cfg.Default)
	for s.inputPos < len(s.inputs) {
		val := s.inputs[s.inputPos]
		s.inputPos++
		if cfg.Validator != nil {
			if err := cfg.Validator(val); err != nil {
				s.rejected = append(s.rejected, err.Error())
				continue
			}
		}
		return val, nil
	}
	return "", errors.New("no input scripted")
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selects = append(s.selects, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Confirm(context.Context, ConfirmConfig) (bool, error) {
	return true, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.info = append(s.info, msg)
	return nil
}

func TestCollect_ValidatesInputsAndMapsSelectLabels(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"ab", "Reciclajes del Sur", "nope", "contacto@sur.cl"},
		selectIdx: []int{1},
	}
	r := New(WithPromptDriver(driver))

	values, err := r.Collect(context.Background(), testsupport.EmpresaSpec(), nil, nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	want := model.Values{"nombre": "Reciclajes del Sur", "email": "contacto@sur.cl", "estado": "inactivo"}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	wantRejected := []string{"El nombre debe tener al menos 3 caracteres.", "El email debe ser valido."}
	if diff := cmp.Diff(wantRejected, driver.rejected); diff != "" {
		t.Fatalf("rejections mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Activo", "Inactivo"}, driver.selects[0].Options); diff != "" {
		t.Fatalf("select labels mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect_SeedsDefaultsAndPrintsErrors(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Nuevo nombre", "a@b.cl"},
		selectIdx: []int{1},
	}
	r := New(WithPromptDriver(driver), WithErrorPrefix("! "))

	initial := model.Values{"nombre": "Viejo", "email": "a@b.cl", "estado": "inactivo"}
	_, err := r.Collect(context.Background(), testsupport.EmpresaSpec(), initial, map[string][]string{
		"nombre": {"El nombre es requerido."},
	})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if diff := cmp.Diff([]string{"Viejo", "a@b.cl"}, driver.defaults); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if driver.selects[0].DefaultIndex != 1 {
		t.Fatalf("expected select default index 1, got %d", driver.selects[0].DefaultIndex)
	}
	if diff := cmp.Diff([]string{"! El nombre es requerido."}, driver.info); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
	if initial["nombre"] != "Viejo" {
		t.Fatalf("collect mutated initial values")
	}
}

func TestCollect_EmptyOptions(t *testing.T) {
	optional := model.FormSpec{
		Fields: []model.Field{{Name: "ciiu", Kind: model.FieldKindSelect}},
		Schema: model.NewSchema(model.Rules("ciiu")),
	}
	values, err := New(WithPromptDriver(&stubDriver{})).Collect(context.Background(), optional, nil, nil)
	if err != nil || values["ciiu"] != "" {
		t.Fatalf("expected empty optional select to be skipped, got %v %v", values, err)
	}

	required := optional
	required.Schema = model.NewSchema(model.Rules("ciiu", model.Required("El ciiu es requerido.")))
	_, err = New(WithPromptDriver(&stubDriver{})).Collect(context.Background(), required, nil, nil)
	if !errors.Is(err, ErrNoOptions) {
		t.Fatalf("expected ErrNoOptions, got %v", err)
	}
}

func TestRender_OutputFormats(t *testing.T) {
	script := func() *stubDriver {
		return &stubDriver{inputs: []string{"Reciclajes del Sur", "contacto@sur.cl"}, selectIdx: []int{0}}
	}

	out, err := New(WithPromptDriver(script())).Render(context.Background(), testsupport.EmpresaSpec(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render json: %v", err)
	}
	var decoded map[string]string
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["estado"] != "activo" {
		t.Fatalf("unexpected payload %v", decoded)
	}

	r := New(WithPromptDriver(script()), WithOutputFormat(OutputFormatPrettyText))
	out, err = r.Render(context.Background(), testsupport.EmpresaSpec(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render pretty: %v", err)
	}
	want := "Nombre: Reciclajes del Sur\nEmail: contacto@sur.cl\nEstado: Activo\n"
	if string(out) != want {
		t.Fatalf("pretty output mismatch\nwant %q\n got %q", want, string(out))
	}
	if r.ContentType() != "text/plain" {
		t.Fatalf("unexpected content type %q", r.ContentType())
	}

	r = New(WithPromptDriver(script()), WithOutputFormat(OutputFormatFormURLEncoded))
	out, err = r.Render(context.Background(), testsupport.EmpresaSpec(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	if string(out) != "email=contacto%40sur.cl&estado=activo&nombre=Reciclajes+del+Sur" {
		t.Fatalf("unexpected form payload %q", string(out))
	}
}

func TestRender_YAMLKeepsFieldOrder(t *testing.T) {
	driver := &stubDriver{inputs: []string{"Reciclajes del Sur", "contacto@sur.cl"}, selectIdx: []int{1}}
	r := New(WithPromptDriver(driver), WithOutputFormat(OutputFormatYAML))

	out, err := r.Render(context.Background(), testsupport.EmpresaSpec(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render yaml: %v", err)
	}
	var decoded map[string]string
	if err := yaml.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]string{"nombre": "Reciclajes del Sur", "email": "contacto@sur.cl", "estado": "inactivo"}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
	text := string(out)
	if !(strings.Index(text, "nombre:") < strings.Index(text, "email:") && strings.Index(text, "email:") < strings.Index(text, "estado:")) {
		t.Fatalf("expected declaration order, got %q", text)
	}
	if r.ContentType() != "application/yaml" {
		t.Fatalf("unexpected content type %q", r.ContentType())
	}
}

func TestCollect_AbortPropagates(t *testing.T) {
	driver := &abortDriver{}
	_, err := New(WithPromptDriver(driver)).Collect(context.Background(), testsupport.EmpresaSpec(), nil, nil)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

type abortDriver struct{ stubDriver }

func (a *abortDriver) Input(context.Context, InputConfig) (string, error) {
	return "", ErrAborted
}
