package actions_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/syms-residuos/backoffice/internal/actions"
	"github.com/syms-residuos/backoffice/internal/store"
	"github.com/syms-residuos/backoffice/pkg/model"
)

const empresaID = "6f1c1a52-3d1e-4f5b-9a53-2b8f0a1d9e11"

type fakeEmpresas struct {
	rows      []store.EmpresaDetail
	listErr   error
	writeErr  error
	deleteErr error
	inserted  []store.Empresa
	updated   []store.Empresa
	deleted   []string
}

func (f *fakeEmpresas) List(context.Context) ([]store.EmpresaDetail, error) {
	return f.rows, f.listErr
}

func (f *fakeEmpresas) Get(_ context.Context, id string) (store.Empresa, error) {
	return store.Empresa{ID: id}, nil
}

func (f *fakeEmpresas) Insert(_ context.Context, e store.Empresa) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.inserted = append(f.inserted, e)
	return nil
}

func (f *fakeEmpresas) Update(_ context.Context, e store.Empresa) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.updated = append(f.updated, e)
	return nil
}

func (f *fakeEmpresas) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeTransportistas struct {
	deleteErr error
	deleted   []string
}

func (f *fakeTransportistas) List(context.Context) ([]store.TransportistaDetail, error) {
	return nil, nil
}

func (f *fakeTransportistas) Get(_ context.Context, id string) (store.Transportista, error) {
	return store.Transportista{ID: id}, nil
}

func (f *fakeTransportistas) Insert(context.Context, store.Transportista) error { return nil }

func (f *fakeTransportistas) Update(context.Context, store.Transportista) error { return nil }

func (f *fakeTransportistas) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeCatalogs struct{}

func (fakeCatalogs) Regions(context.Context) ([]store.Region, error) {
	return []store.Region{{ID: 1, Nombre: "Region Metropolitana"}, {ID: 3, Nombre: "Biobio"}}, nil
}

func (fakeCatalogs) Ciudades(context.Context, int64) ([]store.Ciudad, error) {
	return []store.Ciudad{{ID: 5, Nombre: "Concepcion", RegionID: 3}}, nil
}

func (fakeCatalogs) Ciius(context.Context) ([]store.Ciiu, error) {
	return []store.Ciiu{{ID: 2, Codigo: "381100"}}, nil
}

type recordingCache struct {
	paths []string
}

func (r *recordingCache) Revalidate(_ context.Context, path string) error {
	r.paths = append(r.paths, path)
	return nil
}

func newActions(empresas *fakeEmpresas, transportistas *fakeTransportistas, cache *recordingCache) *actions.Actions {
	return actions.New(actions.Deps{
		Empresas:       empresas,
		Transportistas: transportistas,
		Catalogs:       fakeCatalogs{},
		Cache:          cache,
	}, actions.WithIDGenerator(func() string { return empresaID }))
}

func empresaValues() model.Values {
	return model.Values{
		"nombre":             "Reciclajes del Sur",
		"industria":          "Reciclaje",
		"ciiu":               "2",
		"rut":                "76123456",
		"representanteLegal": "Ana Perez",
		"email":              "contacto@sur.cl",
		"telefono":           "912345678",
		"direccion":          "Av. Uno 123",
		"region":             "3",
		"ciudad":             "5",
		"estado":             "activo",
	}
}

func TestFetchEmpresasNoRowsIsNil(t *testing.T) {
	a := newActions(&fakeEmpresas{}, &fakeTransportistas{}, &recordingCache{})
	if got := a.FetchEmpresas(context.Background()); got.Empresas != nil {
		t.Fatalf("expected nil empresas, got %#v", got.Empresas)
	}

	failing := newActions(&fakeEmpresas{listErr: errors.New("down")}, &fakeTransportistas{}, &recordingCache{})
	if got := failing.FetchEmpresas(context.Background()); got.Empresas != nil {
		t.Fatalf("expected nil empresas on error, got %#v", got.Empresas)
	}
}

func TestListEmpresasReportsStoreError(t *testing.T) {
	down := errors.New("down")
	failing := newActions(&fakeEmpresas{listErr: down}, &fakeTransportistas{}, &recordingCache{})
	rows, err := failing.ListEmpresas(context.Background())
	if !errors.Is(err, down) {
		t.Fatalf("expected store error, got %v", err)
	}
	if rows != nil {
		t.Fatalf("expected no rows on error, got %#v", rows)
	}

	empty := newActions(&fakeEmpresas{}, &fakeTransportistas{}, &recordingCache{})
	rows, err = empty.ListEmpresas(context.Background())
	if err != nil || rows != nil {
		t.Fatalf("expected nil rows without error, got %#v, %v", rows, err)
	}
}

func TestCreateEmpresaDecodesAndRevalidates(t *testing.T) {
	empresas := &fakeEmpresas{}
	cache := &recordingCache{}
	a := newActions(empresas, &fakeTransportistas{}, cache)

	res := a.CreateEmpresa(context.Background(), empresaValues())
	if !res.OK() {
		t.Fatalf("expected success, got %q", *res.Error)
	}

	want := []store.Empresa{{
		ID: empresaID, Rut: "76123456", Nombre: "Reciclajes del Sur", Industria: "Reciclaje", CiiuID: 2,
		RepresentanteLegal: "Ana Perez", Email: "contacto@sur.cl", Telefono: "912345678",
		Ubicacion: "Av. Uno 123", RegionID: 3, CiudadID: 5, Estado: true,
	}}
	if diff := cmp.Diff(want, empresas.inserted); diff != "" {
		t.Fatalf("inserted mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{actions.EmpresasPath}, cache.paths); diff != "" {
		t.Fatalf("revalidated mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateEmpresaStoreErrorSkipsRevalidation(t *testing.T) {
	empresas := &fakeEmpresas{writeErr: store.FromDBError(errors.New("connection reset"))}
	cache := &recordingCache{}
	a := newActions(empresas, &fakeTransportistas{}, cache)

	res := a.UpdateEmpresa(context.Background(), empresaID, empresaValues())
	if res.OK() {
		t.Fatalf("expected failure")
	}
	if *res.Error != store.MessageUnknown {
		t.Fatalf("unexpected message %q", *res.Error)
	}
	if len(cache.paths) != 0 {
		t.Fatalf("failed writes must not revalidate, got %v", cache.paths)
	}
}

func TestUpdateEmpresaInactivo(t *testing.T) {
	empresas := &fakeEmpresas{}
	a := newActions(empresas, &fakeTransportistas{}, &recordingCache{})

	values := empresaValues()
	values["estado"] = "inactivo"
	if res := a.UpdateEmpresa(context.Background(), empresaID, values); !res.OK() {
		t.Fatalf("expected success, got %q", *res.Error)
	}
	if len(empresas.updated) != 1 || empresas.updated[0].Estado {
		t.Fatalf("expected estado false, got %+v", empresas.updated)
	}
}

func TestUpdateEmpresaRejectsBadInput(t *testing.T) {
	empresas := &fakeEmpresas{}
	a := newActions(empresas, &fakeTransportistas{}, &recordingCache{})

	values := empresaValues()
	values["region"] = "not-a-number"
	res := a.UpdateEmpresa(context.Background(), empresaID, values)
	if res.OK() || *res.Error != actions.MessageInvalidInput {
		t.Fatalf("expected invalid input, got %+v", res)
	}
	if len(empresas.updated) != 0 {
		t.Fatalf("store must not be called")
	}

	if res := a.UpdateEmpresa(context.Background(), "42", empresaValues()); res.OK() {
		t.Fatalf("expected failure for malformed id")
	}
}

func TestDeleteEmpresaRevalidatesOnlyOnSuccess(t *testing.T) {
	cache := &recordingCache{}
	ok := newActions(&fakeEmpresas{}, &fakeTransportistas{}, cache)
	if got := ok.DeleteEmpresaByID(context.Background(), empresaID); !got.OK {
		t.Fatalf("expected ok")
	}
	if diff := cmp.Diff([]string{actions.EmpresasPath}, cache.paths); diff != "" {
		t.Fatalf("revalidated mismatch (-want +got):\n%s", diff)
	}

	failCache := &recordingCache{}
	failing := newActions(&fakeEmpresas{deleteErr: errors.New("fk")}, &fakeTransportistas{}, failCache)
	if got := failing.DeleteEmpresaByID(context.Background(), empresaID); got.OK {
		t.Fatalf("expected not ok")
	}
	if len(failCache.paths) != 0 {
		t.Fatalf("expected no revalidation, got %v", failCache.paths)
	}
}

func TestDeleteTransportista(t *testing.T) {
	cache := &recordingCache{}
	transportistas := &fakeTransportistas{}
	a := newActions(&fakeEmpresas{}, transportistas, cache)

	if got := a.DeleteTransportistaByID(context.Background(), empresaID); !got.OK {
		t.Fatalf("expected ok")
	}
	if diff := cmp.Diff([]string{actions.TransportistasPath}, cache.paths); diff != "" {
		t.Fatalf("revalidated mismatch (-want +got):\n%s", diff)
	}

	transportistas.deleteErr = errors.New("boom")
	if got := a.DeleteTransportistaByID(context.Background(), empresaID); got.OK {
		t.Fatalf("expected not ok")
	}
	if len(cache.paths) != 1 {
		t.Fatalf("failed delete must not revalidate, got %v", cache.paths)
	}
}

func TestCatalogOptions(t *testing.T) {
	a := newActions(&fakeEmpresas{}, &fakeTransportistas{}, &recordingCache{})

	regions, err := a.RegionOptions(context.Background())
	if err != nil {
		t.Fatalf("regions: %v", err)
	}
	want := model.OptionList{{Value: "1", Label: "Region Metropolitana"}, {Value: "3", Label: "Biobio"}}
	if diff := cmp.Diff(want, regions); diff != "" {
		t.Fatalf("regions mismatch (-want +got):\n%s", diff)
	}

	ciius, err := a.CiiuOptions(context.Background())
	if err != nil {
		t.Fatalf("ciius: %v", err)
	}
	if diff := cmp.Diff(model.OptionList{{Value: "2", Label: "381100"}}, ciius); diff != "" {
		t.Fatalf("ciius mismatch (-want +got):\n%s", diff)
	}
}
