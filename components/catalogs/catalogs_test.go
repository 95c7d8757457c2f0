package catalogs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/syms-residuos/backoffice/pkg/formspec"
	"github.com/syms-residuos/backoffice/pkg/model"
)

var regions = model.OptionList{
	{Value: "1", Label: "Region Metropolitana"},
	{Value: "2", Label: "Valparaiso"},
	{Value: "3", Label: "Biobio"},
}

type handlerResponse struct {
	Data model.OptionList `json:"data"`
}

func serve(t *testing.T, h http.Handler, method, target string) (*httptest.ResponseRecorder, handlerResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	var payload handlerResponse
	if method == http.MethodGet && rec.Code == http.StatusOK {
		if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return rec, payload
}

func TestSearchPrefersLabelPrefix(t *testing.T) {
	got := Search(regions, "va", 0, NewOptions())
	want := model.OptionList{{Value: "2", Label: "Valparaiso"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("search mismatch (-want +got):\n%s", diff)
	}

	got = Search(regions, "bio", 0, NewOptions())
	if len(got) != 1 || got[0].Value != "3" {
		t.Fatalf("expected Biobio, got %v", got)
	}

	got = Search(regions, "o", 0, NewOptions())
	if len(got) != 3 {
		t.Fatalf("expected substring matches, got %v", got)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	if got := Search(regions, "  ", 2, NewOptions()); len(got) != 2 {
		t.Fatalf("expected top 2, got %v", got)
	}
	if got := Search(regions, "", 0, NewOptions(WithEmptySearchMode(EmptySearchNone))); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestHandler(t *testing.T) {
	c := New(formspec.Sources{"region": formspec.Static(regions)}, WithMaxLimit(2))
	h, err := c.Handler("region")
	if err != nil {
		t.Fatalf("handler: %v", err)
	}

	rec, payload := serve(t, h, http.MethodGet, "/api/catalogs/region?limit=10")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if len(payload.Data) != 2 {
		t.Fatalf("expected limit clamped to 2, got %d", len(payload.Data))
	}

	rec, _ = serve(t, h, http.MethodPost, "/api/catalogs/region")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}

	rec, _ = serve(t, h, http.MethodHead, "/api/catalogs/region")
	if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Fatalf("expected empty 200 for HEAD, got %d %q", rec.Code, rec.Body.String())
	}

	if _, err := c.Handler("missing"); err == nil {
		t.Fatalf("expected unknown catalog error")
	}
}

func TestHandlerSourceFailure(t *testing.T) {
	failing := func(context.Context) (model.OptionList, error) { return nil, errors.New("db down") }
	h := HandlerWithOptions(Options{Source: failing})

	rec, _ := serve(t, h, http.MethodGet, "/api/catalogs/ciiu")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestHandlerGuard(t *testing.T) {
	guard := func(*http.Request) error { return StatusError{Code: http.StatusUnauthorized} }
	c := New(formspec.Sources{"region": formspec.Static(regions)}, WithGuard(guard))
	h, _ := c.Handler("region")

	rec, _ := serve(t, h, http.MethodGet, "/api/catalogs/region")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRoutes(t *testing.T) {
	c := New(formspec.Sources{"region": formspec.Static(regions), "ciiu": formspec.Static(nil)})
	routes := c.Routes("/api/catalogs/")

	var paths []string
	for path := range routes {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	if diff := cmp.Diff([]string{"/api/catalogs/ciiu", "/api/catalogs/region"}, paths); diff != "" {
		t.Fatalf("routes mismatch (-want +got):\n%s", diff)
	}
	if got := MountPath("", "region"); got != "/region" {
		t.Fatalf("unexpected mount path %q", got)
	}
}
