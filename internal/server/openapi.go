package server

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"

	"github.com/syms-residuos/backoffice/internal/logging"
	"github.com/syms-residuos/backoffice/pkg/apidoc"
	"github.com/syms-residuos/backoffice/pkg/orchestrator"
)

// APIVersion is reported in the OpenAPI document.
const APIVersion = "1.0.0"

// OpenAPI describes the JSON routes. Request bodies come from the form
// definitions, so the document follows any form override.
func OpenAPI(ctx context.Context, o *orchestrator.Orchestrator) (*openapi3.T, error) {
	b := apidoc.NewBuilder(Brand+" API", APIVersion)

	names := make([]string, 0, len(rowTypes))
	for name := range rowTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ref, err := openapi3gen.NewSchemaRefForValue(rowTypes[name], nil)
		if err != nil {
			return nil, fmt.Errorf("server: schema %s: %w", name, err)
		}
		b.AddSchema(name, ref.Value)
	}

	for _, e := range entities(nil) {
		spec, ok := o.Definition(e.formID)
		if !ok {
			return nil, fmt.Errorf("server: form %q not loaded", e.formID)
		}
		input := e.schema + "Input"
		b.AddForm(input, spec)

		item := e.apiPath + "/{id}"
		b.AddEndpoint(
			apidoc.Endpoint{Method: http.MethodGet, Path: e.apiPath, OperationID: "list" + e.title, Tag: e.template, Summary: "List " + e.template, Response: e.schema + "Detail", List: true},
			apidoc.Endpoint{Method: http.MethodPost, Path: e.apiPath, OperationID: "create" + e.schema, Tag: e.template, Body: input, Response: apidoc.ActionResultName},
			apidoc.Endpoint{Method: http.MethodGet, Path: item, OperationID: "get" + e.schema, Tag: e.template, Response: e.schema},
			apidoc.Endpoint{Method: http.MethodPut, Path: item, OperationID: "update" + e.schema, Tag: e.template, Body: input, Response: apidoc.ActionResultName},
			apidoc.Endpoint{Method: http.MethodDelete, Path: item, OperationID: "delete" + e.schema + "ById", Tag: e.template, Response: apidoc.DeleteResultName},
		)
	}
	return b.Build(ctx)
}

func (s *Server) openAPI(w http.ResponseWriter, r *http.Request) {
	doc, err := OpenAPI(r.Context(), s.forms)
	if err != nil {
		s.logger.Error("build openapi document failed", logging.Error(err))
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "openapi document unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, doc)
}
