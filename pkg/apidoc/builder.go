package apidoc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/syms-residuos/backoffice/pkg/model"
)

// Component names registered by every Builder.
const (
	ActionResultName = "ActionResult"
	DeleteResultName = "DeleteResult"
)

// Endpoint describes one JSON route.
type Endpoint struct {
	Method      string
	Path        string
	OperationID string
	Summary     string
	Tag         string
	// Body names the component schema used as request body. Empty means no body.
	Body string
	// Response names the component schema returned with 200.
	Response string
	// List marks Response as an array of the named schema.
	List bool
}

// Builder accumulates components and endpoints before producing a document.
type Builder struct {
	title     string
	version   string
	schemas   map[string]*openapi3.Schema
	endpoints []Endpoint
}

// NewBuilder returns a builder with the shared result schemas registered.
func NewBuilder(title, version string) *Builder {
	b := &Builder{
		title:   title,
		version: version,
		schemas: make(map[string]*openapi3.Schema),
	}
	b.AddSchema(ActionResultName, ActionResultSchema())
	b.AddSchema(DeleteResultName, DeleteResultSchema())
	return b
}

// AddSchema registers or replaces a named component schema.
func (b *Builder) AddSchema(name string, schema *openapi3.Schema) {
	if strings.TrimSpace(name) == "" || schema == nil {
		return
	}
	b.schemas[name] = schema
}

// AddForm registers the request schema for a form under name.
func (b *Builder) AddForm(name string, form model.FormSpec) {
	b.AddSchema(name, SchemaFromForm(form))
}

// AddEndpoint queues an endpoint for Build.
func (b *Builder) AddEndpoint(endpoints ...Endpoint) {
	b.endpoints = append(b.endpoints, endpoints...)
}

// Build assembles and validates the document.
func (b *Builder) Build(ctx context.Context) (*openapi3.T, error) {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   b.title,
			Version: b.version,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: make(openapi3.Schemas, len(b.schemas)),
		},
	}
	for name, schema := range b.schemas {
		doc.Components.Schemas[name] = openapi3.NewSchemaRef("", schema)
	}

	endpoints := append([]Endpoint(nil), b.endpoints...)
	sort.SliceStable(endpoints, func(i, j int) bool {
		if endpoints[i].Path == endpoints[j].Path {
			return endpoints[i].Method < endpoints[j].Method
		}
		return endpoints[i].Path < endpoints[j].Path
	})

	var errs []error
	for _, ep := range endpoints {
		op, err := b.operation(ep)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		item := doc.Paths.Value(ep.Path)
		if item == nil {
			item = &openapi3.PathItem{}
			doc.Paths.Set(ep.Path, item)
		}
		item.SetOperation(strings.ToUpper(ep.Method), op)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("apidoc: validate: %w", err)
	}
	return doc, nil
}

func (b *Builder) operation(ep Endpoint) (*openapi3.Operation, error) {
	method := strings.ToUpper(strings.TrimSpace(ep.Method))
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
	default:
		return nil, fmt.Errorf("apidoc: %s: unsupported method %q", ep.Path, ep.Method)
	}
	if !strings.HasPrefix(ep.Path, "/") {
		return nil, fmt.Errorf("apidoc: path %q must start with /", ep.Path)
	}

	op := openapi3.NewOperation()
	op.OperationID = ep.OperationID
	op.Summary = ep.Summary
	if ep.Tag != "" {
		op.Tags = []string{ep.Tag}
	}

	for _, name := range pathParams(ep.Path) {
		op.AddParameter(openapi3.NewPathParameter(name).WithSchema(openapi3.NewStringSchema()))
	}

	if ep.Body != "" {
		ref, err := b.ref(ep.Body)
		if err != nil {
			return nil, fmt.Errorf("apidoc: %s %s: %w", method, ep.Path, err)
		}
		body := openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(ref)
		op.RequestBody = &openapi3.RequestBodyRef{Value: body}
	}

	response := openapi3.NewResponse().WithDescription("OK")
	if ep.Response != "" {
		ref, err := b.ref(ep.Response)
		if err != nil {
			return nil, fmt.Errorf("apidoc: %s %s: %w", method, ep.Path, err)
		}
		if ep.List {
			list := openapi3.NewArraySchema()
			list.Items = ref
			ref = openapi3.NewSchemaRef("", list)
		}
		response.WithJSONSchemaRef(ref)
	}
	op.AddResponse(http.StatusOK, response)
	if ep.Body != "" {
		op.AddResponse(http.StatusBadRequest, openapi3.NewResponse().WithDescription("Invalid submission"))
	}
	return op, nil
}

func (b *Builder) ref(name string) (*openapi3.SchemaRef, error) {
	schema, ok := b.schemas[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", name)
	}
	return openapi3.NewSchemaRef("#/components/schemas/"+name, schema), nil
}

// pathParams extracts {name} segments, ignoring gorilla/mux regex suffixes.
func pathParams(path string) []string {
	var names []string
	for _, segment := range strings.Split(path, "/") {
		if !strings.HasPrefix(segment, "{") || !strings.HasSuffix(segment, "}") {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(segment, "{"), "}")
		if idx := strings.IndexByte(name, ':'); idx >= 0 {
			name = name[:idx]
		}
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}
