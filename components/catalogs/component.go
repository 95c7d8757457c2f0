package catalogs

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/syms-residuos/backoffice/pkg/formspec"
)

// Component serves a set of named catalogs under one base path, one route per
// catalog: <base>/<name>.
type Component struct {
	opts    Options
	sources formspec.Sources
}

// New constructs a component over sources. fns apply to every catalog.
func New(sources formspec.Sources, fns ...OptionFn) *Component {
	return &Component{opts: NewOptions(fns...), sources: sources}
}

// Names lists the served catalogs in sorted order.
func (c *Component) Names() []string {
	names := make([]string, 0, len(c.sources))
	for name := range c.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Handler returns the handler for one catalog.
func (c *Component) Handler(name string) (http.Handler, error) {
	source, ok := c.sources[name]
	if !ok || source == nil {
		return nil, fmt.Errorf("catalogs: unknown catalog %q", name)
	}
	opts := c.opts
	opts.Name = name
	opts.Source = source
	return HandlerWithOptions(opts), nil
}

// Routes returns every catalog handler keyed by its mount path under basePath.
func (c *Component) Routes(basePath string) map[string]http.Handler {
	routes := make(map[string]http.Handler, len(c.sources))
	for _, name := range c.Names() {
		handler, err := c.Handler(name)
		if err != nil {
			continue
		}
		routes[MountPath(basePath, name)] = handler
	}
	return routes
}

// MountPath joins basePath and a catalog name into a route.
func MountPath(basePath, name string) string {
	basePath = strings.TrimSpace(basePath)
	name = strings.Trim(strings.TrimSpace(name), "/")

	if basePath == "" || basePath == "/" {
		return "/" + name
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return strings.TrimRight(basePath, "/") + "/" + name
}
