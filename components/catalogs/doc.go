// Package catalogs serves catalog option lists (regions, cities, CIIU codes)
// as JSON for select inputs that search on the client.
//
// The handler responds to GET and HEAD requests and supports query and limit
// parameters to filter results. Options come from a formspec.OptionSource, so
// the same loader feeds server-rendered selects and this endpoint.
package catalogs
