// Package template defines the template engine contract used by the HTML
// renderer and the page handlers. The gotemplate subpackage provides the
// pongo2-backed implementation.
package template
