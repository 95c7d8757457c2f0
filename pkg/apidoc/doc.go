// Package apidoc builds an OpenAPI 3 description of the JSON endpoints that
// accept form submissions. Request bodies are derived from the same
// model.FormSpec the HTML forms render, so rule changes show up in both.
package apidoc
