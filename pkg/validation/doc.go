// Package validation evaluates declarative field rules against submitted form
// values and reports per-field messages.
package validation
