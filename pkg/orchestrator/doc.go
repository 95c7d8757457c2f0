// Package orchestrator assembles entry forms: it looks up a form definition,
// binds catalog options, runs decorators and hands the result to tableform
// with the configured renderer.
package orchestrator
