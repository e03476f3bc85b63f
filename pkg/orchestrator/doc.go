// Package orchestrator wires the schema pipeline end to end: load a document,
// normalise it through a format adapter, build the form model, decorate it
// with widgets and UI overlays, then render it or decode a submission back
// into raw register values.
package orchestrator
