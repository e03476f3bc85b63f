// Package uischema loads UI overlays: JSON or YAML files keyed by form id
// that relabel fields, attach help text, force widgets and override
// controller options without touching the schema itself. The Decorator
// applies a loaded Store to built form models.
package uischema
