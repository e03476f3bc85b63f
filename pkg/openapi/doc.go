// Package openapi normalises OpenAPI 3 documents into the schema IR. Every
// operation with a request body becomes a form; controller options that
// OpenAPI has no keyword for travel under the x-formgen extension.
package openapi
