// Package validation checks schema documents before they are served and
// decoded submissions before they are stored.
package validation
