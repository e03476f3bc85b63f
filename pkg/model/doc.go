// Package model defines the typed form model consumed by renderers. Builders
// live in internal/model and return the types re-exported here.
//
// Controller options found on a schema node (ShowDisableCheckBox,
// disabledValue, step, impliedDecimalPoints) are folded onto the Metadata*
// keys whatever their spelling or location: top level, json-editor "options",
// or the x-formgen namespace. Minimum and maximum become "min"/"max"
// validation rules with an "exclusive" flag. Every field carries a dotted Path
// rooted at "root" that editors use for input names and that validation
// issues refer to.
package model
