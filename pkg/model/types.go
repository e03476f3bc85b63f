package model

import internalmodel "github.com/goliatone/go-formgen-ssi/internal/model"

type FieldType = internalmodel.FieldType

const (
	FieldTypeString  = internalmodel.FieldTypeString
	FieldTypeInteger = internalmodel.FieldTypeInteger
	FieldTypeNumber  = internalmodel.FieldTypeNumber
	FieldTypeBoolean = internalmodel.FieldTypeBoolean
	FieldTypeArray   = internalmodel.FieldTypeArray
	FieldTypeObject  = internalmodel.FieldTypeObject
)

// DefaultRootPath is the first segment of every field path.
const DefaultRootPath = internalmodel.DefaultRootPath

const (
	ValidationRuleMin = internalmodel.ValidationRuleMin
	ValidationRuleMax = internalmodel.ValidationRuleMax

	MetadataShowDisableCheckBox  = internalmodel.MetadataShowDisableCheckBox
	MetadataDisabledValue        = internalmodel.MetadataDisabledValue
	MetadataStep                 = internalmodel.MetadataStep
	MetadataImpliedDecimalPoints = internalmodel.MetadataImpliedDecimalPoints
	MetadataPropertyOrder        = internalmodel.MetadataPropertyOrder
)

type ValidationRule = internalmodel.ValidationRule
type Field = internalmodel.Field
type FormModel = internalmodel.FormModel
