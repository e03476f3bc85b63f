package orchestrator

import (
	"context"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formgen-ssi/pkg/editors"
	"github.com/goliatone/go-formgen-ssi/pkg/model"
	"github.com/goliatone/go-formgen-ssi/pkg/render"
	"github.com/goliatone/go-formgen-ssi/pkg/validation"
)

// DecodeRequest pairs a form request with the submitted inputs.
type DecodeRequest struct {
	Request
	Form url.Values
}

// Decode builds the form named by req and decodes the submission into raw
// register values.
func (o *Orchestrator) Decode(ctx context.Context, req DecodeRequest) (render.Submission, error) {
	form, err := o.Form(ctx, req.Request)
	if err != nil {
		return render.Submission{}, err
	}
	submission := DecodeForm(form, req.Form)
	o.logger.WithFields(logrus.Fields{
		"form":   form.ID,
		"valid":  submission.Valid(),
		"errors": len(submission.Errors),
	}).Debug("submission decoded")
	return submission, nil
}

// DecodeForm runs every field's editor over values. Read-only fields and
// fields without submitted inputs are left out of the result; the values
// are then checked against the field bounds.
func DecodeForm(form model.FormModel, values url.Values) render.Submission {
	decoded := make(map[string]any)
	form.Walk(func(field *model.Field) {
		if field.ReadOnly || field.Type == model.FieldTypeObject {
			return
		}
		value, ok := editors.For(*field).Decode(field.Path, values)
		if !ok {
			return
		}
		render.SetValue(decoded, field.Path, value)
	})

	issues := validation.ValidateSubmission(form, decoded)
	return render.Submission{
		Values: decoded,
		Errors: validation.Errors(issues),
	}
}
