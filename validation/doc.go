// Package validation provides input validation utilities.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Struct tag validation is
// recommended for request types.
//
// # Struct Tag Validation
//
//	type Request struct {
//	    Workflow  json.RawMessage `validate:"required"`
//	    Positive  string          `validate:"required"`
//	    RefImages []string        `validate:"max=3"`
//	}
//	err := validation.Validate(req)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("positive", req.Positive)
//	v.Max("reference_images", len(req.ReferenceImages), 3)
//	err := v.Validate()
package validation
