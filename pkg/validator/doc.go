// Package validator builds declarative validation rules for run settings.
//
// Each helper returns a Rule that pairs a check with a field-level error.
// Apply evaluates rules and aggregates failures into ValidationErrors, which
// implements error and can be inspected per field:
//
//	err := validator.Apply(
//		validator.Required("input", s.Input),
//		validator.Min("workers", s.Workers, 1),
//		validator.OneOf("log_format", s.LogFormat, []string{"text", "json"}),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs.Has("workers") {
//		// ...
//	}
package validator
