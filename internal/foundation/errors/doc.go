// Package errors provides foundational, type-safe error primitives used across sitecfg.
//
// Key features:
//   - ErrorCategory: broad classification (config, validation, links, output, ...)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - RetryStrategy: retry behavior
//   - ClassifiedError: structured error with category, severity and context
//   - ErrorBuilder: fluent API for creating classified errors
//   - HTTP and CLI adapters for error presentation
//
// Example usage:
//
//	err := errors.ValidationError("baseUrl must start with /").
//		WithContext("field", "baseUrl").
//		WithContext("value", site.BaseURL).
//		Build()
package errors
