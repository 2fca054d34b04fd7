// Package errors provides foundational, type-safe error primitives used across sitesmith.
//
// This package contains classified error types and helpers for robust error handling,
// including a fluent builder API for constructing ClassifiedError values with context.
//
// Key features:
//   - ErrorCategory: Broad error classification (config, parse, render, filesystem, build)
//   - ErrorSeverity: Impact level (fatal, error, warning, info)
//   - ClassifiedError: Structured error with category, severity, and context
//   - ErrorBuilder: Fluent API for creating classified errors
//   - CLI adapter for exit codes and error presentation
//
// A build is a local, deterministic transform, so there is no retry classification:
// running the same failing step again cannot change its outcome.
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryRender, "render post template").
//		WithContext("site", site).
//		WithContext("file", name).
//		Build()
package errors
