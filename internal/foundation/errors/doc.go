// Package errors provides the classified error primitives used across pagewright.
//
// A ClassifiedError carries a category, a severity and free-form context so that
// the build pipeline can tell integrity failures (missing head/foot fragments,
// a failed output reset) apart from best-effort failures, and so that the CLI
// can pick an exit code without string matching.
//
// Example usage:
//
//	err := errors.LayoutError("head fragment is empty").
//		WithContext("path", headPath).
//		Build()
package errors
