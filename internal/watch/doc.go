// Package watch turns filesystem change notifications into rebuilds.
//
// Events pass an ordered filter chain and a debouncer before the configured
// BuildRunner is invoked. Everything runs on a single loop goroutine, so two
// builds never overlap.
package watch
