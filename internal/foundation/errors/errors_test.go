package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryLayout, "head fragment is empty").
			WithSeverity(SeverityFatal).
			WithContext("path", "layout/head.html").
			Build()

		if err.Category() != CategoryLayout {
			t.Errorf("expected category %s, got %s", CategoryLayout, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "head fragment is empty" {
			t.Errorf("unexpected message %q", err.Message())
		}
		path, exists := err.Context().GetString("path")
		if !exists || path != "layout/head.html" {
			t.Errorf("expected context path=layout/head.html, got %v", path)
		}
	})

	t.Run("Wrapped cause survives fmt wrapping", func(t *testing.T) {
		cause := errors.New("permission denied")
		err := WrapError(cause, CategoryFileSystem, "reset output").Fatal().Build()
		wrapped := fmt.Errorf("build: %w", err)

		if !errors.Is(wrapped, cause) {
			t.Error("expected chain to contain the cause")
		}
		if !HasCategory(wrapped, CategoryFileSystem) {
			t.Error("expected filesystem category through fmt wrapping")
		}
		if !IsFatal(wrapped) {
			t.Error("expected fatal severity through fmt wrapping")
		}
	})

	t.Run("Is compares category and message", func(t *testing.T) {
		a := LayoutError("missing").Build()
		b := LayoutError("missing").WithContext("x", 1).Build()
		c := BuildError("missing").Build()
		if !errors.Is(a, b) {
			t.Error("expected equal category/message to match")
		}
		if errors.Is(a, c) {
			t.Error("expected different category not to match")
		}
	})
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name     string
		builder  *ErrorBuilder
		category ErrorCategory
		severity ErrorSeverity
	}{
		{"ConfigError", ConfigError("test"), CategoryConfig, SeverityFatal},
		{"ValidationError", ValidationError("test"), CategoryValidation, SeverityFatal},
		{"BuildError", BuildError("test"), CategoryBuild, SeverityFatal},
		{"LayoutError", LayoutError("test"), CategoryLayout, SeverityFatal},
		{"FileSystemError", FileSystemError("test"), CategoryFileSystem, SeverityError},
		{"WatchError", WatchError("test"), CategoryWatch, SeverityError},
		{"ServerError", ServerError("test"), CategoryServer, SeverityError},
		{"InternalError", InternalError("test"), CategoryInternal, SeverityFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.builder.Build()
			if err.Category() != tt.category {
				t.Errorf("expected category %s, got %s", tt.category, err.Category())
			}
			if err.Severity() != tt.severity {
				t.Errorf("expected severity %s, got %s", tt.severity, err.Severity())
			}
		})
	}
}

func TestErrorContextMerge(t *testing.T) {
	ctx1 := ErrorContext{}.Set("key1", "value1").Set("shared", "original")
	ctx2 := ErrorContext{}.Set("key2", "value2").Set("shared", "overridden")

	merged := ctx1.Merge(ctx2)

	if v, _ := merged.GetString("key1"); v != "value1" {
		t.Errorf("expected key1=value1, got %s", v)
	}
	if v, _ := merged.GetString("key2"); v != "value2" {
		t.Errorf("expected key2=value2, got %s", v)
	}
	if v, _ := merged.GetString("shared"); v != "overridden" {
		t.Errorf("expected shared=overridden, got %s", v)
	}
}
