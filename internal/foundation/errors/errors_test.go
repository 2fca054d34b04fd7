package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "sitesmith.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "invalid configuration" {
			t.Errorf("expected message 'invalid configuration', got %s", err.Message())
		}

		file, exists := err.Context().GetString("file")
		if !exists || file != "sitesmith.yaml" {
			t.Errorf("expected context file=sitesmith.yaml, got %v", file)
		}
	})

	t.Run("Error detection through wrapping", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", ParseError("bad date").Build())

		if !IsClassified(err) {
			t.Error("expected error to be classified")
		}
		if !HasCategory(err, CategoryParse) {
			t.Error("expected error to have parse category")
		}
		if GetSeverity(err) != SeverityFatal {
			t.Error("expected parse error to be fatal")
		}
	})

	t.Run("Stable message", func(t *testing.T) {
		err := RenderError("execute template").
			WithContext("site", "blog").
			WithContext("file", "a.html").
			WithCause(errors.New("missing key")).
			Build()

		want := "[render:fatal] execute template (file=a.html, site=blog): missing key"
		if err.Error() != want {
			t.Errorf("expected %q, got %q", want, err.Error())
		}
	})
}

func TestErrorBuilder(t *testing.T) {
	t.Run("Wrapping", func(t *testing.T) {
		originalErr := errors.New("original error")
		err := WrapError(originalErr, CategoryFileSystem, "write failed").
			WithSeverity(SeverityWarning).
			WithContext("path", "/tmp/x").
			Build()

		if err.Severity() != SeverityWarning {
			t.Errorf("expected severity %s, got %s", SeverityWarning, err.Severity())
		}
		if !errors.Is(err, originalErr) {
			t.Error("expected error to wrap original error")
		}
	})

	t.Run("Convenience constructors", func(t *testing.T) {
		tests := []struct {
			name     string
			builder  *ErrorBuilder
			category ErrorCategory
		}{
			{"ConfigError", ConfigError("test"), CategoryConfig},
			{"ParseError", ParseError("test"), CategoryParse},
			{"RenderError", RenderError("test"), CategoryRender},
			{"FileSystemError", FileSystemError("test"), CategoryFileSystem},
			{"BuildError", BuildError("test"), CategoryBuild},
			{"InternalError", InternalError("test"), CategoryInternal},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.builder.Build()
				if err.Category() != tt.category {
					t.Errorf("expected category %s, got %s", tt.category, err.Category())
				}
				if !err.IsFatal() {
					t.Errorf("expected %s to be fatal", tt.name)
				}
			})
		}
	})
}

func TestClassifiedError_WithContextDoesNotMutate(t *testing.T) {
	base := BuildError("site failed").WithContext("site", "a").Build()
	derived := base.WithContext("file", "x.txt")

	if _, ok := base.Context().Get("file"); ok {
		t.Error("expected base context to be unchanged")
	}
	if v, _ := derived.Context().GetString("site"); v != "a" {
		t.Errorf("expected derived to keep site context, got %q", v)
	}
}

func TestErrorContext(t *testing.T) {
	ctx1 := make(ErrorContext)
	ctx1 = ctx1.Set("key1", "value1")
	ctx1 = ctx1.Set("shared", "original")

	ctx2 := make(ErrorContext)
	ctx2 = ctx2.Set("key2", "value2")
	ctx2 = ctx2.Set("shared", "overridden")

	merged := ctx1.Merge(ctx2)

	if v, _ := merged.GetString("key1"); v != "value1" {
		t.Errorf("expected key1=value1, got %s", v)
	}
	if v, _ := merged.GetString("shared"); v != "overridden" {
		t.Errorf("expected shared=overridden, got %s", v)
	}
	if _, ok := merged.Get("nonexistent"); ok {
		t.Error("expected nonexistent key to not exist")
	}
}
