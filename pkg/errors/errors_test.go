// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/heimweh/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_found_error",
			code:    errors.ErrNotFound,
			message: "castle not found",
			wantStr: "[NOT_FOUND] castle not found",
		},
		{
			name:    "missing_home_error",
			code:    errors.ErrMissingHomeSubtree,
			message: "no 'home' dir found in castle",
			wantStr: "[MISSING_HOME_SUBTREE] no 'home' dir found in castle",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrInvalidInput, "invalid castle name: %q", "..")
	if err.Message != `invalid castle name: ".."` {
		t.Errorf("Newf() message = %q", err.Message)
	}
}

func TestWrap(t *testing.T) {
	base := stderrors.New("object not found")

	t.Run("wraps_error", func(t *testing.T) {
		err := errors.Wrap(base, errors.ErrTreeIO, "failed to read tree")
		if err.Error() != "[TREE_IO] failed to read tree: object not found" {
			t.Errorf("Error() = %q", err.Error())
		}
		if !stderrors.Is(err, base) {
			t.Error("wrapped error should be reachable through errors.Is")
		}
	})

	t.Run("nil_error_returns_nil", func(t *testing.T) {
		if err := errors.Wrap(nil, errors.ErrTreeIO, "nothing"); err != nil {
			t.Errorf("Wrap(nil) = %v, want nil", err)
		}
		if err := errors.Wrapf(nil, errors.ErrTreeIO, "nothing %d", 1); err != nil {
			t.Errorf("Wrapf(nil) = %v, want nil", err)
		}
	})
}

func TestIs(t *testing.T) {
	err := errors.Wrap(stderrors.New("boom"), errors.ErrClone, "clone failed")

	if !stderrors.Is(err, errors.New(errors.ErrClone, "")) {
		t.Error("errors with the same code should match")
	}
	if stderrors.Is(err, errors.New(errors.ErrNotFound, "")) {
		t.Error("errors with different codes should not match")
	}
}

func TestIsErrorCode(t *testing.T) {
	inner := errors.New(errors.ErrMissingHomeSubtree, "no home")
	outer := errors.Wrap(inner, errors.ErrRepositoryOpen, "listing failed")
	plain := fmt.Errorf("context: %w", outer)

	tests := []struct {
		name string
		err  error
		code errors.ErrorCode
		want bool
	}{
		{"outer_code", outer, errors.ErrRepositoryOpen, true},
		{"inner_code", outer, errors.ErrMissingHomeSubtree, true},
		{"through_fmt_wrap", plain, errors.ErrMissingHomeSubtree, true},
		{"absent_code", outer, errors.ErrClone, false},
		{"plain_error", stderrors.New("x"), errors.ErrClone, false},
		{"nil_error", nil, errors.ErrClone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.want {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetErrorCodeAndDetails(t *testing.T) {
	err := errors.New(errors.ErrContainmentViolation, "escapes castle").
		WithDetail("path", ".vim")

	if got := errors.GetErrorCode(err); got != errors.ErrContainmentViolation {
		t.Errorf("GetErrorCode() = %v", got)
	}
	if got := errors.GetErrorCode(stderrors.New("x")); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode(plain) = %v, want UNKNOWN", got)
	}

	details := errors.GetErrorDetails(err)
	if details["path"] != ".vim" {
		t.Errorf("details[path] = %v", details["path"])
	}
	if errors.GetErrorDetails(stderrors.New("x")) != nil {
		t.Error("plain errors carry no details")
	}
}
