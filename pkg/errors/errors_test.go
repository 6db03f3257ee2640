package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormat(t *testing.T) {
	err := New(ErrCodeInvalidInput, "graph has no %s attribute", "weight")
	want := "INVALID_INPUT: graph has no weight attribute"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("file truncated")
	err := Wrap(ErrCodeInvalidMatrix, cause, "read matrix")

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if !strings.Contains(err.Error(), "file truncated") {
		t.Errorf("Error() = %q, want cause included", err.Error())
	}
}

func TestIsMatchesCode(t *testing.T) {
	err := New(ErrCodeInvalidMethod, "no such method")
	wrapped := fmt.Errorf("analyze: %w", err)

	if !Is(wrapped, ErrCodeInvalidMethod) {
		t.Error("Is(wrapped, ErrCodeInvalidMethod) = false, want true")
	}
	if Is(wrapped, ErrCodeInvalidInput) {
		t.Error("Is(wrapped, ErrCodeInvalidInput) = true, want false")
	}
	if Is(stderrors.New("plain"), ErrCodeInvalidMethod) {
		t.Error("Is(plain, code) = true, want false")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeNotFound, "x")); got != ErrCodeNotFound {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeNotFound)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidArgument, "unknown community method")
	if got := UserMessage(err); got != "unknown community method" {
		t.Errorf("UserMessage = %q", got)
	}
	plain := stderrors.New("boom")
	if got := UserMessage(plain); got != "boom" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestWarningf(t *testing.T) {
	w := Warningf("negative weights: skipping %s", "weighted diameter")
	if w.Code != ErrCodeDegraded {
		t.Errorf("Code = %q, want DEGRADED", w.Code)
	}
	if !strings.Contains(w.String(), "weighted diameter") {
		t.Errorf("String() = %q", w.String())
	}
}
