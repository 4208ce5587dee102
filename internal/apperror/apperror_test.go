package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindStatus(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{Validation("v"), http.StatusBadRequest},
		{BadRequest("b"), http.StatusBadRequest},
		{Conflict("c"), http.StatusBadRequest},
		{Unauthenticated("u"), http.StatusUnauthorized},
		{StaleCredential("s"), http.StatusForbidden},
		{Forbidden("f"), http.StatusForbidden},
		{NotFound("n"), http.StatusNotFound},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := tc.err.Kind.Status(); got != tc.want {
			t.Errorf("%s: status %d, want %d", tc.err.Kind, got, tc.want)
		}
	}
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause)
	if err.Message != "Internal Server Error" {
		t.Errorf("message leaked cause: %q", err.Message)
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to unwrap")
	}
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", NotFound("Card not found"))
	if KindOf(wrapped) != KindNotFound {
		t.Errorf("expected not_found, got %s", KindOf(wrapped))
	}
	if KindOf(errors.New("plain")) != KindInternal {
		t.Error("expected plain errors to be internal")
	}
}
