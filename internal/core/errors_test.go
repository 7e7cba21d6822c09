package core

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorTaxonomy_Distinguishable(t *testing.T) {
	var (
		fetch  = &FetchError{Op: "list", Status: 500}
		save   = &SaveError{Op: "create", Status: 400}
		remove = &DeleteError{Status: 404}
	)

	wrapped := fmt.Errorf("submit: %w", save)

	var se *SaveError
	if !errors.As(wrapped, &se) {
		t.Fatal("SaveError not recoverable through errors.As")
	}
	var fe *FetchError
	if errors.As(wrapped, &fe) {
		t.Error("SaveError must not match FetchError")
	}
	var de *DeleteError
	if errors.As(wrapped, &de) {
		t.Error("SaveError must not match DeleteError")
	}

	for _, err := range []error{fetch, save, remove} {
		if err.Error() == "" {
			t.Errorf("%T has empty message", err)
		}
	}
}

func TestOpError_Messages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "status", err: &FetchError{Op: "list", Status: 503}, want: "unexpected status 503"},
		{name: "network", err: &FetchError{Op: "get", Err: errors.New("connection refused")}, want: "connection refused"},
		{name: "bare", err: &DeleteError{}, want: "delete failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); !strings.Contains(got, tt.want) {
				t.Errorf("Error() = %q, want substring %q", got, tt.want)
			}
		})
	}
}
