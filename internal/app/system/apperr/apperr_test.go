package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("title is required"), KindValidation},
		{"not found", NotFound("group"), KindNotFound},
		{"authorization", Authorization("not the group owner"), KindAuthorization},
		{"conflict", Conflict("group full"), KindConflict},
		{"plain error", errors.New("mongo: connection reset"), KindInternal},
		{"nil", nil, KindInternal},
		{"wrapped", fmt.Errorf("decide: %w", Conflict("group full")), KindConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{Conflict("already applied"), http.StatusBadRequest},
		{NotFound("application"), http.StatusNotFound},
		{Authorization("not permitted"), http.StatusForbidden},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := StatusCode(tt.err); got != tt.want {
			t.Errorf("StatusCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestNotFoundMessage(t *testing.T) {
	if got := NotFound("group").Error(); got != "group not found" {
		t.Errorf("NotFound message: got %q", got)
	}
}
