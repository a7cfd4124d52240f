//go:build unit
// +build unit

package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{"wrapped not found", fmt.Errorf("lead with ID 1 not found: %w", ErrNotFound), ErrNotFound},
		{"double wrapped forbidden", fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", ErrForbidden)), ErrForbidden},
		{"conflict", ErrConflict, ErrConflict},
		{"plain error", errors.New("boom"), nil},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Kind(tt.err))
		})
	}
}
