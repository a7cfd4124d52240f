//go:build unit
// +build unit

package validators

import (
	"errors"
	"testing"

	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rated struct {
	Title string          `validate:"notblank"`
	Rate  decimal.Decimal `validate:"decimal_gt0"`
	Bonus decimal.Decimal `validate:"decimal_gte0"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		input   rated
		wantErr string
	}{
		{"valid", rated{Title: "Night shift", Rate: decimal.NewFromInt(25), Bonus: decimal.Zero}, ""},
		{"blank title", rated{Title: "   ", Rate: decimal.NewFromInt(25)}, "Field: Title, Tag: notblank"},
		{"zero rate", rated{Title: "x", Rate: decimal.Zero}, "Field: Rate, Tag: decimal_gt0"},
		{"negative bonus", rated{Title: "x", Rate: decimal.NewFromInt(1), Bonus: decimal.NewFromInt(-1)}, "Field: Bonus, Tag: decimal_gte0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperr.ErrValidation))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
