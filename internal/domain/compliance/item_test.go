//go:build unit
// +build unit

package compliance

import (
	"testing"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestItemStatusAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	verifier := uuid.NewString()
	in := func(days int) *time.Time {
		at := now.AddDate(0, 0, days)
		return &at
	}

	tests := []struct {
		name       string
		expiresAt  *time.Time
		verifiedBy *string
		expected   Status
	}{
		{"unverified", in(90), nil, StatusPendingReview},
		{"unverified and expired", in(-1), nil, StatusExpired},
		{"current", in(90), &verifier, StatusCurrent},
		{"no expiry", nil, &verifier, StatusCurrent},
		{"expiring soon", in(10), &verifier, StatusExpiringSoon},
		{"expires now", in(0), &verifier, StatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &Item{ExpiresAt: tt.expiresAt, VerifiedBy: tt.verifiedBy}
			assert.Equal(t, tt.expected, item.StatusAt(now, 30))
		})
	}
}

func TestItemValidate(t *testing.T) {
	item := &Item{
		ID:        uuid.NewString(),
		OwnerType: OwnerCaregiver,
		OwnerID:   uuid.NewString(),
		Type:      TypeLicense,
		Title:     "CNA license",
		Status:    StatusPendingReview,
	}
	assert.NoError(t, item.Validate())

	item.OwnerType = "FAMILY"
	assert.ErrorIs(t, item.Validate(), apperr.ErrValidation)
}
