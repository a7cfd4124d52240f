//go:build unit
// +build unit

package documents

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name        string
		size        int64
		contentType string
		wantErr     bool
	}{
		{"pdf", 1024, "application/pdf", false},
		{"png with params", 10, "image/png; charset=binary", false},
		{"exactly at limit", MaxFileSize, "text/plain", false},
		{"over limit", MaxFileSize + 1, "text/plain", true},
		{"empty", 0, "text/plain", true},
		{"executable", 10, "application/x-msdownload", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFile(tt.size, MaxFileSize, tt.contentType)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperr.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSecureFileName(t *testing.T) {
	now := time.UnixMilli(1717000000000)

	name := SecureFileName("../../etc/my care plan (v2).pdf", now)

	pattern := regexp.MustCompile(`^my_care_plan__v2__1717000000000_[0-9a-f-]{36}\.pdf$`)
	assert.Regexp(t, pattern, name)
}

func TestSecureFileNameTruncatesBase(t *testing.T) {
	name := SecureFileName(strings.Repeat("a", 80)+".txt", time.Now())

	assert.True(t, strings.HasPrefix(name, strings.Repeat("a", 50)+"_"))
	assert.False(t, strings.HasPrefix(name, strings.Repeat("a", 51)))
	assert.True(t, strings.HasSuffix(name, ".txt"))
}

func TestStorageKey(t *testing.T) {
	familyID := uuid.NewString()
	assert.Equal(t, "family/"+familyID+"/documents/x.pdf", StorageKey(familyID, "x.pdf"))
}

func TestQueryDefaults(t *testing.T) {
	q := NewQuery(uuid.NewString())
	assert.NoError(t, q.Validate())
	assert.Equal(t, 0, q.Offset())

	q.Page = 3
	assert.Equal(t, 40, q.Offset())

	q.SortBy = "size"
	assert.ErrorIs(t, q.Validate(), apperr.ErrValidation)
}
