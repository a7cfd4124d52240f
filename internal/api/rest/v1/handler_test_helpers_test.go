//go:build unit
// +build unit

package v1

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/profyt7/carelinkai-sub005/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const (
	testCaregiverID = "0b7e2d4c-1f3a-4e5b-8c6d-7e8f9a0b1c2d"
	testOperatorID  = "1c8f3e5d-2a4b-4f6c-9d7e-8f9a0b1c2d3e"
	testShiftID     = "2d9a4f6e-3b5c-4a7d-8e8f-9a0b1c2d3e4f"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestContext builds a gin context for caller with an optional JSON body
func newTestContext(t *testing.T, method, target string, body interface{}, caller *users.Principal) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	if caller != nil {
		c.Set(principalKey, *caller)
	}
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target))
}
