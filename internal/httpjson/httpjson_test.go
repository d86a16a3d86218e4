package httpjson

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusServiceUnavailable, "firestore: service not configured")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"firestore: service not configured"}`, rec.Body.String())
}

func TestRead(t *testing.T) {
	var dst struct {
		ObjectPath string `json:"objectPath"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"objectPath":"a/b.png"}`))
	require.NoError(t, Read(req, &dst))
	assert.Equal(t, "a/b.png", dst.ObjectPath)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"other":1}`))
	assert.Error(t, Read(req, &dst))
}
