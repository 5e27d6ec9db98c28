package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationFailed_Shape(t *testing.T) {
	rec := httptest.NewRecorder()
	ValidationFailed(rec, map[string]string{"email": "Email is required"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Validation failed", body["error"])
	assert.Equal(t, map[string]any{"email": "Email is required"}, body["errors"])
}

func TestInternalError_HidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	InternalError(rec, errors.New("pq: connection refused"), "Failed to send message")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to send message"}`, rec.Body.String())
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, "Message received")
	assert.JSONEq(t, `{"success":true,"message":"Message received"}`, rec.Body.String())
}

func TestDecodeBody_KeepsNumbers(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"amount": 2500}`))
	raw, err := DecodeBody(req)
	require.NoError(t, err)

	obj := raw.(map[string]any)
	assert.Equal(t, json.Number("2500"), obj["amount"])
}

func TestDecodeBody_Rejects(t *testing.T) {
	cases := map[string]string{
		"malformed": `{"name": `,
		"trailing":  `{} {}`,
		"oversized": `{"x":"` + strings.Repeat("a", MaxBodyBytes) + `"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
			_, err := DecodeBody(req)
			assert.ErrorIs(t, err, ErrInvalidBody)
		})
	}
}
