package httpretry

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flakyServer(t *testing.T, failures int32, status int) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		body, _ := io.ReadAll(r.Body)
		if n <= failures {
			w.WriteHeader(status)
			return
		}
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestDo_RetriesKeyedPost(t *testing.T) {
	srv, calls := flakyServer(t, 2, http.StatusServiceUnavailable)
	rc := NewRetryClient(srv.Client(), 3, WithDelays(time.Millisecond, 5*time.Millisecond))

	req, err := http.NewRequest(http.MethodPost, srv.URL, strings.NewReader("amount=2500"))
	require.NoError(t, err)
	req.Header.Set("Idempotency-Key", "abc")

	resp, err := rc.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "amount=2500", string(body))
	assert.EqualValues(t, 3, atomic.LoadInt32(calls))
}

func TestDo_DoesNotRetryUnkeyedPost(t *testing.T) {
	srv, calls := flakyServer(t, 1, http.StatusBadGateway)
	rc := NewRetryClient(srv.Client(), 3, WithDelays(time.Millisecond, time.Millisecond))

	req, _ := http.NewRequest(http.MethodPost, srv.URL, strings.NewReader("x"))
	resp, err := rc.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
}

func TestDo_ClientErrorNotRetried(t *testing.T) {
	srv, calls := flakyServer(t, 5, http.StatusBadRequest)
	rc := NewRetryClient(srv.Client(), 3, WithDelays(time.Millisecond, time.Millisecond))

	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	resp, err := rc.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
}

func TestDo_ReturnsLastResponseWhenExhausted(t *testing.T) {
	srv, calls := flakyServer(t, 10, http.StatusTooManyRequests)
	rc := NewRetryClient(srv.Client(), 2, WithDelays(time.Millisecond, time.Millisecond))

	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	resp, err := rc.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.EqualValues(t, 3, atomic.LoadInt32(calls))
}
