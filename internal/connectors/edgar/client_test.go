package edgar

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientRetriesTransientErrors(t *testing.T) {
	var calls atomic.Int32
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))

	body, err := client.Get(context.Background(), client.BaseURL()+"/thing")
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), body)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientDoesNotRetryNotFound(t *testing.T) {
	var calls atomic.Int32
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))

	_, err := client.Get(context.Background(), client.BaseURL()+"/missing")
	assert.True(t, IsNotFound(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientGivesUpAfterRetryMax(t *testing.T) {
	var calls atomic.Int32
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.Get(context.Background(), client.BaseURL()+"/flaky")
	require.Error(t, err)
	assert.Equal(t, int32(DefaultRetryMax), calls.Load())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestClientRespectsContextCancellation(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Get(ctx, client.BaseURL()+"/thing")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRateLimiterThrottleResponse(t *testing.T) {
	rl := NewRateLimiter(1000)

	resp := &http.Response{
		StatusCode: http.StatusTooManyRequests,
		Header:     http.Header{HeaderRetryAfter: []string{"60"}},
	}

	err := rl.CheckRateLimit(resp)
	require.Error(t, err)
	assert.True(t, IsRateLimited(err))

	var rlErr *RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.WithinDuration(t, time.Now().Add(60*time.Second), rlErr.ResetAt, 2*time.Second)
	assert.WithinDuration(t, rlErr.ResetAt, rl.ResetTime(), time.Second)
}

func TestRateLimiterOKResponse(t *testing.T) {
	rl := NewRateLimiter(1000)
	assert.NoError(t, rl.CheckRateLimit(&http.Response{StatusCode: http.StatusOK}))
	assert.True(t, rl.ResetTime().IsZero())
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"server error", &APIError{StatusCode: 502}, true},
		{"not found", &APIError{StatusCode: 404}, false},
		{"rate limited", &RateLimitError{ResetAt: time.Now()}, true},
		{"network error", errors.New("connection reset"), true},
		{"context canceled", context.Canceled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isTransient(tt.err))
		})
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.Error(t, cfg.Validate())

	cfg.Identity = "Example Corp admin@example.com"
	assert.NoError(t, cfg.Validate())
}
