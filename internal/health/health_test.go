// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8888/_stcore/health", URL("8888", "/_stcore/health"))
}

func TestCheck_Healthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/_stcore/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewProber(time.Second)
	defer p.Close()

	assert.NoError(t, p.Check(context.Background(), srv.URL+"/_stcore/health"))
}

func TestCheck_Unhealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewProber(time.Second)
	defer p.Close()

	err := p.Check(context.Background(), srv.URL+"/_stcore/health")
	assert.ErrorIs(t, err, ErrUnhealthy)
	assert.ErrorContains(t, err, "unexpected status code: 503")
}

func TestCheck_NothingListening(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	p := NewProber(time.Second)
	defer p.Close()

	assert.ErrorIs(t, p.Check(context.Background(), url), ErrUnhealthy)
}

func TestWaitHealthy_EventuallyHealthy(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewProber(time.Second)
	p.interval = 10 * time.Millisecond
	defer p.Close()

	require.NoError(t, p.WaitHealthy(context.Background(), srv.URL, 5*time.Second))
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestWaitHealthy_GivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewProber(time.Second)
	p.interval = 10 * time.Millisecond
	defer p.Close()

	err := p.WaitHealthy(context.Background(), srv.URL, 100*time.Millisecond)
	assert.ErrorIs(t, err, ErrUnhealthy)
	assert.ErrorContains(t, err, "gave up after")
}
