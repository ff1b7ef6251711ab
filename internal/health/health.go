// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"syscall"
	"time"

	"resty.dev/v3"
)

var ErrUnhealthy = errors.New("server is not healthy")

// URL is the address of the served app's health route on this host.
func URL(port, path string) string {
	return fmt.Sprintf("http://localhost:%s%s", port, path)
}

type Prober struct {
	resty    *resty.Client
	interval time.Duration
}

func NewProber(timeout time.Duration) *Prober {
	client := resty.New()
	client.SetTimeout(timeout)

	return &Prober{
		resty:    client,
		interval: time.Second,
	}
}

func (p *Prober) Close() error {
	return p.resty.Close()
}

// Check performs a single GET and reports nil only for 200 OK.
func (p *Prober) Check(ctx context.Context, url string) error {
	resp, err := p.resty.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		if errors.Is(err, syscall.ECONNREFUSED) {
			return fmt.Errorf("%w: nothing listening at %s", ErrUnhealthy, url)
		}
		return fmt.Errorf("%w: %v", ErrUnhealthy, err)
	}

	if resp.Body != nil {
		//nolint:errcheck
		defer resp.Body.Close()
	}

	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("%w: unexpected status code: %d", ErrUnhealthy, resp.StatusCode())
	}

	return nil
}

// WaitHealthy polls url until it answers 200 or wait elapses.
func (p *Prober) WaitHealthy(ctx context.Context, url string, wait time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		err := p.Check(ctx, url)
		if err == nil {
			return nil
		}
		slog.Debug("Health check failed, retrying", "url", url, "error", err)

		select {
		case <-ctx.Done():
			return fmt.Errorf("gave up after %s: %w", wait, err)
		case <-ticker.C:
		}
	}
}
