// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestNewChiMiddleware_DefaultConfig(t *testing.T) {
	m := NewChiMiddleware(nil)

	if m.config == nil {
		t.Fatal("config is nil")
	}
	if len(m.config.CORSAllowedOrigins) != 0 {
		t.Errorf("CORSAllowedOrigins = %v, want []", m.config.CORSAllowedOrigins)
	}
	if m.config.RateLimitRequests != 100 || m.config.RateLimitWindow != time.Minute {
		t.Errorf("rate limit = %d/%v, want 100/1m", m.config.RateLimitRequests, m.config.RateLimitWindow)
	}
}

func TestChiMiddlewareConfigFrom(t *testing.T) {
	sec := config.SecurityConfig{
		RateLimitReqs:     7,
		RateLimitWindow:   30 * time.Second,
		RateLimitDisabled: true,
		CORSOrigins:       []string{"https://app.example"},
	}

	c := ChiMiddlewareConfigFrom(sec)
	if c.RateLimitRequests != 7 || c.RateLimitWindow != 30*time.Second || !c.RateLimitDisabled {
		t.Errorf("rate limit = %d/%v disabled=%v, want 7/30s disabled=true", c.RateLimitRequests, c.RateLimitWindow, c.RateLimitDisabled)
	}
	if len(c.CORSAllowedOrigins) != 1 || c.CORSAllowedOrigins[0] != "https://app.example" {
		t.Errorf("CORSAllowedOrigins = %v, want [https://app.example]", c.CORSAllowedOrigins)
	}

	sec.CORSOrigins[0] = "mutated"
	if c.CORSAllowedOrigins[0] != "https://app.example" {
		t.Error("CORSAllowedOrigins aliases the source slice")
	}
}

func TestRateLimit(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 2
	cfg.RateLimitWindow = time.Minute
	handler := NewChiMiddleware(cfg).RateLimit()(okHandler)

	before := testutil.ToFloat64(metrics.APIRateLimitHits.WithLabelValues("unmatched"))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/model", nil)
		req.RemoteAddr = "198.51.100.7:4242"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)

		if i == 2 && !strings.Contains(rec.Body.String(), ErrCodeTooManyRequests) {
			t.Errorf("body = %s, want %s envelope", rec.Body.String(), ErrCodeTooManyRequests)
		}
	}

	if codes[0] != 200 || codes[1] != 200 || codes[2] != 429 {
		t.Errorf("status codes = %v, want [200 200 429]", codes)
	}
	if got := testutil.ToFloat64(metrics.APIRateLimitHits.WithLabelValues("unmatched")) - before; got != 1 {
		t.Errorf("api_rate_limit_hits_total delta = %v, want 1", got)
	}

	// A different client has its own budget.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/model", nil)
	req.RemoteAddr = "198.51.100.8:4242"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("other client status = %d, want 200", rec.Code)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 1
	cfg.RateLimitDisabled = true
	handler := NewChiMiddleware(cfg).RateLimit()(okHandler)

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i, rec.Code)
		}
	}
}

func TestRequestIDWithLogging(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		wantSame bool
	}{
		{name: "generated", incoming: ""},
		{name: "propagated", incoming: "upstream-id-42", wantSame: true},
		{name: "oversized replaced", incoming: strings.Repeat("a", maxRequestIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ctxID, correlationID string
			handler := RequestIDWithLogging()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxID = logging.RequestIDFromContext(r.Context())
				correlationID = logging.CorrelationIDFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set("X-Request-ID", tt.incoming)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			header := rec.Header().Get("X-Request-ID")
			if header == "" || header != ctxID {
				t.Errorf("X-Request-ID = %q, context ID = %q, want equal and non-empty", header, ctxID)
			}
			if tt.wantSame && header != tt.incoming {
				t.Errorf("X-Request-ID = %q, want %q", header, tt.incoming)
			}
			if !tt.wantSame {
				if _, err := uuid.Parse(header); err != nil {
					t.Errorf("X-Request-ID = %q, want a UUID: %v", header, err)
				}
			}
			if len(correlationID) != 8 {
				t.Errorf("correlation ID = %q, want 8 characters", correlationID)
			}
		})
	}
}

func TestAPISecurityHeaders(t *testing.T) {
	tests := []struct {
		name     string
		tls      bool
		proto    string
		wantHSTS bool
	}{
		{name: "plain http"},
		{name: "direct tls", tls: true, wantHSTS: true},
		{name: "proxy tls", proto: "https", wantHSTS: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.tls {
				req.TLS = &tls.ConnectionState{}
			}
			if tt.proto != "" {
				req.Header.Set("X-Forwarded-Proto", tt.proto)
			}
			rec := httptest.NewRecorder()
			APISecurityHeaders()(okHandler).ServeHTTP(rec, req)

			if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
				t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
			}
			if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
				t.Errorf("X-Frame-Options = %q, want DENY", got)
			}
			if got := rec.Header().Get("Strict-Transport-Security") != ""; got != tt.wantHSTS {
				t.Errorf("HSTS present = %v, want %v", got, tt.wantHSTS)
			}
		})
	}
}

func TestAccessLog(t *testing.T) {
	var buf strings.Builder
	logging.SetLogger(logging.NewTestLogger(&buf))
	t.Cleanup(func() { logging.Init(logging.DefaultConfig()) })

	handler := AccessLog()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	out := buf.String()
	if !strings.Contains(out, `"status":502`) || !strings.Contains(out, `"level":"warn"`) {
		t.Errorf("log = %s, want a warn line with status 502", out)
	}
}
