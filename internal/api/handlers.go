// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/validation"
)

// maxRequestBodyBytes bounds POST bodies; a recommend request is a title and a number.
const maxRequestBodyBytes = 64 << 10

// Handler serves the recommendation endpoints from one QueryService.
type Handler struct {
	service   *recommend.QueryService
	startTime time.Time
	ready     atomic.Bool
}

// NewHandler returns a handler that reports ready immediately, since the
// model is loaded before the service exists.
func NewHandler(service *recommend.QueryService) *Handler {
	h := &Handler{
		service:   service,
		startTime: time.Now(),
	}
	h.ready.Store(service != nil)
	return h
}

// SetReady flips the readiness check, e.g. to drain traffic before shutdown.
func (h *Handler) SetReady(ready bool) {
	h.ready.Store(ready && h.service != nil)
}

// Recommend handles POST /api/v1/recommend with a JSON body
// {"movieTitle": "...", "topK": 5}.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			rw.ErrorWithDetails(http.StatusRequestEntityTooLarge, ErrCodeBadRequest, "Request body too large",
				map[string]interface{}{"limit_bytes": maxErr.Limit})
			return
		}
		rw.BadRequest("Failed to read request body")
		return
	}
	if len(bytes.TrimSpace(data)) == 0 {
		rw.BadRequest("Request body is required")
		return
	}

	var req recommend.RecommendRequest
	if err := json.Unmarshal(data, &req); err != nil {
		rw.BadRequest("Invalid JSON body")
		return
	}

	h.respond(rw, r, req)
}

// RecommendByTitle handles GET /api/v1/recommend/{title}?k=5&details=true.
func (h *Handler) RecommendByTitle(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := recommend.RecommendRequest{MovieTitle: titleParam(r)}

	q := r.URL.Query()
	if raw := q.Get("k"); raw != "" {
		k, err := strconv.Atoi(raw)
		if err != nil {
			rw.ValidationError(&validation.RequestValidationError{Fields: []validation.FieldError{{
				Field:   "topK",
				Tag:     "integer",
				Value:   raw,
				Message: "topK must be an integer",
			}}})
			return
		}
		req.TopK = k
	}
	if raw := q.Get("details"); raw != "" {
		details, err := strconv.ParseBool(raw)
		if err != nil {
			rw.BadRequest("details must be a boolean")
			return
		}
		req.Details = details
	}

	h.respond(rw, r, req)
}

// titleParam returns the decoded {title} segment. chi matches on RawPath when
// the path carries escapes such as %2F, leaving the parameter encoded.
func titleParam(r *http.Request) string {
	title := chi.URLParam(r, "title")
	if r.URL.RawPath == "" {
		return title
	}
	if decoded, err := url.PathUnescape(title); err == nil {
		return decoded
	}
	return title
}

//nolint:gocritic // req is small and read-only
func (h *Handler) respond(rw *ResponseWriter, r *http.Request, req recommend.RecommendRequest) {
	if verr := validation.ValidateStruct(&req); verr != nil {
		logging.Ctx(r.Context()).Debug().
			Str("title", sanitizeLogValue(req.MovieTitle)).
			Str("reason", verr.Error()).
			Msg("Rejected recommendation request")
		rw.ValidationError(verr)
		return
	}

	rw.Success(h.service.Recommend(r.Context(), req))
}

// modelResponse is the body of GET /api/v1/model.
type modelResponse struct {
	Model recommend.ModelInfo   `json:"model"`
	Query recommend.QueryConfig `json:"query"`
	Stats recommend.QueryStats  `json:"stats"`
}

// ModelInfo handles GET /api/v1/model.
func (h *Handler) ModelInfo(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, modelResponse{
		Model: h.service.Model().Info(),
		Query: h.service.Config(),
		Stats: h.service.Stats(),
	})
}

// HealthLive handles GET /health/live. It succeeds whenever the process can
// answer HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles GET /health/ready: 200 while a model is being served,
// 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if !h.ready.Load() {
		NewResponseWriter(w, r).ServiceUnavailable("Service is not ready")
		return
	}
	WriteSuccess(w, r, map[string]interface{}{
		"ready": true,
		"items": h.service.Model().Len(),
	})
}

// NotFound answers unknown routes with the JSON envelope.
func NotFound(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).NotFound("Route not found")
}

// MethodNotAllowed answers known routes called with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).MethodNotAllowed()
}
