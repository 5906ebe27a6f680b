// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/validation"
)

func TestResponseWriter_Success(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/test", nil)
	r = r.WithContext(logging.ContextWithRequestID(r.Context(), "req-123"))

	NewResponseWriter(w, r).Success(map[string]string{"message": "hello"})

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q, want application/json; charset=utf-8", ct)
	}

	var response APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !response.Success {
		t.Error("Success = false, want true")
	}
	if response.Error != nil {
		t.Errorf("Error = %+v, want nil", response.Error)
	}
	if response.Meta == nil || response.Meta.Timestamp.IsZero() {
		t.Fatalf("Meta = %+v, want timestamp set", response.Meta)
	}
	if response.Meta.RequestID != "req-123" {
		t.Errorf("Meta.RequestID = %q, want req-123", response.Meta.RequestID)
	}
}

func TestResponseWriter_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		write      func(*ResponseWriter)
		wantStatus int
		wantCode   string
	}{
		{name: "bad request", write: func(rw *ResponseWriter) { rw.BadRequest("bad") }, wantStatus: 400, wantCode: ErrCodeBadRequest},
		{name: "not found", write: func(rw *ResponseWriter) { rw.NotFound("gone") }, wantStatus: 404, wantCode: ErrCodeNotFound},
		{name: "method not allowed", write: func(rw *ResponseWriter) { rw.MethodNotAllowed() }, wantStatus: 405, wantCode: ErrCodeMethodNotAllowed},
		{name: "too many requests", write: func(rw *ResponseWriter) { rw.TooManyRequests("slow down") }, wantStatus: 429, wantCode: ErrCodeTooManyRequests},
		{name: "internal", write: func(rw *ResponseWriter) { rw.InternalError("boom") }, wantStatus: 500, wantCode: ErrCodeInternalError},
		{name: "unavailable", write: func(rw *ResponseWriter) { rw.ServiceUnavailable("later") }, wantStatus: 503, wantCode: ErrCodeServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/test", nil)
			r = r.WithContext(logging.ContextWithRequestID(r.Context(), "req-err"))
			tt.write(NewResponseWriter(w, r))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var response APIResponse
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if response.Success {
				t.Error("Success = true, want false")
			}
			if response.Error == nil {
				t.Fatal("Error = nil")
			}
			if response.Error.Code != tt.wantCode {
				t.Errorf("Error.Code = %q, want %q", response.Error.Code, tt.wantCode)
			}
			if response.Error.RequestID != "req-err" {
				t.Errorf("Error.RequestID = %q, want req-err", response.Error.RequestID)
			}
		})
	}
}

func TestResponseWriter_ValidationError(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/test", nil)

	verr := &validation.RequestValidationError{Fields: []validation.FieldError{
		{Field: "movieTitle", Tag: "required", Message: "movieTitle is required"},
		{Field: "topK", Tag: "min", Param: "0", Value: -1, Message: "topK must be at least 0"},
	}}
	NewResponseWriter(w, r).ValidationError(verr)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	var response APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if response.Error.Code != "VALIDATION_FAILED" {
		t.Errorf("Error.Code = %q, want VALIDATION_FAILED", response.Error.Code)
	}
	if response.Error.Message != "movieTitle is required; topK must be at least 0" {
		t.Errorf("Error.Message = %q", response.Error.Message)
	}
	details, ok := response.Error.Details.(map[string]interface{})
	if !ok {
		t.Fatalf("Error.Details = %T, want object", response.Error.Details)
	}
	fields, ok := details["fields"].([]interface{})
	if !ok || len(fields) != 2 {
		t.Errorf("Error.Details.fields = %v, want 2 entries", details["fields"])
	}
}
