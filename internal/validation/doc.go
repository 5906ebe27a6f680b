// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package validation wraps go-playground/validator v10 for API request bodies.
//
// A single validator instance is shared by all handlers; it caches struct
// metadata after first use and is safe for concurrent calls. Errors name fields
// by their json tag and are rendered by the api package as a 400 response with
// code VALIDATION_FAILED:
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    respondError(w, r, http.StatusBadRequest, validation.ErrorCode, verr.Error(), verr.Details())
//	    return
//	}
//
// Besides the built-in tags the validator registers notblank, which rejects
// strings that are empty after trimming whitespace.
package validation
