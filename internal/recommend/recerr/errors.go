// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package recerr defines the error taxonomy shared by the recommender packages.
//
// Four kinds exist:
//   - DataError: an input the fitted model does not know (unknown title,
//     a vector whose shape does not match the fitted dimension)
//   - LoadError: a persisted model that is missing or corrupt
//   - ConfigError: a structural mismatch (empty corpus, dimension mismatch,
//     invalid schema)
//   - IOError: a failed write while persisting a model
//
// Every kind matches its sentinel with errors.Is, so callers can branch on the
// kind without a type assertion:
//
//	if errors.Is(err, recerr.ErrLoad) {
//	    logging.Fatal().Err(err).Msg("Cannot serve without a model")
//	}
package recerr

import "errors"

// Kind sentinels.
var (
	ErrData   = errors.New("data error")
	ErrLoad   = errors.New("load error")
	ErrConfig = errors.New("config error")
	ErrIO     = errors.New("io error")
)

// base carries the fields common to every error kind.
type base struct {
	Op      string
	Message string
	Cause   error
}

func (b *base) format(kind string) string {
	msg := kind
	if b.Op != "" {
		msg += ": " + b.Op
	}
	if b.Message != "" {
		msg += ": " + b.Message
	}
	if b.Cause != nil {
		msg += ": " + b.Cause.Error()
	}
	return msg
}

// DataError reports input that is incompatible with a fitted model.
type DataError struct{ base }

// NewDataError creates a DataError for the given operation.
func NewDataError(op, message string, cause error) *DataError {
	return &DataError{base{Op: op, Message: message, Cause: cause}}
}

// Error implements the error interface.
func (e *DataError) Error() string { return e.format("data error") }

// Unwrap returns the underlying cause.
func (e *DataError) Unwrap() error { return e.Cause }

// Is reports whether target is ErrData.
func (e *DataError) Is(target error) bool { return target == ErrData }

// LoadError reports a persisted model that cannot be read.
type LoadError struct {
	base
	Path string
}

// NewLoadError creates a LoadError for the given path.
func NewLoadError(path, message string, cause error) *LoadError {
	return &LoadError{base: base{Op: "load", Message: message, Cause: cause}, Path: path}
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Path == "" {
		return e.format("load error")
	}
	return e.format("load error " + e.Path)
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error { return e.Cause }

// Is reports whether target is ErrLoad.
func (e *LoadError) Is(target error) bool { return target == ErrLoad }

// ConfigError reports a structural mismatch that prevents building a model.
type ConfigError struct{ base }

// NewConfigError creates a ConfigError for the given operation.
func NewConfigError(op, message string, cause error) *ConfigError {
	return &ConfigError{base{Op: op, Message: message, Cause: cause}}
}

// Error implements the error interface.
func (e *ConfigError) Error() string { return e.format("config error") }

// Unwrap returns the underlying cause.
func (e *ConfigError) Unwrap() error { return e.Cause }

// Is reports whether target is ErrConfig.
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// IOError reports a failed write of a persisted model.
type IOError struct {
	base
	Path string
}

// NewIOError creates an IOError for the given path.
func NewIOError(path, message string, cause error) *IOError {
	return &IOError{base: base{Op: "save", Message: message, Cause: cause}, Path: path}
}

// Error implements the error interface.
func (e *IOError) Error() string {
	if e.Path == "" {
		return e.format("io error")
	}
	return e.format("io error " + e.Path)
}

// Unwrap returns the underlying cause.
func (e *IOError) Unwrap() error { return e.Cause }

// Is reports whether target is ErrIO.
func (e *IOError) Is(target error) bool { return target == ErrIO }
