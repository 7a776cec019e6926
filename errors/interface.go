/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package errors gives every package in this server a shared, numbered
// error taxonomy instead of ad-hoc fmt.Errorf strings: each package owns a
// small CodeError range (see modules.go) and builds its sentinel errors
// from it, optionally wrapping whatever caused the failure as a parent.
//
//	var ErrorHandshakeFailed errors.CodeError = iota + errors.MinPkgTLSAdapter
//
//	return ErrorHandshakeFailed.Error(underlyingErr)
package errors

import "errors"

// Error extends the standard error with a numeric code, an optional
// parent chain (the error that caused this one) and the call site that
// raised it. Add/HasParent model the parent chain explicitly instead of
// relying on fmt.Errorf's %w wrapping, since a single failure here often
// has more than one cause worth keeping (e.g. a validator's field errors).
type Error interface {
	error

	// Add appends non-nil errors to the parent chain.
	Add(parent ...error)
	// HasParent reports whether any parent error was added.
	HasParent() bool

	// Code returns the numeric error code.
	Code() uint16
	// Message returns the error text without its code or parents.
	Message() string
	// GetTrace returns the file/line (or function/line) the error was
	// created at, for diagnostic logging.
	GetTrace() string

	// Unwrap exposes the parent chain to errors.Is / errors.As.
	Unwrap() []error
}

// Is reports whether e can be treated as the Error interface.
func Is(e error) bool {
	var err Error
	return errors.As(e, &err)
}

// Get returns e as an Error, or nil if it isn't one.
func Get(e error) Error {
	var err Error
	if errors.As(e, &err) {
		return err
	}

	return nil
}

// Make wraps a plain error as an Error with code 0, or returns it
// unchanged if it already is one.
func Make(e error) Error {
	if e == nil {
		return nil
	}

	if err := Get(e); err != nil {
		return err
	}

	return &ers{c: 0, e: e.Error(), t: getNilFrame()}
}

// New creates an Error with the given code, message and parents.
func New(code uint16, message string, parent ...error) Error {
	e := &ers{c: code, e: message, t: getFrame()}
	e.Add(parent...)
	return e
}
