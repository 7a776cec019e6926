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

// Package request implements the incremental, line-oriented HTTP/1.1
// request parser: a state machine across Start, Header, Body, Done and
// Abort phases that streams across buffer refills and tolerates
// pipelined requests.
package request

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/nabbar/liso/internal/header"
	"github.com/nabbar/liso/internal/httpstatus"
)

// Phase is the coarse parsing state of a request.
type Phase uint8

const (
	PhaseStart Phase = iota
	PhaseHeader
	PhaseBody
	PhaseDone
	PhaseAbort
)

// Method is the closed set of methods this server accepts at the parser
// level; anything else is rejected with 501 before a Method is ever set.
type Method uint8

const (
	MethodOther Method = iota
	MethodGet
	MethodHead
	MethodPost
)

// Kind distinguishes a static file request from one proxied to CGI.
type Kind uint8

const (
	KindStatic Kind = iota
	KindDynamic
)

// MaxURILength is the maximum accepted length of the request-target.
const MaxURILength = 2048

// Request is owned by a connection for the duration of one HTTP
// transaction; Reset returns it to its initial state for recycling.
type Request struct {
	Method  Method
	Scheme  string
	Version string
	URI     string
	Query   string
	Host    string

	// ContentLength is -1 until the Content-Length header (or its
	// absence on a non-POST request) has been resolved.
	ContentLength int64
	Alive         bool
	Remaining     int64
	Headers       *header.List
	Kind          Kind
	Phase         Phase

	// Carry holds bytes belonging to the next pipelined request that
	// arrived past this request's content-length boundary.
	Carry []byte
}

// New returns a request ready to parse a request line, for the given
// connection scheme ("HTTP" or "HTTPS").
func New(scheme string) *Request {
	return &Request{
		Scheme:        scheme,
		ContentLength: -1,
		Alive:         true,
		Headers:       header.New(),
		Phase:         PhaseStart,
	}
}

// Reset returns the request to its Start-phase initial state so the
// same value can serve another request on a keep-alive connection.
func (r *Request) Reset() {
	r.Method = MethodOther
	r.Version = ""
	r.URI = ""
	r.Query = ""
	r.Host = ""
	r.ContentLength = -1
	r.Alive = true
	r.Remaining = 0
	r.Headers.Reset()
	r.Kind = KindStatic
	r.Phase = PhaseStart
	r.Carry = nil
}

func isLineWS(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\v', '\f':
		return true
	}

	return false
}

// Parse consumes complete CRLF-terminated lines from the front of data
// while the request is in Start or Header phase, returning the number
// of bytes consumed. A negative return's magnitude is the HTTP status
// code to fail the request with; the caller must treat the request as
// Abort in that case.
func (r *Request) Parse(data []byte) int {
	consumed := 0

	for r.Phase == PhaseStart || r.Phase == PhaseHeader {
		rest := data[consumed:]

		nl := bytes.IndexByte(rest, '\n')
		if nl < 0 {
			break
		}

		hasCR := nl > 0 && rest[nl-1] == '\r'

		var line []byte
		if hasCR {
			line = rest[:nl-1]
		} else {
			line = rest[:nl]
		}

		total := nl + 1

		switch r.Phase {
		case PhaseStart:
			if !hasCR {
				r.Phase = PhaseAbort
				return -httpstatus.BadRequest
			}

			if st := r.parseStartLine(line); st != 0 {
				r.Phase = PhaseAbort
				return -st
			}

			r.Phase = PhaseHeader

		case PhaseHeader:
			if len(line) == 0 {
				if st := r.finishHeaders(); st != 0 {
					r.Phase = PhaseAbort
					return -st
				}

				consumed += total

				return consumed
			}

			if st := r.parseHeaderLine(line); st != 0 {
				r.Phase = PhaseAbort
				return -st
			}
		}

		consumed += total
	}

	return consumed
}

func (r *Request) parseStartLine(line []byte) int {
	i := 0
	for i < len(line) && isLineWS(line[i]) {
		i++
	}

	j := i
	for j < len(line) && !isLineWS(line[j]) {
		j++
	}

	if j == i || j >= len(line) {
		return httpstatus.NotImplemented
	}

	switch strings.ToUpper(string(line[i:j])) {
	case "GET":
		r.Method = MethodGet
	case "HEAD":
		r.Method = MethodHead
	case "POST":
		r.Method = MethodPost
	default:
		return httpstatus.NotImplemented
	}

	i = j
	for i < len(line) && isLineWS(line[i]) {
		i++
	}

	j = i
	for j < len(line) && !isLineWS(line[j]) {
		j++
	}

	if j == i {
		return httpstatus.BadRequest
	}

	uri := string(line[i:j])
	if len(uri) > MaxURILength {
		return httpstatus.BadRequest
	}

	r.applyURI(uri)

	i = j
	for i < len(line) && isLineWS(line[i]) {
		i++
	}

	j = i
	for j < len(line) && !isLineWS(line[j]) {
		j++
	}

	if j == i {
		return httpstatus.BadRequest
	}

	r.Version = string(line[i:j])

	for k := j; k < len(line); k++ {
		if !isLineWS(line[k]) {
			return httpstatus.BadRequest
		}
	}

	return 0
}

func (r *Request) applyURI(uri string) {
	lower := strings.ToLower(uri)

	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		idx := strings.Index(uri, "://")
		rest := uri[idx+3:]

		if slash := strings.IndexByte(rest, '/'); slash >= 0 {
			r.Host = rest[:slash]
			uri = rest[slash:]
		} else {
			r.Host = rest
			uri = "/"
		}
	}

	if strings.HasPrefix(uri, "/cgi/") {
		r.Kind = KindDynamic
	}

	if q := strings.IndexByte(uri, '?'); q >= 0 {
		r.Query = uri[q+1:]
		uri = uri[:q]
	}

	r.URI = uri
}

func (r *Request) parseHeaderLine(line []byte) int {
	idx := bytes.IndexByte(line, ':')
	if idx <= 0 {
		return httpstatus.BadRequest
	}

	key := strings.TrimSpace(string(line[:idx]))
	value := strings.TrimSpace(string(line[idx+1:]))

	switch {
	case strings.EqualFold(key, "Host"):
		r.Host = value
		return 0

	case strings.EqualFold(key, "Content-Length"):
		if value == "" || !isAllDigits(value) {
			return httpstatus.BadRequest
		}

		n, e := strconv.ParseInt(value, 10, 64)
		if e != nil {
			return httpstatus.BadRequest
		}

		r.ContentLength = n

		return 0

	case strings.EqualFold(key, "Connection"):
		if strings.EqualFold(value, "close") {
			r.Alive = false
		}

		return 0
	}

	if e := r.Headers.Add(key, value); e != nil {
		return httpstatus.BadRequest
	}

	return 0
}

func isAllDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

func (r *Request) finishHeaders() int {
	if r.ContentLength < 0 {
		if r.Method == MethodPost {
			return httpstatus.LengthRequired
		}

		r.ContentLength = 0
	}

	r.Remaining = r.ContentLength
	r.Phase = PhaseBody

	return 0
}
