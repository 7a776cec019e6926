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

// Package response builds static-file responses: path resolution under
// a document root, MIME inference, memory-mapped file bodies, header
// serialization, and the canned error pages for the server's closed set
// of failure statuses.
package response

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nabbar/liso/internal/buffer"
	"github.com/nabbar/liso/internal/header"
	"github.com/nabbar/liso/internal/httpstatus"
)

// Phase is the coarse state of a response.
type Phase uint8

const (
	PhaseReady Phase = iota
	PhaseHeader
	PhaseBody
	PhaseAbort
	PhaseError
	PhaseDisabled
)

const dateFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

// Response is owned by a connection for one HTTP transaction.
type Response struct {
	Phase         Phase
	Status        int
	ContentLength int64
	Alive         bool
	Headers       *header.List

	// File holds the memory-mapped body for a successfully resolved
	// static file; nil for error responses.
	File *buffer.Buffer

	// ErrorBody holds the canned HTML page body when Status names one
	// of the recognized error statuses.
	ErrorBody []byte

	HeaderBytes []byte

	file *os.File
}

// New returns a response in the Ready phase.
func New() *Response {
	return &Response{
		Phase:   PhaseReady,
		Headers: header.New(),
		Alive:   true,
	}
}

// Reset releases the mapped file (if any) and returns the response to
// its initial Ready state for reuse on a recycled connection.
func (resp *Response) Reset() {
	resp.closeFile()

	resp.Phase = PhaseReady
	resp.Status = 0
	resp.ContentLength = 0
	resp.Alive = true
	resp.Headers.Reset()
	resp.File = nil
	resp.ErrorBody = nil
	resp.HeaderBytes = nil
}

func (resp *Response) closeFile() {
	if resp.File != nil {
		_ = resp.File.Close()
		resp.File = nil
	}

	if resp.file != nil {
		_ = resp.file.Close()
		resp.file = nil
	}
}

// Resolve maps a request path onto a file under the document root:
// compose documentRoot+uri, try index.html/index.htm on a directory, memory-map
// the result on success. On any failure it sets Status to 404 and
// returns false; the caller is responsible for calling Abort.
func (resp *Response) Resolve(uri string, documentRoot string, alive bool) bool {
	resp.Alive = alive

	candidates := []string{filepath.Join(documentRoot, filepath.FromSlash(uri))}

	if st, e := os.Stat(candidates[0]); e == nil && st.IsDir() {
		base := candidates[0]
		candidates = []string{
			filepath.Join(base, "index.html"),
			filepath.Join(base, "index.htm"),
		}
	}

	for _, path := range candidates {
		if resp.tryServe(path) {
			return true
		}
	}

	resp.Status = httpstatus.NotFound

	return false
}

func (resp *Response) tryServe(path string) bool {
	st, e := os.Stat(path)
	if e != nil || st.IsDir() {
		return false
	}

	f, e := os.Open(path)
	if e != nil {
		return false
	}

	b, e := buffer.Mmap(f, int(st.Size()))
	if e != nil {
		_ = f.Close()
		return false
	}

	resp.file = f
	resp.File = b
	resp.Status = httpstatus.OK
	resp.ContentLength = st.Size()

	resp.Headers.Reset()
	_ = resp.Headers.Add("Content-Type", mimeType(path))
	_ = resp.Headers.Add("Last-Modified", st.ModTime().UTC().Format(dateFormat))

	return true
}

// Abort moves the response to the Abort phase with the given status,
// preparing the canned error body for that status.
func (resp *Response) Abort(status int) {
	resp.closeFile()

	resp.Status, resp.ErrorBody = cannedErrorBody(status)
	resp.ContentLength = int64(len(resp.ErrorBody))
	resp.Headers.Reset()
	resp.Phase = PhaseAbort
}

// SerializeHeader emits the status line, Date, Server, Connection,
// Content-Length, and every stored header in insertion order,
// terminated by a blank line.
func (resp *Response) SerializeHeader() []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "HTTP/1.1 %d %s\r\n", resp.Status, httpstatus.Reason(resp.Status))
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().UTC().Format(dateFormat))
	b.WriteString("Server: Liso/1.0\r\n")

	if resp.Alive {
		b.WriteString("Connection: keep-alive\r\n")
	} else {
		b.WriteString("Connection: close\r\n")
	}

	fmt.Fprintf(&b, "Content-Length: %d\r\n", resp.ContentLength)

	for _, p := range resp.Headers.All() {
		fmt.Fprintf(&b, "%s: %s\r\n", p.Key, p.Value)
	}

	b.WriteString("\r\n")

	resp.HeaderBytes = []byte(b.String())

	return resp.HeaderBytes
}

// AssembleError lays the serialized header and the canned error body
// end-to-end into one frame and moves the response to the Error phase.
func (resp *Response) AssembleError() []byte {
	h := resp.SerializeHeader()

	frame := make([]byte, 0, len(h)+len(resp.ErrorBody))
	frame = append(frame, h...)
	frame = append(frame, resp.ErrorBody...)

	resp.Phase = PhaseError

	return frame
}
