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

package request_test

import (
	"strings"

	"github.com/nabbar/liso/internal/httpstatus"
	"github.com/nabbar/liso/internal/request"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Request", func() {
	It("parses a simple GET into Body phase with default content-length 0", func() {
		r := request.New("HTTP")
		raw := []byte("GET / HTTP/1.1\r\nHost: x\r\n\r\n")

		n := r.Parse(raw)
		Expect(n).To(Equal(len(raw)))
		Expect(r.Phase).To(Equal(request.PhaseBody))
		Expect(r.Method).To(Equal(request.MethodGet))
		Expect(r.URI).To(Equal("/"))
		Expect(r.Host).To(Equal("x"))
		Expect(r.ContentLength).To(Equal(int64(0)))
		Expect(r.Alive).To(BeTrue())
	})

	It("consumes exactly n bytes for a partial header stream", func() {
		r := request.New("HTTP")
		raw := []byte("GET / HTTP/1.1\r\nHost: x\r\n")

		n := r.Parse(raw)
		Expect(n).To(Equal(len(raw)))
		Expect(r.Phase).To(Equal(request.PhaseHeader))
	})

	It("rejects an unsupported method with 501", func() {
		r := request.New("HTTP")
		n := r.Parse([]byte("PUT /x HTTP/1.1\r\nHost: x\r\n\r\n"))
		Expect(n).To(Equal(-httpstatus.NotImplemented))
		Expect(r.Phase).To(Equal(request.PhaseAbort))
	})

	It("rejects POST without Content-Length with 411", func() {
		r := request.New("HTTP")
		n := r.Parse([]byte("POST /x HTTP/1.1\r\nHost: x\r\n\r\n"))
		Expect(n).To(Equal(-httpstatus.LengthRequired))
	})

	It("marks /cgi/ URIs as dynamic", func() {
		r := request.New("HTTP")
		r.Parse([]byte("GET /cgi/echo HTTP/1.1\r\nHost: x\r\n\r\n"))
		Expect(r.Kind).To(Equal(request.KindDynamic))
		Expect(r.URI).To(Equal("/cgi/echo"))
	})

	It("extracts host and path from an absolute URI", func() {
		r := request.New("HTTP")
		r.Parse([]byte("GET http://example.com/a?b=1 HTTP/1.1\r\n\r\n"))
		Expect(r.Host).To(Equal("example.com"))
		Expect(r.URI).To(Equal("/a"))
		Expect(r.Query).To(Equal("b=1"))
	})

	It("clears the alive flag on Connection: close", func() {
		r := request.New("HTTP")
		r.Parse([]byte("GET / HTTP/1.1\r\nHost: x\r\nConnection: close\r\n\r\n"))
		Expect(r.Alive).To(BeFalse())
	})

	It("fails a header line with no colon with 400", func() {
		r := request.New("HTTP")
		n := r.Parse([]byte("GET / HTTP/1.1\r\nNoColonHere\r\n\r\n"))
		Expect(n).To(Equal(-httpstatus.BadRequest))
	})

	It("yields exactly one 400 for an over-length header line and no overrun", func() {
		r := request.New("HTTP")
		long := strings.Repeat("a", 8193)
		n := r.Parse([]byte("GET /" + long + " HTTP/1.1\r\n\r\n"))
		Expect(n).To(Equal(-httpstatus.BadRequest))
	})
})
