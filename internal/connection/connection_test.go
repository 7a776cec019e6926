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

package connection_test

import (
	"bufio"
	"io"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nabbar/liso/internal/connection"
	"github.com/nabbar/liso/internal/tlsadapter"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type nopLogger struct{}

func (nopLogger) Infof(format string, args ...interface{})  {}
func (nopLogger) Errorf(format string, args ...interface{}) {}
func (nopLogger) Raw(p []byte) error                        { return nil }
func (nopLogger) Flush() error                              { return nil }

// readResponse reads one HTTP/1.1 response (headers + Content-Length
// body) off r and returns the status line, headers and body.
func readResponse(r *bufio.Reader) (statusLine string, headers map[string]string, body []byte) {
	statusLine, headers = readResponseHead(r)

	if cl, ok := headers["Content-Length"]; ok {
		n, _ := strconv.Atoi(cl)
		body = make([]byte, n)
		if n > 0 {
			_, e := io.ReadFull(r, body)
			Expect(e).ToNot(HaveOccurred())
		}
	}

	return statusLine, headers, body
}

// readResponseHead reads only the status line and headers, for HEAD
// responses whose Content-Length describes a body that is never sent.
func readResponseHead(r *bufio.Reader) (statusLine string, headers map[string]string) {
	headers = map[string]string{}

	line, e := r.ReadString('\n')
	Expect(e).ToNot(HaveOccurred())
	statusLine = strings.TrimRight(line, "\r\n")

	for {
		line, e = r.ReadString('\n')
		Expect(e).ToNot(HaveOccurred())
		line = strings.TrimRight(line, "\r\n")

		if line == "" {
			break
		}

		idx := strings.IndexByte(line, ':')
		headers[strings.TrimSpace(line[:idx])] = strings.TrimSpace(line[idx+1:])
	}

	return statusLine, headers
}

func newServedPair(docRoot string) (client net.Conn, reader *bufio.Reader) {
	return newServedPairCGI(docRoot, "")
}

func newServedPairCGI(docRoot, cgiProgram string) (client net.Conn, reader *bufio.Reader) {
	serverRaw, clientRaw := net.Pipe()

	conn := connection.New(1, tlsadapter.Wrap(serverRaw, nil), "HTTP", connection.Config{
		DocumentRoot: docRoot,
		CGIProgram:   cgiProgram,
		ServerName:   "x",
	}, nopLogger{})

	go conn.Serve()

	return clientRaw, bufio.NewReader(clientRaw)
}

var _ = Describe("Connection", func() {
	It("serves an index.html file with 200 and matching Content-Length", func() {
		dir := GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(dir, "index.html"), []byte("hello"), 0640)).To(Succeed())

		client, r := newServedPair(dir)
		defer client.Close()

		_, e := client.Write([]byte("GET / HTTP/1.1\r\nHost: x\r\nConnection: close\r\n\r\n"))
		Expect(e).ToNot(HaveOccurred())

		status, headers, body := readResponse(r)
		Expect(status).To(Equal("HTTP/1.1 200 OK"))
		Expect(headers["Content-Type"]).To(Equal("text/html"))
		Expect(headers["Content-Length"]).To(Equal("5"))
		Expect(string(body)).To(Equal("hello"))
	})

	It("returns 404 with a canned body for a missing file", func() {
		dir := GinkgoT().TempDir()

		client, r := newServedPair(dir)
		defer client.Close()

		_, e := client.Write([]byte("GET /missing HTTP/1.1\r\nHost: x\r\n\r\n"))
		Expect(e).ToNot(HaveOccurred())

		status, headers, body := readResponse(r)
		Expect(status).To(Equal("HTTP/1.1 404 Not Found"))
		Expect(strconv.Itoa(len(body))).To(Equal(headers["Content-Length"]))
	})

	It("returns 501 for an unsupported method", func() {
		dir := GinkgoT().TempDir()

		client, r := newServedPair(dir)
		defer client.Close()

		_, e := client.Write([]byte("PUT /x HTTP/1.1\r\nHost: x\r\n\r\n"))
		Expect(e).ToNot(HaveOccurred())

		status, _, _ := readResponse(r)
		Expect(status).To(Equal("HTTP/1.1 501 Not Implemented"))
	})

	It("returns 411 for a POST without Content-Length", func() {
		dir := GinkgoT().TempDir()

		client, r := newServedPair(dir)
		defer client.Close()

		_, e := client.Write([]byte("POST /x HTTP/1.1\r\nHost: x\r\n\r\n"))
		Expect(e).ToNot(HaveOccurred())

		status, _, _ := readResponse(r)
		Expect(status).To(Equal("HTTP/1.1 411 Length Required"))
	})

	It("serves two pipelined requests on the same connection", func() {
		dir := GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(dir, "index.html"), []byte("hi"), 0640)).To(Succeed())

		client, r := newServedPair(dir)
		defer client.Close()

		reqs := "GET / HTTP/1.1\r\nHost: x\r\n\r\nGET / HTTP/1.1\r\nHost: x\r\nConnection: close\r\n\r\n"
		_, e := client.Write([]byte(reqs))
		Expect(e).ToNot(HaveOccurred())

		s1, _, b1 := readResponse(r)
		Expect(s1).To(Equal("HTTP/1.1 200 OK"))
		Expect(string(b1)).To(Equal("hi"))

		s2, _, b2 := readResponse(r)
		Expect(s2).To(Equal("HTTP/1.1 200 OK"))
		Expect(string(b2)).To(Equal("hi"))
	})

	It("relays a POST body through a stdin-copying CGI child verbatim", func() {
		if _, e := exec.LookPath("cat"); e != nil {
			Skip("cat not available on PATH")
		}

		dir := GinkgoT().TempDir()

		client, r := newServedPairCGI(dir, "cat")
		defer client.Close()

		_, e := client.Write([]byte("POST /cgi/echo HTTP/1.1\r\nHost: x\r\nContent-Length: 5\r\nConnection: close\r\n\r\nhello"))
		Expect(e).ToNot(HaveOccurred())

		body, e := io.ReadAll(r)
		Expect(e).ToNot(HaveOccurred())
		Expect(string(body)).To(Equal("hello"))
	})

	It("answers 500 when the CGI program cannot be spawned", func() {
		dir := GinkgoT().TempDir()

		client, r := newServedPairCGI(dir, filepath.Join(dir, "no-such-cgi"))
		defer client.Close()

		_, e := client.Write([]byte("GET /cgi/echo HTTP/1.1\r\nHost: x\r\n\r\n"))
		Expect(e).ToNot(HaveOccurred())

		status, headers, _ := readResponse(r)
		Expect(status).To(Equal("HTTP/1.1 500 Internal Server Error"))
		Expect(headers["Connection"]).To(Equal("close"))
	})

	It("sends only the header for a HEAD request and recycles immediately", func() {
		dir := GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(dir, "index.html"), []byte("hello"), 0640)).To(Succeed())

		client, r := newServedPair(dir)
		defer client.Close()

		_, e := client.Write([]byte("HEAD / HTTP/1.1\r\nHost: x\r\n\r\n"))
		Expect(e).ToNot(HaveOccurred())

		status, headers := readResponseHead(r)
		Expect(status).To(Equal("HTTP/1.1 200 OK"))
		Expect(headers["Content-Length"]).To(Equal("5"))

		// A follow-up request on the same connection parses cleanly only
		// if the HEAD response carried no body bytes.
		_, e = client.Write([]byte("GET / HTTP/1.1\r\nHost: x\r\nConnection: close\r\n\r\n"))
		Expect(e).ToNot(HaveOccurred())

		status2, _, body2 := readResponse(r)
		Expect(status2).To(Equal("HTTP/1.1 200 OK"))
		Expect(string(body2)).To(Equal("hello"))
	})
})
