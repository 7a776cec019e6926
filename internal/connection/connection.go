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

// Package connection implements the composite per-connection state
// machine: one client socket plus its request, response and CGI
// sub-states, orchestrated across Start/Header/Body/Done/Abort
// (request), Ready/Header/Body/Abort/Error/Disabled (response) and
// Idle/Ready/SrvToCgi/CgiToSrv/Done/Abort (CGI).
//
// Each connection runs its own goroutine and drives every phase
// transition in a straight-line Serve call, blocking on I/O only
// within that goroutine; the runtime's netpoller does the readiness
// multiplexing.
package connection

import (
	"bytes"
	"io"
	"net"

	"github.com/nabbar/liso/internal/buffer"
	"github.com/nabbar/liso/internal/cgi"
	"github.com/nabbar/liso/internal/httpstatus"
	"github.com/nabbar/liso/internal/request"
	"github.com/nabbar/liso/internal/response"
	"github.com/nabbar/liso/internal/tlsadapter"
)

// Logger is the minimal diagnostic sink a Connection needs; satisfied
// by *logger.Logger without an import cycle back into that package.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Raw(p []byte) error
	Flush() error
}

// Config is the subset of server-wide configuration a connection needs
// to resolve static files and spawn CGI children.
type Config struct {
	DocumentRoot string
	CGIProgram   string
	ServerName   string
}

// Connection owns one client socket (optionally TLS) plus one request,
// one response and one CGI context. Exactly one of response or CGI
// drives outgoing data at a time; the other is Disabled.
type Connection struct {
	id     int64
	sock   *tlsadapter.Conn
	scheme string
	cfg    Config
	log    Logger

	buf  *buffer.Buffer
	req  *request.Request
	resp *response.Response
	cgi  *cgi.CGI
}

// New returns a Connection ready to Serve over sock, which the caller has
// already wrapped (with or without TLS) for scheme ("HTTP" or "HTTPS").
func New(id int64, sock *tlsadapter.Conn, scheme string, cfg Config, log Logger) *Connection {
	return &Connection{
		id:     id,
		sock:   sock,
		scheme: scheme,
		cfg:    cfg,
		log:    log,
		buf:    buffer.Allocate(buffer.DefaultCapacity),
		req:    request.New(scheme),
		resp:   response.New(),
		cgi:    cgi.New(),
	}
}

// Close releases the client socket and any file mapped into the
// response.
func (c *Connection) Close() error {
	c.resp.Reset()
	return c.sock.Close()
}

// Serve drives the connection through as many keep-alive transactions
// as the client requests, until either side closes it or a protocol
// error forces a close. It never returns an error: all failures are
// logged and resolved into closing the connection: protocol errors are
// answered with a canned error page first, resource errors close
// outright, and process-level faults belong to main, not here.
func (c *Connection) Serve() {
	defer func() { _ = c.Close() }()

	if e := c.sock.Handshake(); e != nil {
		if c.log != nil {
			c.log.Errorf("conn %d: tls handshake failed: %v", c.id, e)
		}
		return
	}

	for {
		alive := c.serveOne()
		if !alive {
			return
		}
	}
}

// serveOne drives exactly one HTTP transaction: recycle state, parse a
// request, dispatch to the static or CGI path, and report whether the
// connection should be recycled for another transaction.
func (c *Connection) serveOne() bool {
	carry := c.carryOver()

	c.req.Reset()
	c.resp.Reset()
	c.cgi.Reset()
	c.buf.Reset()

	if len(carry) > 0 {
		n := copy(c.buf.Tail(), carry)
		c.buf.Grow(n)
		c.req.Carry = nil
	}

	status, closed := c.readHeaders()
	if closed {
		return false
	}

	if status != 0 {
		// The buffer position after a parse failure is not reliably
		// resumable, so the connection always closes after the error
		// page; the header says so.
		c.resp.Alive = false
		c.resp.Abort(status)
		c.sendFrame(c.resp.AssembleError())
		return false
	}

	if c.req.Kind == request.KindDynamic {
		return c.serveDynamic()
	}

	return c.serveStatic()
}

// carryOver extracts any bytes left unread in buf (the next pipelined
// request's bytes that arrived past this request's content-length
// boundary) before the buffer is reset for recycling.
func (c *Connection) carryOver() []byte {
	if c.buf.Remaining() == 0 {
		return nil
	}

	cp := make([]byte, c.buf.Remaining())
	copy(cp, c.buf.Unread())
	c.req.Carry = cp

	return cp
}

// readHeaders drives the Start/Header phases of the request parser:
// refill the buffer from the socket, feed complete lines to
// the request parser, and stop either on a parse failure (returns its
// negative status) or on reaching Body phase (returns 0). A full
// buffer with no complete line yet (the 8193-byte header line case) is
// reported as 400 without ever overrunning the buffer. The second
// return value reports a clean or fatal close with nothing left to
// answer.
func (c *Connection) readHeaders() (status int, closed bool) {
	for {
		n := c.req.Parse(c.buf.Unread())
		if n < 0 {
			return -n, false
		}

		c.buf.Advance(n)

		if c.req.Phase == request.PhaseBody {
			return 0, false
		}

		if c.buf.Tail() == nil {
			return httpstatus.BadRequest, false
		}

		nr, e := c.sock.Read(c.buf.Tail())
		if nr == 0 || e != nil {
			return 0, true
		}

		c.buf.Grow(nr)
	}
}

// serveStatic handles a static-file request: CGI stays Disabled, the
// request body (if any) is drained without interpretation, the
// response is resolved and sent, and the connection recycles or closes
// per the mirrored alive flag.
func (c *Connection) serveStatic() bool {
	c.cgi.Phase = cgi.PhaseDisabled

	if e := c.consumeBody(nil); e != nil {
		return false
	}

	if !c.resp.Resolve(c.req.URI, c.cfg.DocumentRoot, c.req.Alive) {
		c.resp.Abort(httpstatus.NotFound)

		if !c.sendFrame(c.resp.AssembleError()) {
			return false
		}

		return c.recycleOrClose()
	}

	header := c.resp.SerializeHeader()
	c.resp.Phase = response.PhaseHeader

	if !c.sendFrame(header) {
		return false
	}

	if c.req.Method == request.MethodHead || c.resp.ContentLength == 0 {
		return c.recycleOrClose()
	}

	c.resp.Phase = response.PhaseBody

	if c.resp.File != nil {
		for off := 0; int64(off) < c.resp.ContentLength; {
			end := off + buffer.DefaultCapacity
			if int64(end) > c.resp.ContentLength {
				end = int(c.resp.ContentLength)
			}

			if !c.sendFrame(c.resp.File.Region()[off:end]) {
				return false
			}

			off = end
		}
	}

	return c.recycleOrClose()
}

// serveDynamic handles a CGI request: Response stays Disabled, the
// CGI child owns the reply stream. The Ready -> SrvToCgi -> CgiToSrv
// -> Done phase machine runs to completion before this call returns.
func (c *Connection) serveDynamic() bool {
	c.resp.Phase = response.PhaseDisabled
	c.cgi.Phase = cgi.PhaseReady

	env := cgi.BuildEnv(c.req, c.cfg.ServerName)

	if e := c.cgi.Spawn(c.cfg.CGIProgram, env, c.logCGIStderr); e != nil {
		if c.log != nil {
			c.log.Errorf("conn %d: cgi spawn failed: %v", c.id, e)
			_ = c.log.Flush()
		}

		c.resp.Phase = response.PhaseReady
		c.resp.Alive = false
		c.resp.Abort(httpstatus.InternalServerError)
		c.sendFrame(c.resp.AssembleError())

		return false
	}

	bodyErr := c.consumeBody(c.cgi.WriteBody)

	if e := c.cgi.CloseInput(); e != nil && c.log != nil {
		c.log.Errorf("conn %d: cgi stdin close: %v", c.id, e)
	}

	// Reaping must wait until the relay has drained cgi_out_read:
	// exec.Cmd.Wait closes the parent pipe ends once the child exits,
	// and a concurrent Wait would turn the relay's EOF into a
	// closed-pipe error. Waiter stays bound to this child even after
	// the context is recycled for the next request.
	reap := c.cgi.Waiter()
	pid := c.cgi.Pid

	defer func() {
		go func() {
			if e := reap(); e != nil && c.log != nil {
				c.log.Infof("conn %d: cgi[%d] exited: %v", c.id, pid, e)
			}
		}()
	}()

	if bodyErr != nil {
		return false
	}

	if !c.relayCGI() {
		return false
	}

	c.resp.Alive = c.req.Alive

	return c.recycleOrClose()
}

// relayCGI alternates the CgiToSrv Recv/Send sub-phases: read up to
// buffer capacity from the child's stdout, forward verbatim to the
// client. The server never interprets the CGI's own response headers;
// emitting a valid HTTP response is the child's job. A read hitting
// EOF is the Done transition; any other read error aborts the relay.
// If nothing has reached the client yet, a synthesized 500 is still
// possible; once bytes are already in flight, the channel is simply
// closed, since a valid HTTP response can no longer be constructed
// over it.
func (c *Connection) relayCGI() bool {
	relay := make([]byte, buffer.DefaultCapacity)
	forwarded := 0

	for {
		n, e := c.cgi.ReadStdout(relay)

		if n > 0 {
			forwarded += n
			c.cgi.Sub = cgi.SubSend

			if _, we := c.sock.Write(relay[:n]); we != nil {
				c.cgi.Phase = cgi.PhaseAbort
				return false
			}

			c.cgi.Sub = cgi.SubRecv
		}

		if e == io.EOF {
			c.cgi.Phase = cgi.PhaseDone
			return true
		}

		if e != nil {
			c.cgi.Phase = cgi.PhaseAbort

			if forwarded == 0 {
				c.resp.Phase = response.PhaseReady
				c.resp.Alive = false
				c.resp.Abort(httpstatus.InternalServerError)
				c.sendFrame(c.resp.AssembleError())
			}

			return false
		}
	}
}

// logCGIStderr forwards whatever arrives on the child's stderr to the
// log under the child's pid: a formatted marker line followed by the
// raw bytes unformatted.
func (c *Connection) logCGIStderr(pid int, p []byte) {
	if c.log == nil {
		return
	}

	c.log.Errorf("cgi[%d]: stderr", pid)
	_ = c.log.Raw(bytes.TrimRight(p, "\r\n"))
}

// consumeBody drains exactly req.Remaining bytes of the request body,
// in order, handing each chunk to sink (nil for STATIC, which does not
// interpret the body). Bytes already sitting in buf are used first;
// further bytes are read from the socket directly into buf, so any
// surplus past the body boundary (the next pipelined request) is left
// untouched in buf for carryOver to find.
func (c *Connection) consumeBody(sink func([]byte)) error {
	for c.req.Remaining > 0 {
		if c.buf.Remaining() == 0 {
			c.buf.Reset()

			nr, e := c.sock.Read(c.buf.Tail())
			if nr == 0 || e != nil {
				return ErrorConnectionClosed.Error(nil)
			}

			c.buf.Grow(nr)
		}

		take := c.buf.Remaining()
		if int64(take) > c.req.Remaining {
			take = int(c.req.Remaining)
		}

		chunk := c.buf.Unread()[:take]
		if sink != nil {
			sink(chunk)
		}

		c.buf.Advance(take)
		c.req.Remaining -= int64(take)
	}

	c.req.Phase = request.PhaseDone

	return nil
}

// sendFrame writes p to the client in full, looping on short writes.
// It reports false on any write error, which the caller treats as
// fatal to the connection.
func (c *Connection) sendFrame(p []byte) bool {
	for len(p) > 0 {
		n, e := c.sock.Write(p)
		if e != nil {
			return false
		}

		p = p[n:]
	}

	return true
}

// recycleOrClose ends one transaction: if the response's mirrored
// alive flag is clear, the connection closes; otherwise it reports
// alive so Serve's loop calls serveOne again, which performs the
// actual state reset.
func (c *Connection) recycleOrClose() bool {
	return c.resp.Alive
}

// RemoteAddr exposes the client address for connection-accept logging.
func (c *Connection) RemoteAddr() net.Addr {
	return c.sock.RemoteAddr()
}
