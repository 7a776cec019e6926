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

// Package tlsadapter wraps a raw
// net.Conn with an optional TLS session so the rest of the connection
// state machine sees one unified Read/Write, regardless of scheme.
package tlsadapter

import (
	"context"
	"crypto/tls"
	"net"
)

// Conn wraps one client socket plus its optional TLS session. A Conn
// created without a *tls.Config talks the raw socket directly;
// otherwise Read/Write go through the TLS record layer once Handshake
// has succeeded.
type Conn struct {
	raw      net.Conn
	session  *tls.Conn
	accepted bool
}

// Wrap returns a Conn over raw. When cfg is non-nil the connection
// carries a server-side TLS session; when cfg is nil, Read/Write and
// Handshake operate directly on raw.
func Wrap(raw net.Conn, cfg *tls.Config) *Conn {
	c := &Conn{raw: raw}

	if cfg != nil {
		c.session = tls.Server(raw, cfg)
	}

	return c
}

// IsTLS reports whether this connection carries a TLS session.
func (c *Conn) IsTLS() bool {
	return c.session != nil
}

// Handshake performs the server-side TLS accept. On a plaintext
// connection it is a no-op that immediately marks accepted. On a TLS
// connection, success marks handshake-accepted; failure is fatal and
// the caller must close the connection, which releases the session
// with it. There is no would-block outcome in the goroutine model:
// tls.Conn.Handshake blocks the owning goroutine only, never the
// scheduler.
func (c *Conn) Handshake() error {
	if c.accepted {
		return nil
	}

	if c.session == nil {
		c.accepted = true
		return nil
	}

	if e := c.session.HandshakeContext(context.Background()); e != nil {
		return ErrorHandshakeFailed.Error(e)
	}

	c.accepted = true

	return nil
}

// Accepted reports whether the TLS handshake (or the plaintext no-op)
// has completed.
func (c *Conn) Accepted() bool {
	return c.accepted
}

// Read implements the unified recv path.
func (c *Conn) Read(p []byte) (int, error) {
	if c.session != nil {
		return c.session.Read(p)
	}

	return c.raw.Read(p)
}

// Write implements the unified send path.
func (c *Conn) Write(p []byte) (int, error) {
	if c.session != nil {
		return c.session.Write(p)
	}

	return c.raw.Write(p)
}

// Close releases the TLS session (if any) and the underlying socket.
func (c *Conn) Close() error {
	if c.session != nil {
		return c.session.Close()
	}

	return c.raw.Close()
}

// RemoteAddr exposes the client address for diagnostic logging.
func (c *Conn) RemoteAddr() net.Addr {
	return c.raw.RemoteAddr()
}
