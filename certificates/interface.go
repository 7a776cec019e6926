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

// Package certificates configures the single server-side TLS identity this
// server presents to clients: a certificate pair, a cipher list, a curve
// list, and a TLS version range. There is no root CA pool, no client CA
// pool and no client-auth mode: this server never authenticates a client
// certificate.
package certificates

import (
	"crypto/tls"
	"io"

	tlscrt "github.com/nabbar/liso/certificates/certs"
	tlscpr "github.com/nabbar/liso/certificates/cipher"
	tlscrv "github.com/nabbar/liso/certificates/curves"
	tlsvrs "github.com/nabbar/liso/certificates/tlsversion"
)

// TLSConfig configures a server-side tls.Config. This server builds one
// TLSConfig at startup from the CLI-supplied key/cert pair and does not
// mutate it concurrently afterwards.
type TLSConfig interface {
	RegisterRand(rand io.Reader)

	AddCertificatePairString(key, crt string) error
	AddCertificatePairFile(keyFile, crtFile string) error
	LenCertificatePair() int
	CleanCertificatePair()
	GetCertificatePair() []tls.Certificate

	SetVersionMin(v tlsvrs.Version)
	GetVersionMin() tlsvrs.Version
	SetVersionMax(v tlsvrs.Version)
	GetVersionMax() tlsvrs.Version

	SetCipherList(c []tlscpr.Cipher)
	AddCiphers(c ...tlscpr.Cipher)
	GetCiphers() []tlscpr.Cipher

	SetCurveList(c []tlscrv.Curves)
	AddCurves(c ...tlscrv.Curves)
	GetCurves() []tlscrv.Curves

	SetDynamicSizingDisabled(flag bool)
	SetSessionTicketDisabled(flag bool)

	Clone() TLSConfig
	TLS(serverName string) *tls.Config
	TlsConfig(serverName string) *tls.Config
	Config() *Config
}

var Default = New()

// New returns a new TLSConfig pinned to TLSv1 server mode, with no
// certificate pair and no cipher/curve restriction until the caller sets
// one.
func New() TLSConfig {
	return &config{
		rand:                  nil,
		cert:                  make([]tlscrt.Cert, 0),
		cipherList:            make([]tlscpr.Cipher, 0),
		curveList:             make([]tlscrv.Curves, 0),
		tlsMinVersion:         tlsvrs.VersionTLS10,
		tlsMaxVersion:         tlsvrs.VersionTLS10,
		dynSizingDisabled:     false,
		ticketSessionDisabled: false,
	}
}
