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

package certificates

import (
	"io"

	tlscrt "github.com/nabbar/liso/certificates/certs"
	tlscpr "github.com/nabbar/liso/certificates/cipher"
	tlscrv "github.com/nabbar/liso/certificates/curves"
	tlsvrs "github.com/nabbar/liso/certificates/tlsversion"
)

// config is the single server-certificate TLS configuration this server
// needs: one key+cert pair, a cipher list, a curve list and a version
// range. There is no root CA pool and no client CA pool: this server never
// verifies a client certificate.
type config struct {
	rand                  io.Reader
	cert                  []tlscrt.Cert
	cipherList            []tlscpr.Cipher
	curveList             []tlscrv.Curves
	tlsMinVersion         tlsvrs.Version
	tlsMaxVersion         tlsvrs.Version
	dynSizingDisabled     bool
	ticketSessionDisabled bool
}

func (o *config) RegisterRand(rand io.Reader) {
	o.rand = rand
}

func (o *config) cloneCipherList() []tlscpr.Cipher {
	if o.cipherList == nil {
		return nil
	}
	return append(make([]tlscpr.Cipher, 0, len(o.cipherList)), o.cipherList...)
}

func (o *config) cloneCurveList() []tlscrv.Curves {
	if o.curveList == nil {
		return nil
	}
	return append(make([]tlscrv.Curves, 0, len(o.curveList)), o.curveList...)
}

func (o *config) cloneCertificates() []tlscrt.Cert {
	if o.cert == nil {
		return nil
	}
	return append(make([]tlscrt.Cert, 0, len(o.cert)), o.cert...)
}

func (o *config) Clone() TLSConfig {
	return &config{
		rand:                  o.rand,
		cert:                  o.cloneCertificates(),
		cipherList:            o.cloneCipherList(),
		curveList:             o.cloneCurveList(),
		tlsMinVersion:         o.tlsMinVersion,
		tlsMaxVersion:         o.tlsMaxVersion,
		dynSizingDisabled:     o.dynSizingDisabled,
		ticketSessionDisabled: o.ticketSessionDisabled,
	}
}

func asStruct(cfg TLSConfig) *config {
	if c, ok := cfg.(*config); ok {
		return c
	}
	return nil
}
