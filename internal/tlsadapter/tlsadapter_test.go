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

package tlsadapter_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"net"
	"time"

	"github.com/nabbar/liso/internal/tlsadapter"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func selfSignedConfig() *tls.Config {
	key, e := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	Expect(e).ToNot(HaveOccurred())

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "liso-test"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}

	der, e := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	Expect(e).ToNot(HaveOccurred())

	cert := tls.Certificate{Certificate: [][]byte{der}, PrivateKey: key}

	return &tls.Config{Certificates: []tls.Certificate{cert}}
}

var _ = Describe("Conn", func() {
	It("is a no-op handshake on a plaintext connection", func() {
		server, client := net.Pipe()
		defer client.Close()

		c := tlsadapter.Wrap(server, nil)
		Expect(c.IsTLS()).To(BeFalse())
		Expect(c.Handshake()).To(Succeed())
		Expect(c.Accepted()).To(BeTrue())
	})

	It("marks accepted after a successful TLS handshake", func() {
		serverRaw, clientRaw := net.Pipe()
		defer clientRaw.Close()

		srv := tlsadapter.Wrap(serverRaw, selfSignedConfig())
		Expect(srv.IsTLS()).To(BeTrue())

		done := make(chan error, 1)
		go func() { done <- srv.Handshake() }()

		cli := tls.Client(clientRaw, &tls.Config{InsecureSkipVerify: true})
		Expect(cli.Handshake()).To(Succeed())

		Expect(<-done).To(Succeed())
		Expect(srv.Accepted()).To(BeTrue())
	})

	It("relays bytes through the TLS session once accepted", func() {
		serverRaw, clientRaw := net.Pipe()
		defer clientRaw.Close()

		srv := tlsadapter.Wrap(serverRaw, selfSignedConfig())

		done := make(chan error, 1)
		go func() { done <- srv.Handshake() }()

		cli := tls.Client(clientRaw, &tls.Config{InsecureSkipVerify: true})
		Expect(cli.Handshake()).To(Succeed())
		Expect(<-done).To(Succeed())

		go func() { _, _ = srv.Write([]byte("hello")) }()

		buf := make([]byte, 5)
		n, e := cli.Read(buf)
		Expect(e).ToNot(HaveOccurred())
		Expect(string(buf[:n])).To(Equal("hello"))
	})
})
