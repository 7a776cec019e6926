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

package certs_test

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"time"

	. "github.com/nabbar/liso/certificates/certs"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// selfSignedPEM returns a fresh self-signed server identity as two PEM
// blobs, certificate first, PKCS#8 private key second.
func selfSignedPEM() (pub string, key string) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	Expect(err).ToNot(HaveOccurred())

	tmpl := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "liso"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}

	der, err := x509.CreateCertificate(rand.Reader, &tmpl, &tmpl, &priv.PublicKey, priv)
	Expect(err).ToNot(HaveOccurred())

	bufPub := bytes.NewBuffer(nil)
	Expect(pem.Encode(bufPub, &pem.Block{Type: "CERTIFICATE", Bytes: der})).To(Succeed())

	pk, err := x509.MarshalPKCS8PrivateKey(priv)
	Expect(err).ToNot(HaveOccurred())

	bufKey := bytes.NewBuffer(nil)
	Expect(pem.Encode(bufKey, &pem.Block{Type: "PRIVATE KEY", Bytes: pk})).To(Succeed())

	return bufPub.String(), bufKey.String()
}

var _ = Describe("certs", func() {
	It("ParsePair builds a usable pair from inline PEM", func() {
		pub, key := selfSignedPEM()

		c, err := ParsePair(key, pub)
		Expect(err).ToNot(HaveOccurred())
		Expect(c.IsPair()).To(BeTrue())
		Expect(c.IsChain()).To(BeFalse())
		Expect(c.IsFile()).To(BeFalse())
		Expect(c.GetCerts()).To(HaveLen(2))

		tlsC := c.TLS()
		Expect(tlsC.Certificate).ToNot(BeEmpty())
		Expect(tlsC.PrivateKey).ToNot(BeNil())
	})

	It("ParsePair resolves file paths the same way as inline PEM", func() {
		pub, key := selfSignedPEM()
		dir := GinkgoT().TempDir()

		keyPath := filepath.Join(dir, "liso.key")
		pubPath := filepath.Join(dir, "liso.crt")
		Expect(os.WriteFile(keyPath, []byte(key), 0600)).To(Succeed())
		Expect(os.WriteFile(pubPath, []byte(pub), 0640)).To(Succeed())

		c, err := ParsePair(keyPath, pubPath)
		Expect(err).ToNot(HaveOccurred())
		Expect(c.IsFile()).To(BeTrue())
		Expect(c.TLS().Certificate).ToNot(BeEmpty())
	})

	It("Parse builds a usable identity from one concatenated chain", func() {
		pub, key := selfSignedPEM()

		c, err := Parse(pub + key)
		Expect(err).ToNot(HaveOccurred())
		Expect(c.IsChain()).To(BeTrue())
		Expect(c.IsPair()).To(BeFalse())
		Expect(c.GetCerts()).To(HaveLen(1))
		Expect(c.TLS().PrivateKey).ToNot(BeNil())
	})

	It("Parse rejects a chain with no private key", func() {
		pub, _ := selfSignedPEM()

		_, err := Parse(pub)
		Expect(err).To(HaveOccurred())
	})

	It("renders Chain and Pair views of the same identity", func() {
		pub, key := selfSignedPEM()

		c, err := ParsePair(key, pub)
		Expect(err).ToNot(HaveOccurred())

		chain, err := c.Chain()
		Expect(err).ToNot(HaveOccurred())
		Expect(chain).To(ContainSubstring("BEGIN CERTIFICATE"))

		p, k, err := c.Pair()
		Expect(err).ToNot(HaveOccurred())
		Expect(p).To(ContainSubstring("BEGIN CERTIFICATE"))
		Expect(k).To(ContainSubstring("PRIVATE KEY"))

		Expect(c.String()).To(ContainSubstring("BEGIN CERTIFICATE"))
	})

	It("round-trips a pair through JSON keeping its pair shape", func() {
		pub, key := selfSignedPEM()

		c, err := ParsePair(key, pub)
		Expect(err).ToNot(HaveOccurred())

		b, err := json.Marshal(c)
		Expect(err).ToNot(HaveOccurred())

		var m Certif
		Expect(json.Unmarshal(b, &m)).To(Succeed())
		Expect(m.IsPair()).To(BeTrue())
		Expect(m.TLS().Certificate).ToNot(BeEmpty())
	})

	It("UnmarshalTOML falls back to chain parsing for string and byte input", func() {
		pub, key := selfSignedPEM()
		chain := pub + key

		var s Certif
		Expect(s.UnmarshalTOML(chain)).To(Succeed())
		Expect(s.TLS().Certificate).ToNot(BeEmpty())

		var b Certif
		Expect(b.UnmarshalTOML([]byte(chain))).To(Succeed())
		Expect(b.TLS().Certificate).ToNot(BeEmpty())
	})

	It("round-trips through the text and binary encodings", func() {
		pub, key := selfSignedPEM()

		c, err := Parse(pub + key)
		Expect(err).ToNot(HaveOccurred())

		txt, err := c.MarshalText()
		Expect(err).ToNot(HaveOccurred())
		var t Certif
		Expect(t.UnmarshalText(txt)).To(Succeed())
		Expect(t.TLS().Certificate).ToNot(BeEmpty())

		bin, err := c.MarshalBinary()
		Expect(err).ToNot(HaveOccurred())
		var m Certif
		Expect(m.UnmarshalBinary(bin)).To(Succeed())
		Expect(m.TLS().Certificate).ToNot(BeEmpty())
	})
})
