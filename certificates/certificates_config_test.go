/*
 *  MIT License
 *
 *  Copyright (c) 2020 Nicolas JUHEL
 *
 *  Permission is hereby granted, free of charge, to any person obtaining a copy
 *  of this software and associated documentation files (the "Software"), to deal
 *  in the Software without restriction, including without limitation the rights
 *  to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *  copies of the Software, and to permit persons to whom the Software is
 *  furnished to do so, subject to the following conditions:
 *
 *  The above copyright notice and this permission notice shall be included in all
 *  copies or substantial portions of the Software.
 *
 *  THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *  IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *  FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *  AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *  LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *  OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *  SOFTWARE.
 *
 */

package certificates_test

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"encoding/pem"
	"math/big"
	"os"
	"time"

	libtls "github.com/nabbar/liso/certificates"
	tlscrt "github.com/nabbar/liso/certificates/certs"
	tlsvrs "github.com/nabbar/liso/certificates/tlsversion"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// makeIdentity returns a fresh self-signed server identity for localhost
// as two PEM blobs, certificate then PKCS#8 private key.
func makeIdentity() (pub []byte, key []byte) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	Expect(err).ToNot(HaveOccurred())

	tmpl := x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "localhost"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		DNSNames:              []string{"localhost"},
	}

	der, err := x509.CreateCertificate(rand.Reader, &tmpl, &tmpl, &priv.PublicKey, priv)
	Expect(err).ToNot(HaveOccurred())

	bufPub := bytes.NewBuffer(nil)
	Expect(pem.Encode(bufPub, &pem.Block{Type: "CERTIFICATE", Bytes: der})).To(Succeed())

	pk, err := x509.MarshalPKCS8PrivateKey(priv)
	Expect(err).ToNot(HaveOccurred())

	bufKey := bytes.NewBuffer(nil)
	Expect(pem.Encode(bufKey, &pem.Block{Type: "PRIVATE KEY", Bytes: pk})).To(Succeed())

	return bufPub.Bytes(), bufKey.Bytes()
}

// writeIdentityFiles stores a fresh identity into keyFile/pubFile, the way
// the CLI hands the server its key and certificate paths.
func writeIdentityFiles() {
	pub, key := makeIdentity()
	Expect(os.WriteFile(keyFile, key, 0600)).To(Succeed())
	Expect(os.WriteFile(pubFile, pub, 0640)).To(Succeed())
}

// configJSON builds the serialized single-identity config this server
// reads: one certificate entry (however expressed), the full cipher and
// curve lists, and a 1.2-1.3 version range.
func configJSON(certEntry []byte) []byte {
	return []byte(`{
    "certs": [` + string(certEntry) + `],
    "cipherList": ["ECDHE_RSA_AES_128_GCM_SHA256", "ECDHE_ECDSA_AES_128_GCM_SHA256", "ECDHE_RSA_CHACHA20_POLY1305_SHA256", "ECDHE_ECDSA_CHACHA20_POLY1305_SHA256", "AES_128_GCM_SHA256", "AES_256_GCM_SHA384", "CHACHA20_POLY1305_SHA256"],
    "curveList": ["X25519", "P256", "P384", "P521"],
    "versionMin": "1.2",
    "versionMax": "1.3"
  }`)
}

func pairFileEntry() []byte {
	writeIdentityFiles()

	p, e := json.Marshal(&tlscrt.ConfigPair{Key: keyFile, Pub: pubFile})
	Expect(e).ToNot(HaveOccurred())

	return p
}

func chainEntry() []byte {
	pub, key := makeIdentity()

	p, e := json.Marshal("\n" + string(pub) + string(key))
	Expect(e).ToNot(HaveOccurred())

	return p
}

var _ = Describe("certificates config", func() {
	Context("decoding a JSON config", func() {
		It("builds a working TLSConfig from a key/cert file pair", func() {
			var cfg libtls.Config
			Expect(json.Unmarshal(configJSON(pairFileEntry()), &cfg)).To(Succeed())
			Expect(cfg.Validate()).To(BeNil())

			cnf := cfg.New()
			Expect(cnf).ToNot(BeNil())
			Expect(cnf.GetCertificatePair()).To(HaveLen(1))

			cfgtls := cnf.TLS("localhost")
			Expect(cfgtls).ToNot(BeNil())
			Expect(cfgtls.Certificates).To(HaveLen(1))
			Expect(cfgtls.CipherSuites).ToNot(BeEmpty())
			Expect(cfgtls.CurvePreferences).ToNot(BeEmpty())
			Expect(cfgtls.MinVersion).To(Equal(tlsvrs.VersionTLS12.TLS()))
			Expect(cfgtls.MaxVersion).To(Equal(tlsvrs.VersionTLS13.TLS()))
			Expect(cfgtls.ClientAuth).To(Equal(tls.NoClientCert))
		})

		It("builds the same TLSConfig from one inline chain", func() {
			var cfg libtls.Config
			Expect(json.Unmarshal(configJSON(chainEntry()), &cfg)).To(Succeed())

			cnf := cfg.New()
			Expect(cnf).ToNot(BeNil())
			Expect(cnf.GetCertificatePair()).To(HaveLen(1))

			cfgtls := cnf.TLS("localhost")
			Expect(cfgtls.Certificates).To(HaveLen(1))
			Expect(cfgtls.CipherSuites).ToNot(BeEmpty())
		})

		It("round-trips the built config back to its serializable form", func() {
			var cfg libtls.Config
			Expect(json.Unmarshal(configJSON(pairFileEntry()), &cfg)).To(Succeed())

			cnf := cfg.New()
			Expect(cnf).ToNot(BeNil())

			p, e := json.Marshal(cnf.Config())
			Expect(e).ToNot(HaveOccurred())
			Expect(p).ToNot(BeEmpty())

			var back libtls.Config
			Expect(json.Unmarshal(p, &back)).To(Succeed())
			Expect(back.Certs).To(HaveLen(1))
		})
	})

	Context("validating a config", func() {
		It("rejects a config with no certificate entry", func() {
			var cfg libtls.Config
			Expect(cfg.Validate()).ToNot(BeNil())
		})
	})
})
