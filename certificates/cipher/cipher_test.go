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

package cipher_test

import (
	"crypto/tls"
	"encoding/json"
	"strings"

	"github.com/fxamacker/cbor/v2"
	. "github.com/nabbar/liso/certificates/cipher"
	"gopkg.in/yaml.v3"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("cipher", func() {
	It("Parse matches suite names regardless of case, separators and tls prefix", func() {
		Expect(Parse("TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256")).To(Equal(TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256))
		Expect(Parse("ecdhe-rsa-aes-128-gcm-sha256")).To(Equal(TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256))
		Expect(Parse("tls.chacha20_poly1305_sha256 ecdhe ecdsa")).To(Equal(TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256))
		Expect(Parse("aes_256_gcm_sha384")).To(Equal(TLS_AES_256_GCM_SHA384))
	})

	It("Parse returns Unknown for suites this server does not offer", func() {
		Expect(Parse("")).To(Equal(Unknown))
		Expect(Parse("rc4_md5")).To(Equal(Unknown))
		Expect(Parse("ecdhe_rsa_aes_128_cbc_sha")).To(Equal(Unknown))
		Expect(Parse("unknown_cipher")).To(Equal(Unknown))
	})

	It("Parse(String) is the identity over the offered suite list", func() {
		for _, c := range List() {
			Expect(c.Code()).ToNot(BeEmpty())
			Expect(c.String()).To(Equal(strings.Join(c.Code(), "_")))
			Expect(Parse(c.String())).To(Equal(c))
		}
	})

	It("ParseInt maps ECDSA suite IDs to the ECDSA constants, not the RSA ones", func() {
		Expect(ParseInt(int(tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256))).To(Equal(TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256))
		Expect(ParseInt(int(tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384))).To(Equal(TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384))
		Expect(ParseInt(int(tls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256))).To(Equal(TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256))
		Expect(ParseInt(int(tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256))).ToNot(Equal(TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256))
	})

	It("ParseInt round-trips every offered suite and rejects the rest", func() {
		for _, c := range List() {
			Expect(ParseInt(int(c.Uint16()))).To(Equal(c))
		}

		Expect(ParseInt(0)).To(Equal(Unknown))
		Expect(ParseInt(int(tls.TLS_FALLBACK_SCSV))).To(Equal(Unknown))
		Expect(ParseInt(1 << 20)).To(Equal(Unknown))
	})

	It("Check accepts exactly the offered suite IDs", func() {
		for _, c := range List() {
			Expect(Check(c.Uint16())).To(BeTrue())
		}

		Expect(Check(tls.TLS_RSA_WITH_AES_128_CBC_SHA)).To(BeFalse())
		Expect(Check(0)).To(BeFalse())
	})

	It("ListString names as many suites as List", func() {
		Expect(ListString()).To(HaveLen(len(List())))
	})

	It("round-trips through JSON, YAML, CBOR and text encodings", func() {
		c := TLS_AES_256_GCM_SHA384

		b, e := json.Marshal(c)
		Expect(e).ToNot(HaveOccurred())
		var j Cipher
		Expect(json.Unmarshal(b, &j)).To(Succeed())
		Expect(j).To(Equal(c))

		b, e = yaml.Marshal(c)
		Expect(e).ToNot(HaveOccurred())
		var y Cipher
		Expect(yaml.Unmarshal(b, &y)).To(Succeed())
		Expect(y).To(Equal(c))

		b, e = cbor.Marshal(c)
		Expect(e).ToNot(HaveOccurred())
		var cb Cipher
		Expect(cbor.Unmarshal(b, &cb)).To(Succeed())
		Expect(cb).To(Equal(c))

		b, e = c.MarshalText()
		Expect(e).ToNot(HaveOccurred())
		var t Cipher
		Expect(t.UnmarshalText(b)).To(Succeed())
		Expect(t).To(Equal(c))
	})
})
