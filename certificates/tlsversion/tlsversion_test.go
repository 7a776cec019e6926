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

package tlsversion_test

import (
	"crypto/tls"
	"encoding/json"

	"github.com/fxamacker/cbor/v2"
	. "github.com/nabbar/liso/certificates/tlsversion"
	"gopkg.in/yaml.v3"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("tlsversion", func() {
	It("Parse strips tls/ssl prefixes and separators before matching", func() {
		Expect(Parse("TLS1.2")).To(Equal(VersionTLS12))
		Expect(Parse("tls_1_3")).To(Equal(VersionTLS13))
		Expect(Parse("ssl1.0")).To(Equal(VersionTLS10))
		Expect(Parse("1")).To(Equal(VersionTLS10))
		Expect(Parse("1-1")).To(Equal(VersionTLS11))
	})

	It("Parse returns VersionUnknown for anything else", func() {
		Expect(Parse("")).To(Equal(VersionUnknown))
		Expect(Parse("2.0")).To(Equal(VersionUnknown))
		Expect(Parse("sslv3")).To(Equal(VersionUnknown))
	})

	It("orders List highest-first and limits ListHigh to 1.2 and 1.3", func() {
		Expect(List()[0]).To(Equal(VersionTLS13))
		Expect(List()).To(HaveLen(4))
		Expect(ListHigh()).To(Equal([]Version{VersionTLS13, VersionTLS12}))
	})

	It("ParseInt round-trips every listed version and rejects other values", func() {
		for _, v := range List() {
			Expect(ParseInt(v.Int())).To(Equal(v))
		}

		Expect(ParseInt(0)).To(Equal(VersionUnknown))
		Expect(ParseInt(tls.VersionSSL30)).To(Equal(VersionUnknown)) //nolint staticcheck
	})

	It("keeps String, Code and the crypto/tls value consistent", func() {
		Expect(VersionTLS12.String()).To(Equal("TLS 1.2"))
		Expect(VersionTLS13.Code()).To(Equal("tls_1.3"))
		Expect(VersionTLS12.TLS()).To(Equal(uint16(tls.VersionTLS12)))
		Expect(int(VersionTLS11.Uint16())).To(Equal(VersionTLS11.Int()))
	})

	It("round-trips through JSON, YAML, CBOR and text encodings", func() {
		v := VersionTLS12

		b, e := json.Marshal(v)
		Expect(e).ToNot(HaveOccurred())
		var j Version
		Expect(json.Unmarshal(b, &j)).To(Succeed())
		Expect(j).To(Equal(v))

		b, e = yaml.Marshal(v)
		Expect(e).ToNot(HaveOccurred())
		var y Version
		Expect(yaml.Unmarshal(b, &y)).To(Succeed())
		Expect(y).To(Equal(v))

		b, e = cbor.Marshal(v)
		Expect(e).ToNot(HaveOccurred())
		var cb Version
		Expect(cbor.Unmarshal(b, &cb)).To(Succeed())
		Expect(cb).To(Equal(v))

		b, e = v.MarshalText()
		Expect(e).ToNot(HaveOccurred())
		var t Version
		Expect(t.UnmarshalText(b)).To(Succeed())
		Expect(t).To(Equal(v))
	})
})
