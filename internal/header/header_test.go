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

package header_test

import (
	"strings"

	"github.com/nabbar/liso/internal/header"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("List", func() {
	It("preserves insertion order and duplicates", func() {
		l := header.New()
		Expect(l.Add("X-A", "1")).To(Succeed())
		Expect(l.Add("X-A", "2")).To(Succeed())
		Expect(l.Len()).To(Equal(2))
		Expect(l.All()[0].Value).To(Equal("1"))
		Expect(l.All()[1].Value).To(Equal("2"))
	})

	It("looks up keys case-insensitively", func() {
		l := header.New()
		Expect(l.Add("Content-Type", "text/html")).To(Succeed())

		v, ok := l.Get("content-type")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("text/html"))
	})

	It("rejects keys and values over their bounded widths", func() {
		l := header.New()
		Expect(l.Add(strings.Repeat("k", header.MaxKeyWidth+1), "v")).To(HaveOccurred())
		Expect(l.Add("k", strings.Repeat("v", header.MaxValueWidth+1))).To(HaveOccurred())
	})

	It("empties on reset", func() {
		l := header.New()
		Expect(l.Add("a", "b")).To(Succeed())
		l.Reset()
		Expect(l.Len()).To(Equal(0))
	})
})
