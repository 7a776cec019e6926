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

package pool_test

import (
	"github.com/nabbar/liso/internal/pool"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type fakeMember struct {
	closed bool
}

func (f *fakeMember) Close() error {
	f.closed = true
	return nil
}

var _ = Describe("Pool", func() {
	It("admits members up to its descriptor ceiling", func() {
		p, e := pool.New()
		Expect(e).ToNot(HaveOccurred())
		Expect(p.Len()).To(Equal(0))

		id, ok := p.Admit(&fakeMember{})
		Expect(ok).To(BeTrue())
		Expect(id).To(Equal(int64(1)))
		Expect(p.Len()).To(Equal(1))
	})

	It("assigns each admitted member a distinct id and removes by id", func() {
		p, _ := pool.New()

		id1, _ := p.Admit(&fakeMember{})
		id2, _ := p.Admit(&fakeMember{})
		Expect(id1).ToNot(Equal(id2))
		Expect(p.Len()).To(Equal(2))

		p.Remove(id1)
		Expect(p.Len()).To(Equal(1))
	})

	It("closes every live member on CloseAll", func() {
		p, _ := pool.New()

		m1 := &fakeMember{}
		m2 := &fakeMember{}
		p.Admit(m1)
		p.Admit(m2)

		p.CloseAll()

		Expect(m1.closed).To(BeTrue())
		Expect(m2.closed).To(BeTrue())
	})
})
