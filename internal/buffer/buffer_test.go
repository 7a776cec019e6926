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

package buffer_test

import (
	"os"
	"path/filepath"

	"github.com/nabbar/liso/internal/buffer"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Buffer", func() {
	It("allocates a heap buffer with empty size and cursor at 0", func() {
		b := buffer.Allocate(buffer.DefaultCapacity)
		Expect(b.Capacity()).To(Equal(buffer.DefaultCapacity))
		Expect(b.Size()).To(Equal(0))
		Expect(b.Cursor()).To(Equal(0))
	})

	It("grows and advances independently", func() {
		b := buffer.Allocate(16)
		copy(b.Tail(), []byte("hello world"))
		b.Grow(11)
		Expect(b.EndOffset()).To(Equal(11))
		Expect(b.Remaining()).To(Equal(11))

		b.Advance(5)
		Expect(b.Remaining()).To(Equal(6))
		Expect(string(b.Unread())).To(Equal(" world"))
	})

	It("resets cursor and size to 0", func() {
		b := buffer.Allocate(16)
		b.Grow(4)
		b.Advance(2)
		b.Reset()
		Expect(b.Size()).To(Equal(0))
		Expect(b.Cursor()).To(Equal(0))
	})

	It("maps a file read-only with size equal to its length", func() {
		dir := GinkgoT().TempDir()
		p := filepath.Join(dir, "body.txt")
		Expect(os.WriteFile(p, []byte("hello"), 0640)).To(Succeed())

		f, e := os.Open(p)
		Expect(e).ToNot(HaveOccurred())
		defer f.Close()

		b, e := buffer.Mmap(f, 5)
		Expect(e).ToNot(HaveOccurred())
		defer b.Close()

		Expect(b.Size()).To(Equal(5))
		Expect(string(b.Unread())).To(Equal("hello"))
	})
})
