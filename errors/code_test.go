/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
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

package errors_test

import (
	liberr "github.com/nabbar/liso/errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const (
	testCode1 liberr.CodeError = 9000 + iota
	testCode2
	testCode3
)

func testMessage(code liberr.CodeError) string {
	switch code {
	case testCode1:
		return "test error 1"
	case testCode2:
		return "test error 2"
	case testCode3:
		return "test error 3"
	default:
		return ""
	}
}

var _ = Describe("CodeError", func() {
	BeforeEach(func() {
		if !liberr.ExistInMapMessage(testCode1) {
			liberr.RegisterIdFctMessage(testCode1, testMessage)
		}
	})

	It("Uint16 returns the numeric code", func() {
		Expect(testCode1.Uint16()).To(Equal(uint16(9000)))
	})

	It("String returns the decimal code", func() {
		Expect(testCode1.String()).To(Equal("9000"))
	})

	It("Message returns the registered text", func() {
		Expect(testCode1.Message()).To(Equal("test error 1"))
		Expect(testCode2.Message()).To(Equal("test error 2"))
	})

	It("Message falls back to UnknownMessage for an unregistered code", func() {
		Expect(liberr.CodeError(55555).Message()).To(Equal(liberr.UnknownMessage))
	})

	It("Error builds an Error carrying the code and message", func() {
		err := testCode1.Error(nil)
		Expect(err).ToNot(BeNil())
		Expect(err.Code()).To(Equal(uint16(9000)))
		Expect(err.HasParent()).To(BeFalse())
	})

	It("Error with a non-nil parent records it", func() {
		parent := testCode2.Error(nil)
		err := testCode1.Error(parent)
		Expect(err.HasParent()).To(BeTrue())
	})

	It("ExistInMapMessage reflects registration state", func() {
		Expect(liberr.ExistInMapMessage(testCode1)).To(BeTrue())
		Expect(liberr.ExistInMapMessage(liberr.CodeError(65000))).To(BeFalse())
	})

	It("UnknownError always resolves to UnknownMessage", func() {
		Expect(liberr.UnknownError.Message()).To(Equal(liberr.UnknownMessage))
	})
})
