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
	goerr "errors"

	liberr "github.com/nabbar/liso/errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Error", func() {
	It("renders as '[code] message' with no parent", func() {
		err := liberr.New(404, "not found")
		Expect(err.Error()).To(Equal("[Error #404] not found"))
	})

	It("appends parent renderings after a colon", func() {
		parent := liberr.New(500, "db down")
		err := liberr.New(502, "upstream failed", parent)
		Expect(err.Error()).To(Equal("[Error #502] upstream failed: [Error #500] db down"))
	})

	It("Add ignores nil errors", func() {
		err := liberr.New(1, "x")
		err.Add(nil, nil)
		Expect(err.HasParent()).To(BeFalse())
	})

	It("Add wraps a plain error as a code-0 parent", func() {
		err := liberr.New(1, "x")
		//nolint goerr113
		err.Add(goerr.New("plain failure"))
		Expect(err.HasParent()).To(BeTrue())
	})

	It("Unwrap exposes the parent chain to errors.Is/As", func() {
		parent := liberr.New(2, "parent")
		err := liberr.New(1, "child", parent)

		Expect(goerr.Is(err, parent)).To(BeTrue())
	})

	It("GetTrace is empty for a parent built without a call-site frame", func() {
		e := liberr.Make(goerr.New("wrapped"))
		Expect(e.GetTrace()).To(Equal(""))
	})

	It("GetTrace reports file#line for an error created via New", func() {
		err := liberr.New(1, "x")
		Expect(err.GetTrace()).To(ContainSubstring("#"))
	})

	It("Make returns the same Error instance unchanged", func() {
		err := liberr.New(1, "x")
		Expect(liberr.Make(err)).To(BeIdenticalTo(err))
	})
})
