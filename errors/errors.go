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

package errors

import (
	"fmt"
	"runtime"
	"strings"
)

// ers is the concrete Error: a code, a message, the parent errors that
// caused it and the frame it was raised from.
type ers struct {
	c uint16
	e string
	p []Error
	t runtime.Frame
}

func (e *ers) Add(parent ...error) {
	for _, v := range parent {
		if v == nil {
			continue
		}

		e.p = append(e.p, Make(v))
	}
}

func (e *ers) HasParent() bool {
	return len(e.p) > 0
}

func (e *ers) Code() uint16 {
	return e.c
}

func (e *ers) Message() string {
	return e.e
}

// Error renders "[code] message" and, when parents exist, appends each
// parent's own rendering so a logged line carries the full chain.
func (e *ers) Error() string {
	s := fmt.Sprintf(defaultPattern, e.c, e.e)

	if len(e.p) == 0 {
		return s
	}

	parts := make([]string, 0, len(e.p))
	for _, p := range e.p {
		parts = append(parts, p.Error())
	}

	return s + ": " + strings.Join(parts, "; ")
}

func (e *ers) GetTrace() string {
	if e.t.File != "" {
		return fmt.Sprintf("%s#%d", filterPath(e.t.File), e.t.Line)
	} else if e.t.Function != "" {
		return fmt.Sprintf("%s#%d", e.t.Function, e.t.Line)
	}

	return ""
}

func (e *ers) Unwrap() []error {
	if len(e.p) == 0 {
		return nil
	}

	r := make([]error, 0, len(e.p))
	for _, v := range e.p {
		r = append(r, v)
	}

	return r
}
