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

package response

import (
	"fmt"

	"github.com/nabbar/liso/internal/httpstatus"
)

// cannedErrorBody returns the canned HTML page for one of the six
// recognized error statuses; unknown codes fall back to 500.
func cannedErrorBody(status int) (int, []byte) {
	switch status {
	case httpstatus.BadRequest, httpstatus.NotFound, httpstatus.LengthRequired,
		httpstatus.InternalServerError, httpstatus.NotImplemented, httpstatus.ServiceUnavailable:
		return status, errorHTML(status)
	default:
		return httpstatus.InternalServerError, errorHTML(httpstatus.InternalServerError)
	}
}

func errorHTML(status int) []byte {
	reason := httpstatus.Reason(status)

	return []byte(fmt.Sprintf(
		"<html><head><title>%d %s</title></head><body><h1>%d %s</h1></body></html>",
		status, reason, status, reason,
	))
}
