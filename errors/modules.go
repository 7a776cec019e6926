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

// Component code ranges for this server. Each component reserves a block
// of codes for its own errors.CodeError constants, one range per package.
const (
	MinPkgCertificate = 300
	MinPkgIOUtils     = 1400
	MinPkgLogger      = 1600
	MinPkgBuffer      = 4100
	MinPkgHeader      = 4200
	MinPkgRequest     = 4300
	MinPkgResponse    = 4400
	MinPkgCGI         = 4500
	MinPkgConnection  = 4600
	MinPkgPool        = 4700
	MinPkgTLSAdapter  = 4800
	MinPkgDaemon      = 4900
	MinPkgCLI         = 5000

	MinAvailable = 5100
)
