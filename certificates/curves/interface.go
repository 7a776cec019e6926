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

// Package curves names the elliptic curves this server offers for ECDHE
// key exchange, wrapping the raw crypto/tls curve IDs in a type that can be
// read from a config file or CLI flag as a human string.
package curves

import (
	"crypto/tls"
	"math"
	"regexp"
	"strings"
)

var rx *regexp.Regexp

func init() {
	if r, e := regexp.Compile("[0-9]+"); e != nil {
		panic(e)
	} else {
		rx = r
	}
}

// Curves identifies an elliptic curve by its crypto/tls CurveID value.
type Curves uint16

const (
	// Unknown is returned whenever a string or integer doesn't resolve to
	// one of the curves below.
	Unknown Curves = iota

	// X25519 is preferred for new deployments: fast and side-channel resistant.
	X25519 = Curves(tls.X25519)

	// P256 (secp256r1) is a NIST curve, widely supported.
	P256 = Curves(tls.CurveP256)

	// P384 (secp384r1) is a NIST curve for higher security requirements.
	P384 = Curves(tls.CurveP384)

	// P521 (secp521r1) is a NIST curve for maximum security, slowest of the four.
	P521 = Curves(tls.CurveP521)
)

// List returns every curve this server will negotiate, X25519 first.
func List() []Curves {
	return []Curves{
		X25519,
		P256,
		P384,
		P521,
	}
}

// ListString renders List as curve name strings.
func ListString() []string {
	var res = make([]string, 0)
	for _, c := range List() {
		res = append(res, c.String())
	}
	return res
}

// Parse returns a Curves from the digits found anywhere in s: "25519",
// "256", "384", or "521", in any surrounding text or case. Anything else
// returns Unknown.
func Parse(s string) Curves {
	s = strings.ToLower(s)
	s = rx.FindString(s)

	switch {
	case strings.EqualFold(s, "25519"):
		return X25519
	case strings.EqualFold(s, "256"):
		return P256
	case strings.EqualFold(s, "384"):
		return P384
	case strings.EqualFold(s, "521"):
		return P521
	default:
		return Unknown
	}
}

// ParseInt maps a raw crypto/tls curve ID to its Curves constant, clamping
// d into uint16 range first. Unrecognized IDs return Unknown.
func ParseInt(d int) Curves {
	var r tls.CurveID
	if d > math.MaxUint16 {
		r = math.MaxUint16
	} else if d < 1 {
		r = 0
	} else {
		r = tls.CurveID(d)
	}

	switch r {
	case tls.X25519:
		return X25519
	case tls.CurveP256:
		return P256
	case tls.CurveP384:
		return P384
	case tls.CurveP521:
		return P521
	default:
		return Unknown
	}
}

// ParseBytes is Parse for a byte slice.
func ParseBytes(p []byte) Curves {
	return Parse(string(p))
}

// Check reports whether curves is one of the curves this server offers.
func Check(curves uint16) bool {
	return ParseInt(int(curves)) != Unknown
}
