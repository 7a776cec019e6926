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

// Package tlsversion names the TLS protocol versions this server negotiates,
// wrapping the raw crypto/tls version constants in a type that can be read
// from a config file or CLI flag as a human string.
package tlsversion

import (
	"crypto/tls"
	"strings"
)

// Version identifies a TLS protocol version by its crypto/tls int value.
type Version int

const (
	// VersionUnknown is returned whenever a string or integer doesn't
	// resolve to one of the versions below.
	VersionUnknown Version = iota

	// VersionTLS10 is deprecated; kept only for legacy compatibility.
	VersionTLS10 = Version(tls.VersionTLS10)

	// VersionTLS11 is deprecated; kept only for legacy compatibility.
	VersionTLS11 = Version(tls.VersionTLS11)

	// VersionTLS12 is the recommended floor for new deployments.
	VersionTLS12 = Version(tls.VersionTLS12)

	// VersionTLS13 is the preferred, most secure version.
	VersionTLS13 = Version(tls.VersionTLS13)
)

// List returns every known TLS version, highest first.
func List() []Version {
	return []Version{
		VersionTLS13,
		VersionTLS12,
		VersionTLS11,
		VersionTLS10,
	}
}

// ListHigh returns the two versions (1.2 and 1.3) this server recommends.
func ListHigh() []Version {
	return []Version{
		VersionTLS13,
		VersionTLS12,
	}
}

// Parse returns a Version from a given string, stripping quotes, "tls",
// "ssl", and any '.', '-', '_', or whitespace before matching the
// remaining digits against 1, 10, 11, 12, or 13. Anything else returns
// VersionUnknown.
func Parse(s string) Version {
	s = strings.ToLower(s)
	s = strings.Replace(s, "\"", "", -1)  // nolint
	s = strings.Replace(s, "'", "", -1)   // nolint
	s = strings.Replace(s, "tls", "", -1) // nolint
	s = strings.Replace(s, "ssl", "", -1) // nolint
	s = strings.Replace(s, ".", "", -1)   // nolint
	s = strings.Replace(s, "-", "", -1)   // nolint
	s = strings.Replace(s, "_", "", -1)   // nolint
	s = strings.Replace(s, " ", "", -1)   // nolint
	s = strings.TrimSpace(s)

	switch {
	case strings.EqualFold(s, "1"):
		return VersionTLS10
	case strings.EqualFold(s, "10"):
		return VersionTLS10
	case strings.EqualFold(s, "11"):
		return VersionTLS11
	case strings.EqualFold(s, "12"):
		return VersionTLS12
	case strings.EqualFold(s, "13"):
		return VersionTLS13
	default:
		return VersionUnknown
	}
}

// ParseInt maps a raw crypto/tls version constant to its Version constant.
// Unrecognized values return VersionUnknown.
func ParseInt(d int) Version {
	switch d {
	case tls.VersionTLS10:
		return VersionTLS10
	case tls.VersionTLS11:
		return VersionTLS11
	case tls.VersionTLS12:
		return VersionTLS12
	case tls.VersionTLS13:
		return VersionTLS13
	default:
		return VersionUnknown
	}
}

// ParseBytes is Parse for a byte slice.
func ParseBytes(p []byte) Version {
	return Parse(string(p))
}
