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

// Package certs loads the server's certificate pair: a private key and its
// certificate (or chain), given either as inline PEM text, a file path, or
// a separate key/cert pair. It is also where a certificate learns to
// round-trip through JSON/YAML/TOML/CBOR, so a serialized certificates
// Config can carry it in any of those.
package certs

import (
	"crypto/tls"
	"encoding"
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Cert is a parsed certificate pair, encodable as text, binary, JSON,
// YAML, TOML and CBOR.
type Cert interface {
	encoding.TextMarshaler
	encoding.TextUnmarshaler
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	json.Marshaler
	json.Unmarshaler
	yaml.Marshaler
	yaml.Unmarshaler
	toml.Marshaler
	toml.Unmarshaler
	cbor.Marshaler
	cbor.Unmarshaler
	fmt.Stringer

	// Chain returns the PEM-encoded certificate(s) followed by the private
	// key (when present) as one text, whatever form the certificate was
	// loaded from.
	Chain() (string, error)
	// Pair returns the PEM-encoded certificate(s) and private key
	// separately, whatever form the certificate was loaded from; key is
	// empty when the certificate carries no private key.
	Pair() (pub string, key string, err error)
	// TLS returns the decoded tls.Certificate.
	TLS() tls.Certificate
	// Model returns a value copy of the certificate's internal state.
	Model() Certif

	IsChain() bool
	IsPair() bool
	IsFile() bool
	// GetCerts returns the raw PEM strings (or file paths) this certificate
	// was configured from.
	GetCerts() []string
}

// Parse decodes a PEM-encoded certificate chain (key plus certificate(s)
// concatenated), or a file path pointing to one.
func Parse(chain string) (Cert, error) {
	c := ConfigChain(chain)
	return parseCert(&c)
}

// ParsePair decodes a certificate from a separate private key and
// certificate, each either inline PEM or a file path.
func ParsePair(key, pub string) (Cert, error) {
	return parseCert(&ConfigPair{Key: key, Pub: pub})
}

func parseCert(cfg Config) (Cert, error) {
	if c, e := cfg.Cert(); e != nil {
		return nil, e
	} else if c == nil {
		return nil, ErrInvalidPairCertificate
	} else {
		return &Certif{g: cfg, c: *c}, nil
	}
}
