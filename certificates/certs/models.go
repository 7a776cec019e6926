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

package certs

import (
	"crypto/tls"
	"encoding/json"
	"reflect"

	libmap "github.com/go-viper/mapstructure/v2"
)

// Certif is the in-memory form of a parsed certificate pair: the raw
// configuration it was built from (so it can round-trip back to its
// original shape) plus the decoded tls.Certificate.
type Certif struct {
	g Config
	c tls.Certificate
}

// Cert returns the receiver as the Cert interface, for callers holding a
// Config and wanting the richer view back.
func (o *Certif) Cert() Cert {
	return o
}

// Model returns a value copy of the certificate's internal state.
func (o *Certif) Model() Certif {
	if o == nil {
		return Certif{}
	}
	return *o
}

func (o *Certif) IsChain() bool {
	if o == nil {
		return false
	}
	return o.g.IsChain()
}

func (o *Certif) IsPair() bool {
	if o == nil {
		return false
	}
	return o.g.IsPair()
}

func (o *Certif) IsFile() bool {
	if o == nil {
		return false
	}
	return o.g.IsFile()
}

func (o *Certif) GetCerts() []string {
	if o == nil {
		return make([]string, 0)
	}
	return o.g.GetCerts()
}

// ViperDecoderHook lets mapstructure decode a raw map or non-string value
// straight into a Cert by round-tripping it through JSON, the one format
// Certif always knows how to unmarshal.
func ViperDecoderHook() libmap.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		var y Cert
		if reflect.TypeOf(y) != to {
			return data, nil
		}

		_, isMap := data.(map[string]interface{})
		_, isString := data.(string)
		if !isMap && isString {
			return data, nil
		}

		z := &Certif{c: tls.Certificate{}}
		p, e := json.Marshal(data)
		if e != nil {
			return data, nil
		}
		if e = z.UnmarshalJSON(p); e != nil {
			return data, nil
		}
		return z, nil
	}
}
