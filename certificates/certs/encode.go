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
	"bytes"
	"crypto/tls"
	"encoding/json"
	"strconv"

	"github.com/fxamacker/cbor/v2"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

func (o *Certif) MarshalText() (text []byte, err error) {
	return []byte(o.String()), err
}

func (o *Certif) UnmarshalText(text []byte) error {
	var (
		chn = ConfigChain(text)
		crt *tls.Certificate
		err error
	)

	if crt, err = chn.Cert(); err != nil {
		return err
	} else if crt == nil || len(crt.Certificate) == 0 {
		return ErrInvalidPairCertificate
	} else {
		o.g = &chn
		o.c = *crt
		return nil
	}
}

func (o *Certif) MarshalBinary() (data []byte, err error) {
	return o.MarshalCBOR()
}

func (o *Certif) UnmarshalBinary(data []byte) error {
	return o.UnmarshalCBOR(data)
}

// configValue picks the narrowest Config shape that losslessly represents
// the certificate (a bare chain string, a key/cert pair, or whatever the
// original Config was) so marshaling doesn't force every format into the
// widest representation.
func (o *Certif) configValue() any {
	if o == nil || o.g == nil {
		return nil
	}

	switch p := o.g.GetCerts(); len(p) {
	case 1:
		return ConfigChain(p[0])
	case 2:
		return ConfigPair{Key: p[0], Pub: p[1]}
	default:
		return o.g
	}
}

func (o *Certif) MarshalJSON() ([]byte, error) {
	if cfg := o.configValue(); cfg == nil {
		return []byte(""), nil
	} else {
		return json.Marshal(cfg)
	}
}

// tryAdoptPair adopts cfg as the certificate's backing Config if it looks
// complete and parses to a usable tls.Certificate. A parse error is treated
// as "not a pair after all" so callers can fall back to the chain shape.
func (o *Certif) tryAdoptPair(cfg ConfigPair) (matched bool, err error) {
	if len(cfg.Key) == 0 || len(cfg.Pub) == 0 {
		return false, nil
	}

	crt, err := cfg.Cert()
	if err != nil {
		return false, nil
	}
	if crt == nil || len(crt.Certificate) == 0 {
		return true, ErrInvalidPairCertificate
	}

	o.g = &cfg
	o.c = *crt
	return true, nil
}

func (o *Certif) tryAdoptChain(chn ConfigChain) (matched bool, err error) {
	if len(chn) == 0 {
		return false, nil
	}

	crt, err := chn.Cert()
	if err != nil {
		return false, nil
	}
	if crt == nil || len(crt.Certificate) == 0 {
		return true, ErrInvalidPairCertificate
	}

	o.g = &chn
	o.c = *crt
	return true, nil
}

// adoptFallbackChain is the last resort for any encoding: strip quoting
// artifacts a marshaler may have added and parse the remainder as a chain.
func (o *Certif) adoptFallbackChain(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	raw = bytes.Trim(raw, "\"")
	raw = bytes.Replace(raw, []byte("\\n"), []byte("\n"), -1) // nolint

	if c, e := Parse(string(raw)); e == nil {
		*o = c.Model()
		return nil
	}

	return ErrInvalidCertificate
}

func (o *Certif) UnmarshalJSON(p []byte) error {
	var cfg ConfigPair
	if json.Unmarshal(p, &cfg) == nil {
		if matched, err := o.tryAdoptPair(cfg); matched {
			return err
		}
	}

	var chn ConfigChain
	if json.Unmarshal(p, &chn) == nil {
		if matched, err := o.tryAdoptChain(chn); matched {
			return err
		}
	}

	return o.adoptFallbackChain(p)
}

func (o *Certif) MarshalYAML() (interface{}, error) {
	if o == nil || o.g == nil {
		return []byte(""), nil
	} else if p, e := o.Chain(); e != nil {
		return nil, e
	} else {
		return "\"" + strconv.Quote(p) + "\"", nil
	}
}

func (o *Certif) UnmarshalYAML(value *yaml.Node) error {
	src := []byte(value.Value)

	var cfg ConfigPair
	if yaml.Unmarshal(src, &cfg) == nil {
		if matched, err := o.tryAdoptPair(cfg); matched {
			return err
		}
	}

	var chn ConfigChain
	if yaml.Unmarshal(src, &chn) == nil {
		if matched, err := o.tryAdoptChain(chn); matched {
			return err
		}
	}

	return o.adoptFallbackChain(src)
}

func (o *Certif) MarshalTOML() ([]byte, error) {
	if cfg := o.configValue(); cfg == nil {
		return []byte(""), nil
	} else {
		return toml.Marshal(cfg)
	}
}

func (o *Certif) UnmarshalTOML(i interface{}) error {
	if s, t := i.(map[string]interface{}); t {
		m := make(map[string]string)
		for n, v := range s {
			if u, l := v.(string); l && len(u) > 0 {
				m[n] = u
			} else if w, l := v.([]byte); l && len(w) > 0 {
				m[n] = string(w)
			}
		}
		i = m
	}

	if m, k := i.(map[string]string); k && len(m) == 2 {
		cfg := ConfigPair{
			Key: m["key"],
			Pub: m["pub"],
		}
		if c, e := cfg.Cert(); e == nil {
			*o = Certif{
				g: &cfg,
				c: *c,
			}
			return nil
		}
	}

	if p, k := i.(string); k && len(p) > 0 {
		i = []byte(p)
	}

	if p, k := i.([]byte); k && len(p) > 0 {
		return o.adoptFallbackChain(p)
	}

	return ErrInvalidCertificate
}

func (o *Certif) MarshalCBOR() ([]byte, error) {
	if cfg := o.configValue(); cfg == nil {
		return []byte(""), nil
	} else {
		return cbor.Marshal(cfg)
	}
}

func (o *Certif) UnmarshalCBOR(bytes []byte) error {
	var (
		cfg ConfigPair
		chn ConfigChain
		crt *tls.Certificate
		err error
	)

	if err = cbor.Unmarshal(bytes, &cfg); err == nil && len(cfg.Key) > 0 && len(cfg.Pub) > 0 {
		if crt, err = cfg.Cert(); err != nil {
			return err
		} else if crt == nil || len(crt.Certificate) == 0 {
			return ErrInvalidPairCertificate
		} else {
			o.g = &cfg
			o.c = *crt
			return nil
		}
	}

	if err = cbor.Unmarshal(bytes, &chn); err == nil && len(chn) > 0 {
		if crt, err = chn.Cert(); err != nil {
			return err
		} else if crt == nil || len(crt.Certificate) == 0 {
			return ErrInvalidPairCertificate
		} else {
			o.g = &chn
			o.c = *crt
			return nil
		}
	}

	return ErrInvalidCertificate
}
