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

package cgi

import (
	"strconv"
	"strings"

	"github.com/nabbar/liso/internal/request"
)

// MaxEnvEntries bounds the total number of CGI/1.1 environment entries
// synthesized per request.
const MaxEnvEntries = 64

// MaxEnvEntryLen bounds the length of a single KEY=VALUE entry.
const MaxEnvEntryLen = 8192

// BuildEnv synthesizes the CGI/1.1 environment for req.
func BuildEnv(req *request.Request, serverName string) []string {
	env := make([]string, 0, MaxEnvEntries)

	add := func(key, value string) {
		if len(env) >= MaxEnvEntries {
			return
		}

		entry := key + "=" + value
		if len(entry) > MaxEnvEntryLen {
			entry = entry[:MaxEnvEntryLen]
		}

		env = append(env, entry)
	}

	uri := req.URI
	if req.Query != "" {
		uri += "?" + req.Query
	}

	add("GATEWAY_INTERFACE", "CGI/1.1")
	add("PATH_INFO", strings.TrimPrefix(req.URI, "/cgi"))
	add("REQUEST_URI", uri)
	add("REQUEST_METHOD", methodName(req.Method))

	if req.Query != "" {
		add("QUERY_STRING", req.Query)
	}

	if req.ContentLength > 0 {
		add("CONTENT_LENGTH", strconv.FormatInt(req.ContentLength, 10))
	}

	add("SERVER_NAME", serverName)
	add("SERVER_SOFTWARE", "Liso/1.0")
	add("SERVER_PROTOCOL", "HTTP/1.1")
	add("HTTP_HOST", req.Host)
	add("SCRIPT_NAME", "/cgi")

	if req.Scheme == "HTTPS" {
		add("HTTPS", "on")
	}

	for _, p := range req.Headers.All() {
		if strings.EqualFold(p.Key, "Content-Type") {
			add("CONTENT_TYPE", p.Value)
			continue
		}

		add("HTTP_"+envKey(p.Key), p.Value)
	}

	return env
}

func envKey(key string) string {
	b := []byte(strings.ToUpper(key))

	for i, c := range b {
		if c == '-' {
			b[i] = '_'
		}
	}

	return string(b)
}

func methodName(m request.Method) string {
	switch m {
	case request.MethodGet:
		return "GET"
	case request.MethodHead:
		return "HEAD"
	case request.MethodPost:
		return "POST"
	default:
		return "OTHER"
	}
}
