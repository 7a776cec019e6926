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

// Package cliargs parses the server's fixed eight-positional command
// line: no flags, no subcommands, no config file. A closed positional
// contract with no optional flags, short options, or subcommands gets
// nothing from a flag-parsing library.
package cliargs

import "fmt"

// Usage is printed to stdout, verbatim, on wrong arity before exiting
// with code 1.
const Usage = `usage: liso <HTTP port> <HTTPS port> <log file> <lock file> <www folder> <CGI program path> <private key file> <certificate file>`

// ArgCount is the number of positional arguments after the program
// name (nine total positionals including argv[0]).
const ArgCount = 8

// Config holds the eight parsed positional arguments.
type Config struct {
	HTTPPort        string
	HTTPSPort       string
	LogFile         string
	LockFile        string
	WWWFolder       string
	CGIProgram      string
	PrivateKeyFile  string
	CertificateFile string
}

// Parse validates args has exactly ArgCount entries (argv[1:]) and
// maps them onto a Config positionally. It never inspects the
// arguments beyond arity; path existence and port validity are
// surfaced later as startup failures.
func Parse(args []string) (*Config, error) {
	if len(args) != ArgCount {
		return nil, ErrorWrongArity.Error(fmt.Errorf("got %d arguments, want %d", len(args), ArgCount))
	}

	return &Config{
		HTTPPort:        args[0],
		HTTPSPort:       args[1],
		LogFile:         args[2],
		LockFile:        args[3],
		WWWFolder:       args[4],
		CGIProgram:      args[5],
		PrivateKeyFile:  args[6],
		CertificateFile: args[7],
	}, nil
}
