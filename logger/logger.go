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

package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger is the server's diagnostic line logger. One instance is created
// at startup and shared by every connection goroutine; its Info/Error
// methods are safe for concurrent use because the underlying file hook
// serializes writes with a mutex.
type Logger struct {
	log  *logrus.Logger
	file *hkf
}

// New opens path for append and returns a Logger that writes every line
// through it. When path is empty, the logger has no file sink and every
// line is discarded.
func New(path string) (*Logger, error) {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.TraceLevel)

	if path == "" {
		return &Logger{log: l}, nil
	}

	h, e := newHookFile(path)
	if e != nil {
		return nil, e
	}

	l.AddHook(h)

	return &Logger{log: l, file: h}, nil
}

// Info writes a normal diagnostic line.
func (o *Logger) Info(msg string) {
	o.log.Info(msg)
}

// Infof writes a formatted normal diagnostic line.
func (o *Logger) Infof(format string, args ...interface{}) {
	o.log.Infof(format, args...)
}

// Error writes an "!!! ERROR !!!" diagnostic line.
func (o *Logger) Error(msg string) {
	o.log.Error(msg)
}

// Errorf writes a formatted "!!! ERROR !!!" diagnostic line.
func (o *Logger) Errorf(format string, args ...interface{}) {
	o.log.Errorf(format, args...)
}

// Close flushes and closes the underlying log file, if any.
func (o *Logger) Close() error {
	if o.file == nil {
		return nil
	}

	return o.file.Close()
}

// Raw appends p to the log file without running it through the line
// formatter, for content that already carries its own framing (a CGI
// child's captured stderr). A trailing newline is added if p doesn't
// already end with one, matching log_raw's one-newline-per-call shape.
func (o *Logger) Raw(p []byte) error {
	if o.file == nil {
		return nil
	}

	if len(p) == 0 || p[len(p)-1] != '\n' {
		p = append(p, '\n')
	}

	return o.file.writeRaw(p)
}

// Flush forces buffered log content to stable storage. Used right after
// logging a failed CGI spawn so the line is durable even if the process
// aborts right after.
func (o *Logger) Flush() error {
	if o.file == nil {
		return nil
	}

	return o.file.sync()
}
