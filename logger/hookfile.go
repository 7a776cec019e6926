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
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/nabbar/liso/ioutils"
)

// HookFile is a logrus.Hook that also closes the file it writes to.
type HookFile interface {
	logrus.Hook
	io.Closer
}

// hkf writes every accepted entry to a single os.File, guarded by a mutex
// since one Logger is shared across every connection goroutine.
type hkf struct {
	mu  sync.Mutex
	fmt logrus.Formatter
	fle *os.File
}

// newHookFile opens path for append (creating it with mode 0640 if
// missing, along with any missing parent directory at 0750) so external
// log rotation via rename is safe without a server restart.
func newHookFile(path string) (*hkf, error) {
	if e := ioutils.PathCheckCreate(true, path, 0640, 0750); e != nil {
		return nil, e
	}

	f, e := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
	if e != nil {
		return nil, e
	}

	return &hkf{fmt: lineFormatter{}, fle: f}, nil
}

func (o *hkf) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (o *hkf) Fire(entry *logrus.Entry) error {
	p, e := o.fmt.Format(entry)
	if e != nil {
		return e
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	_, e = o.fle.Write(p)
	return e
}

func (o *hkf) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.fle.Close()
}

// writeRaw appends p to the file unformatted, under the same lock as
// Fire, for callers that already have their own framing (a CGI child's
// stderr bytes) and must not be run through the line formatter twice.
func (o *hkf) writeRaw(p []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	_, e := o.fle.Write(p)
	return e
}

// sync flushes the file to stable storage, mirroring the original
// daemon's log_flush around its execve/error paths.
func (o *hkf) sync() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.fle.Sync()
}
