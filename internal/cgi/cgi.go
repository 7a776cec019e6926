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

// Package cgi implements the CGI/1.1 subsystem: child process spawning,
// environment synthesis, the three-pipe plumbing, stderr capture, and
// the phase machine that relays a request body to the child's stdin and
// its stdout back to the client.
package cgi

import (
	"io"
	"os/exec"
)

// Phase is the coarse state of a CGI relay.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseReady
	PhaseSrvToCgi
	PhaseCgiToSrv
	PhaseDone
	PhaseAbort
	PhaseDisabled
)

// SubPhase distinguishes, within CgiToSrv, whether the shared buffer
// currently holds data to receive from the child or to send to the
// client.
type SubPhase uint8

const (
	SubRecv SubPhase = iota
	SubSend
)

// CGI is owned by a connection for the lifetime of one dynamic request.
type CGI struct {
	Phase Phase
	Sub   SubPhase
	Pid   int

	cmd  *exec.Cmd
	in   io.WriteCloser
	out  io.ReadCloser
	errR io.ReadCloser

	bodyCh  chan []byte
	doneCh  chan error
	errDone chan struct{}
}

// New returns a CGI context in the Idle phase.
func New() *CGI {
	return &CGI{Phase: PhaseIdle}
}

// Spawn starts the configured CGI program: three pipes are opened,
// the child exec's with an empty argv and the synthesized environment,
// and a dedicated goroutine begins draining its stderr into
// stderrSink. On success the phase advances to SrvToCgi; on failure
// the caller converts this into a 500, the client channel being
// otherwise healthy.
func (c *CGI) Spawn(program string, env []string, stderrSink func(pid int, p []byte)) error {
	cmd := exec.Command(program)
	cmd.Env = env

	stdin, e := cmd.StdinPipe()
	if e != nil {
		return ErrorSpawnFailed.Error(e)
	}

	stdout, e := cmd.StdoutPipe()
	if e != nil {
		return ErrorSpawnFailed.Error(e)
	}

	stderr, e := cmd.StderrPipe()
	if e != nil {
		return ErrorSpawnFailed.Error(e)
	}

	if e = cmd.Start(); e != nil {
		return ErrorSpawnFailed.Error(e)
	}

	c.cmd = cmd
	c.in = stdin
	c.out = stdout
	c.errR = stderr
	c.Pid = cmd.Process.Pid
	c.Phase = PhaseSrvToCgi
	c.bodyCh = make(chan []byte, 8)
	c.doneCh = make(chan error, 1)
	c.errDone = make(chan struct{})

	go c.pumpStdin()

	go func(done chan struct{}) {
		drainStderr(cmd.Process.Pid, stderr, stderrSink)
		close(done)
	}(c.errDone)

	return nil
}

// pumpStdin is the dedicated stdin-writer goroutine: a child that
// stalls its stdin only ever stalls this goroutine, never the
// connection that owns the CGI context.
func (c *CGI) pumpStdin() {
	for p := range c.bodyCh {
		if _, e := c.in.Write(p); e != nil {
			break
		}
	}

	c.doneCh <- c.in.Close()
}

func drainStderr(pid int, r io.Reader, sink func(pid int, p []byte)) {
	buf := make([]byte, 4096)

	for {
		n, e := r.Read(buf)

		if n > 0 && sink != nil {
			cp := make([]byte, n)
			copy(cp, buf[:n])
			sink(pid, cp)
		}

		if e != nil {
			return
		}
	}
}

// WriteBody enqueues body bytes currently buffered by the connection
// for the stdin-writer goroutine.
func (c *CGI) WriteBody(p []byte) {
	if len(p) == 0 {
		return
	}

	cp := make([]byte, len(p))
	copy(cp, p)

	c.bodyCh <- cp
}

// CloseInput closes the child's stdin once the stdin-writer goroutine
// has flushed its queue, signalling EOF to the child, and advances the
// phase from SrvToCgi to CgiToSrv.
func (c *CGI) CloseInput() error {
	close(c.bodyCh)
	e := <-c.doneCh

	c.Phase = PhaseCgiToSrv
	c.Sub = SubRecv

	return e
}

// ReadStdout reads up to len(p) bytes from cgi_out_read. A zero-length
// read with io.EOF means the child is done producing output; any other
// error is fatal to the CGI relay.
func (c *CGI) ReadStdout(p []byte) (int, error) {
	return c.out.Read(p)
}

// Wait reaps the child process via exec.Cmd.Wait's own blocking reap.
// Wait must not run while stdout is still being read: exec.Cmd.Wait
// closes the parent pipe ends when the child exits.
func (c *CGI) Wait() error {
	if c.cmd == nil {
		return nil
	}

	return c.cmd.Wait()
}

// Waiter returns a reap function bound to the current child, so the
// caller can defer the reap past Reset recycling this context for the
// next request. The reap blocks until the stderr drain has reached
// EOF, since Wait would otherwise close cgi_err_read under it.
func (c *CGI) Waiter() func() error {
	cmd := c.cmd
	errDone := c.errDone

	return func() error {
		if cmd == nil {
			return nil
		}

		if errDone != nil {
			<-errDone
		}

		return cmd.Wait()
	}
}

// Reset returns the CGI context to its Idle initial state so the same
// value can be reused by a recycled keep-alive connection for another
// dynamic request.
func (c *CGI) Reset() {
	c.Phase = PhaseIdle
	c.Sub = SubRecv
	c.Pid = 0
	c.cmd = nil
	c.in = nil
	c.out = nil
	c.errR = nil
	c.bodyCh = nil
	c.doneCh = nil
	c.errDone = nil
}
