//go:build !windows

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

// Package daemon detaches the server into the background: detach from
// the controlling terminal into a new session, acquire an exclusive
// lock on the lock file, write the running pid into it, and redirect
// stdin and stdout to /dev/null. Go has no fork(2) that duplicates a live runtime
// image, so the "fork once; parent exits" step is expressed the
// idiomatic Go way: re-exec the same binary as a detached child via
// os/exec with Setsid, marked by an environment variable so the child
// does not re-daemonize itself.
package daemon

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"syscall"

	"github.com/gofrs/flock"
)

// childEnvVar marks a process as the already-detached child so it
// performs the lock/pid/stdio steps instead of forking again.
const childEnvVar = "LISO_DAEMON_CHILD"

// LockMode is the lock file's permission mode.
const LockMode = 0640

// Umask is applied in the child after detaching.
const Umask = 0027

// IsChild reports whether the current process is the detached child,
// i.e. whether Spawn already ran in an ancestor process.
func IsChild() bool {
	return os.Getenv(childEnvVar) == "1"
}

// Spawn forks the daemon: it re-execs the current binary with the same
// arguments and childEnvVar set, detached into its own session. The
// caller (the parent) is expected to exit(0) immediately after a
// successful Spawn.
func Spawn() error {
	devNull, e := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if e != nil {
		return ErrorSpawnFailed.Error(e)
	}
	defer devNull.Close()

	cmd := exec.Command(os.Args[0], os.Args[1:]...)
	cmd.Env = append(os.Environ(), childEnvVar+"=1")
	cmd.Stdin = devNull
	cmd.Stdout = devNull
	cmd.Stderr = devNull
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if e = cmd.Start(); e != nil {
		return ErrorSpawnFailed.Error(e)
	}

	return nil
}

// Lock is the held advisory lock on the lock file, kept open for the
// process lifetime.
type Lock struct {
	fl *flock.Flock
}

// AcquireAndWritePID performs the remaining child-side setup steps:
// setsid (already done by the parent's SysProcAttr, repeated here for
// a non-Spawn'd invocation such as tests), open the lock file at
// LockMode, take an exclusive non-blocking advisory lock, write the
// pid as decimal+newline, and apply Umask. It returns the held Lock,
// which the caller must keep referenced for the process lifetime and
// release via Release on shutdown.
func AcquireAndWritePID(lockFile string) (*Lock, error) {
	if _, e := syscall.Setsid(); e != nil {
		// Already a session leader (common under test harnesses and
		// when re-exec'd by Spawn, whose Setsid already applied); not
		// fatal.
		_ = e
	}

	syscall.Umask(Umask)

	fl := flock.New(lockFile)

	ok, e := fl.TryLock()
	if e != nil {
		return nil, ErrorLockFailed.Error(e)
	}
	if !ok {
		return nil, ErrorLockFailed.Error(fmt.Errorf("lock file %s held by another process", lockFile))
	}

	if e = os.Chmod(lockFile, LockMode); e != nil {
		_ = fl.Unlock()
		return nil, ErrorLockFailed.Error(e)
	}

	pid := []byte(strconv.Itoa(os.Getpid()) + "\n")
	if e = os.WriteFile(lockFile, pid, LockMode); e != nil {
		_ = fl.Unlock()
		return nil, ErrorLockFailed.Error(e)
	}

	return &Lock{fl: fl}, nil
}

// RedirectStdio redirects stdin and stdout to /dev/null; stderr
// is left attached so a last-resort diagnostic can still reach it if
// the logger itself fails to open.
func RedirectStdio() error {
	devNull, e := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if e != nil {
		return ErrorRedirectFailed.Error(e)
	}

	if e = syscall.Dup2(int(devNull.Fd()), int(os.Stdin.Fd())); e != nil {
		return ErrorRedirectFailed.Error(e)
	}

	if e = syscall.Dup2(int(devNull.Fd()), int(os.Stdout.Fd())); e != nil {
		return ErrorRedirectFailed.Error(e)
	}

	return nil
}

// Release unlocks and closes the lock file.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}

	return l.fl.Unlock()
}
