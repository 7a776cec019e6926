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

// Package pool implements the membership registry of live connections.
// The Go netpoller owns readiness multiplexing, so this Pool carries no
// interest-set bookkeeping; it keeps what the rest of the server still
// needs from a connection registry: the descriptor-ceiling admission
// check, and a concurrency-safe member list for graceful shutdown.
package pool

import (
	"sync"

	"github.com/nabbar/liso/ioutils/fileDescriptor"
)

// SafetyMargin is reserved below the descriptor soft limit for the two
// listening sockets, the log file, the lock file, and CGI pipe triples
// already in flight.
const SafetyMargin = 32

// Member is anything the Pool tracks for graceful shutdown: a live
// connection is removed from the pool by calling Close on it.
type Member interface {
	Close() error
}

// Pool is the concurrency-safe registry of live connections. One Pool
// is created at startup and shared by every accept loop and connection
// goroutine; its own mutex is the substitute for the single-threaded
// pool's implicit absence of concurrent access in the original design.
type Pool struct {
	mu      sync.Mutex
	members map[int64]Member
	next    int64
	limit   int
}

// New returns an empty Pool whose admission ceiling is the process's
// current soft file-descriptor limit minus SafetyMargin, never less than
// 1.
func New() (*Pool, error) {
	cur, _, e := fileDescriptor.SystemFileDescriptor(0)
	if e != nil {
		return nil, ErrorDescriptorCeiling.Error(e)
	}

	limit := cur - SafetyMargin
	if limit < 1 {
		limit = 1
	}

	return &Pool{
		members: make(map[int64]Member),
		limit:   limit,
	}, nil
}

// Admit reserves one membership slot if the pool is below its ceiling
// and registers m under a fresh id. It refuses admission outright when
// the ceiling would be exceeded.
func (p *Pool) Admit(m Member) (id int64, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.members) >= p.limit {
		return 0, false
	}

	p.next++
	id = p.next
	p.members[id] = m

	return id, true
}

// Remove drops id from the pool. It does not close the member; callers
// close their own descriptors before or after removing themselves.
func (p *Pool) Remove(id int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.members, id)
}

// Len returns the current membership count.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.members)
}

// CloseAll closes every live member. Called during graceful shutdown,
// after both listeners stop accepting and before the pool itself is
// discarded.
func (p *Pool) CloseAll() {
	p.mu.Lock()
	members := make([]Member, 0, len(p.members))
	for _, m := range p.members {
		members = append(members, m)
	}
	p.mu.Unlock()

	for _, m := range members {
		_ = m.Close()
	}
}
