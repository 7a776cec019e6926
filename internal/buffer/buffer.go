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

// Package buffer implements the fixed-capacity connection buffer: a
// heap-backed, writable variant sized for one read/write cycle, and a
// read-only variant backed by a memory-mapped file for response bodies.
package buffer

import (
	"os"

	"github.com/xujiajun/mmap-go"
)

// DefaultCapacity is the fixed heap buffer size used for every
// connection's ingestion/emission buffer.
const DefaultCapacity = 8192

// Buffer is a region with a write frontier (size) and a read cursor.
// The region between cursor and size is the unread suffix; everything
// before cursor is the consumed prefix.
type Buffer struct {
	region   []byte
	capacity int
	size     int
	cursor   int
	mapped   mmap.MMap
}

// Allocate returns a heap-backed, writable buffer of the given capacity
// with empty size and cursor at 0.
func Allocate(capacity int) *Buffer {
	return &Buffer{
		region:   make([]byte, capacity),
		capacity: capacity,
	}
}

// Mmap returns a read-only buffer whose content is the file behind f,
// sized to length bytes. It fails if the mapping fails.
func Mmap(f *os.File, length int) (*Buffer, error) {
	if length == 0 {
		return &Buffer{region: nil, capacity: 0, size: 0}, nil
	}

	m, e := mmap.MapRegion(f, length, mmap.RDONLY, 0, 0)
	if e != nil {
		return nil, ErrorMmapFailed.Error(e)
	}

	return &Buffer{
		region:   m,
		capacity: length,
		size:     length,
		mapped:   m,
	}, nil
}

// Region exposes the full writable backing slice (heap variant only).
func (b *Buffer) Region() []byte {
	return b.region
}

// Capacity returns the fixed capacity of the buffer.
func (b *Buffer) Capacity() int {
	return b.capacity
}

// Size returns the write frontier (end_offset).
func (b *Buffer) Size() int {
	return b.size
}

// Cursor returns the current read cursor.
func (b *Buffer) Cursor() int {
	return b.cursor
}

// EndOffset returns the write frontier (size).
func (b *Buffer) EndOffset() int {
	return b.size
}

// Remaining returns the number of unread bytes between cursor and size.
func (b *Buffer) Remaining() int {
	return b.size - b.cursor
}

// Unread returns the slice of unread bytes from cursor to size.
func (b *Buffer) Unread() []byte {
	if b.cursor >= b.size {
		return nil
	}

	return b.region[b.cursor:b.size]
}

// Tail returns the writable slice from size to capacity, for refilling
// the buffer from a socket read.
func (b *Buffer) Tail() []byte {
	if b.size >= b.capacity {
		return nil
	}

	return b.region[b.size:b.capacity]
}

// Grow advances the write frontier by n bytes after a successful read
// into Tail().
func (b *Buffer) Grow(n int) {
	b.size += n
}

// Advance moves the read cursor forward by n bytes.
func (b *Buffer) Advance(n int) {
	b.cursor += n
}

// Reset returns the buffer to its empty state (cursor <- 0, size <- 0).
// It is a no-op on a memory-mapped buffer, which is immutable.
func (b *Buffer) Reset() {
	if b.mapped != nil {
		return
	}

	b.cursor = 0
	b.size = 0
}

// Close releases the memory mapping, if any.
func (b *Buffer) Close() error {
	if b.mapped == nil {
		return nil
	}

	m := b.mapped
	b.mapped = nil
	b.region = nil

	return m.Unmap()
}
