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

// Package header implements the ordered (key, value) header list shared
// by requests and responses: case-insensitive lookup, bounded widths,
// duplicates preserved in arrival order.
package header

import "strings"

const (
	MaxKeyWidth   = 512
	MaxValueWidth = 4096
)

// Pair is one (key, value) entry in arrival order.
type Pair struct {
	Key   string
	Value string
}

// List is an ordered bag of header pairs with case-insensitive lookup.
type List struct {
	pairs []Pair
}

// New returns an empty header list.
func New() *List {
	return &List{pairs: make([]Pair, 0, 8)}
}

// Add appends a (key, value) pair, preserving duplicates and order.
func (l *List) Add(key, value string) error {
	if len(key) > MaxKeyWidth {
		return ErrorKeyTooLong.Error(nil)
	}

	if len(value) > MaxValueWidth {
		return ErrorValueTooLong.Error(nil)
	}

	l.pairs = append(l.pairs, Pair{Key: key, Value: value})

	return nil
}

// Get returns the first value for key (case-insensitive), and whether
// it was found.
func (l *List) Get(key string) (string, bool) {
	for _, p := range l.pairs {
		if strings.EqualFold(p.Key, key) {
			return p.Value, true
		}
	}

	return "", false
}

// Len returns the number of stored pairs.
func (l *List) Len() int {
	return len(l.pairs)
}

// All returns the pairs in insertion order.
func (l *List) All() []Pair {
	return l.pairs
}

// Reset empties the list for reuse, keeping the backing array.
func (l *List) Reset() {
	l.pairs = l.pairs[:0]
}
