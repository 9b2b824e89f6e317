// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package semaphore provides a named counting semaphore.
package semaphore

import (
	"context"
)

// Semaphore limits how many operations run at once.
type Semaphore struct {
	name string
	ch   chan struct{}
}

// New creates a new semaphore with name and capacity n.
func New(name string, n int) *Semaphore {
	if n < 1 {
		n = 1
	}
	return &Semaphore{
		name: name,
		ch:   make(chan struct{}, n),
	}
}

// WaitAcquire acquires the semaphore.
// It returns a func to release it, or ctx's error if ctx is done first.
func (s *Semaphore) WaitAcquire(ctx context.Context) (func(), error) {
	select {
	case s.ch <- struct{}{}:
		return func() { <-s.ch }, nil
	case <-ctx.Done():
		return nil, context.Cause(ctx)
	}
}

// Do runs f under the semaphore.
func (s *Semaphore) Do(ctx context.Context, f func(ctx context.Context) error) error {
	done, err := s.WaitAcquire(ctx)
	if err != nil {
		return err
	}
	defer done()
	return f(ctx)
}

// Name returns name of the semaphore.
func (s *Semaphore) Name() string {
	return s.name
}

// Capacity returns capacity of the semaphore.
func (s *Semaphore) Capacity() int {
	return cap(s.ch)
}

// NumServs returns the number of operations currently served.
func (s *Semaphore) NumServs() int {
	return len(s.ch)
}
