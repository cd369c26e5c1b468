// Copyright 2026 The OSAL Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package sema provides a binary semaphore: a one-bit event latch for
// single-event hand-off between one or more signalers and one or more
// waiters.
//
// Unlike a counting semaphore, the value saturates at 1: redundant posts
// never accumulate extra releases. The boolean latch is the source of truth;
// waiter channels are purely wake signals and every wakeup re-checks the
// latch.
package sema

import (
	"time"

	"osal.dev/osal/pkg/ilist"
	"osal.dev/osal/pkg/retval"
	"osal.dev/osal/pkg/sync"
	"osal.dev/osal/pkg/timer"
)

type waiterEntry = ilist.Entry[*waiter]

// waiter represents a caller blocked in Wait or TimedWait.
type waiter struct {
	waiterEntry

	// ch receives at most one wake signal. Buffered so that posters never
	// block handing it over.
	ch chan struct{}

	// queued is true while the waiter is linked into the semaphore's list.
	// Protected by the semaphore's mu.
	queued bool
}

// Semaphore is a binary semaphore. The zero value is unsignaled and ready
// for use. A Semaphore must not be copied after first use.
type Semaphore struct {
	// mu protects all fields below.
	mu sync.Mutex

	// value is the latch. Posting an already-signaled semaphore is a no-op.
	value bool

	// waiters holds callers blocked until the latch is set. Wakes are
	// handed to the front waiter; the latch is re-checked on every wake, so
	// waking more than one would be harmless, just wasteful.
	waiters ilist.List[*waiter]

	// dead is set by Destroy.
	dead bool
}

// New returns a new unsignaled semaphore.
func New() *Semaphore {
	return &Semaphore{}
}

// Post signals the semaphore. If the latch is already set the call is a
// no-op, so no more than one event is ever pending. An event posted before
// any waiter exists is not lost.
func (s *Semaphore) Post() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dead {
		panic("sema: Post on destroyed semaphore")
	}
	if !s.value {
		s.value = true
		s.wakeLocked()
	}
}

// wakeLocked hands a wake signal to the front waiter, if any.
//
// Preconditions: s.mu must be held.
func (s *Semaphore) wakeLocked() {
	if w := s.waiters.Front(); w != nil {
		s.waiters.Remove(w)
		w.queued = false
		w.ch <- struct{}{}
	}
}

// Wait blocks until the semaphore is signaled, then atomically consumes the
// event.
func (s *Semaphore) Wait() {
	s.mu.Lock()
	for {
		if s.value {
			s.value = false
			s.mu.Unlock()
			return
		}
		w := &waiter{ch: make(chan struct{}, 1), queued: true}
		s.waiters.PushBack(w)
		s.mu.Unlock()

		<-w.ch
		s.mu.Lock()
	}
}

// TryWait consumes a pending event if there is one and returns nil.
// Otherwise it returns retval.ErrTimeout immediately without blocking.
func (s *Semaphore) TryWait() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.value {
		return retval.ErrTimeout
	}
	s.value = false
	return nil
}

// TimedWait is like Wait but gives up with retval.ErrTimeout once the
// deadline passes with the latch still unset. A nil deadline degenerates to
// TryWait semantics; a malformed deadline returns retval.ErrInvalidParam
// without blocking. The latch is re-checked on every wake, so an event
// posted just before the deadline is consumed, not lost.
func (s *Semaphore) TimedWait(deadline *timer.Deadline) error {
	if deadline == nil {
		return s.TryWait()
	}
	if !deadline.Valid() {
		return retval.ErrInvalidParam
	}

	s.mu.Lock()
	for {
		if s.value {
			s.value = false
			s.mu.Unlock()
			return nil
		}
		rem := deadline.Remaining()
		if rem == 0 {
			s.mu.Unlock()
			return retval.ErrTimeout
		}
		w := &waiter{ch: make(chan struct{}, 1), queued: true}
		s.waiters.PushBack(w)
		s.mu.Unlock()

		t := time.NewTimer(rem)
		select {
		case <-w.ch:
			t.Stop()
			s.mu.Lock()
		case <-t.C:
			s.mu.Lock()
			if w.queued {
				s.waiters.Remove(w)
				w.queued = false
			} else {
				// A post raced with the timeout and already handed us the
				// wake. Drain it and fall through to the re-check: if the
				// latch is still set we consume the event even though the
				// deadline has passed, so the post is never lost.
				select {
				case <-w.ch:
				default:
				}
			}
		}
	}
}

// Destroy releases the semaphore's resources.
//
// Preconditions: No goroutine may be blocked in Wait or TimedWait. This is
// a documented precondition, not a runtime-checked error; violating it
// panics rather than returning an outcome.
func (s *Semaphore) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.waiters.Empty() {
		panic("sema: Destroy with blocked waiters")
	}
	s.dead = true
}
