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

package sema

import (
	"sync"
	"testing"
	"time"

	"osal.dev/osal/pkg/retval"
	"osal.dev/osal/pkg/timer"
)

func TestLatchIdempotence(t *testing.T) {
	s := New()
	// Any number of posts with no intervening wait collapse into one event.
	s.Post()
	s.Post()
	s.Post()

	if err := s.TryWait(); err != nil {
		t.Fatalf("TryWait() after posts = %v, want nil", err)
	}
	if err := s.TryWait(); err != retval.ErrTimeout {
		t.Fatalf("second TryWait() = %v, want ErrTimeout", err)
	}
}

func TestPostBeforeWait(t *testing.T) {
	// Signaling order-independent of waiting order: the event must not be
	// lost just because nobody was waiting yet.
	s := New()
	s.Post()

	done := make(chan struct{})
	go func() {
		s.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Wait() did not observe a prior Post()")
	}
}

func TestWaitBeforePost(t *testing.T) {
	s := New()
	done := make(chan struct{})
	go func() {
		s.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Wait() returned without a Post()")
	case <-time.After(50 * time.Millisecond):
	}

	s.Post()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Wait() did not return after Post()")
	}
}

func TestTimedWaitTimeout(t *testing.T) {
	s := New()
	deadline := timer.Expires(200 * time.Millisecond)

	start := time.Now()
	err := s.TimedWait(&deadline)
	elapsed := time.Since(start)

	if err != retval.ErrTimeout {
		t.Fatalf("TimedWait() = %v, want ErrTimeout", err)
	}
	if elapsed < 150*time.Millisecond {
		t.Errorf("TimedWait() returned after %v, want ~200ms", elapsed)
	}
	if elapsed > 2*time.Second {
		t.Errorf("TimedWait() blocked for %v, want ~200ms", elapsed)
	}
}

func TestTimedWaitSignaled(t *testing.T) {
	s := New()
	go func() {
		time.Sleep(50 * time.Millisecond)
		s.Post()
	}()

	deadline := timer.Expires(5 * time.Second)
	if err := s.TimedWait(&deadline); err != nil {
		t.Fatalf("TimedWait() = %v, want nil", err)
	}
	// The event was consumed.
	if err := s.TryWait(); err != retval.ErrTimeout {
		t.Errorf("TryWait() after consumed TimedWait = %v, want ErrTimeout", err)
	}
}

func TestTimedWaitNilDeadline(t *testing.T) {
	// A nil deadline degenerates to TryWait semantics.
	s := New()
	if err := s.TimedWait(nil); err != retval.ErrTimeout {
		t.Errorf("TimedWait(nil) on unsignaled = %v, want ErrTimeout", err)
	}
	s.Post()
	if err := s.TimedWait(nil); err != nil {
		t.Errorf("TimedWait(nil) on signaled = %v, want nil", err)
	}
}

func TestTimedWaitInvalidDeadline(t *testing.T) {
	s := New()
	s.Post()

	start := time.Now()
	deadline := timer.Deadline{Sec: -1}
	err := s.TimedWait(&deadline)
	if err != retval.ErrInvalidParam {
		t.Fatalf("TimedWait(malformed) = %v, want ErrInvalidParam", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("TimedWait(malformed) blocked for %v, want immediate return", elapsed)
	}
	// Validation failures have no side effect; the event is still pending.
	if err := s.TryWait(); err != nil {
		t.Errorf("TryWait() after rejected TimedWait = %v, want nil", err)
	}
}

func TestSingleConsumption(t *testing.T) {
	// With many concurrent waiters, each post releases exactly one.
	const waiters = 8
	const posts = 100

	s := New()
	var got sync.WaitGroup
	consumed := make(chan struct{}, waiters*posts)
	stop := make(chan struct{})

	for i := 0; i < waiters; i++ {
		got.Add(1)
		go func() {
			defer got.Done()
			for {
				deadline := timer.Expires(100 * time.Millisecond)
				err := s.TimedWait(&deadline)
				if err == nil {
					consumed <- struct{}{}
					continue
				}
				select {
				case <-stop:
					return
				default:
				}
			}
		}()
	}

	// The latch saturates at 1, so wait for each post to be consumed
	// before issuing the next; every post then releases exactly one waiter.
	for i := 0; i < posts; i++ {
		s.Post()
		select {
		case <-consumed:
		case <-time.After(5 * time.Second):
			t.Fatalf("only %d of %d posts consumed", i, posts)
		}
	}
	select {
	case <-consumed:
		t.Fatal("more consumptions than posts")
	case <-time.After(200 * time.Millisecond):
	}

	close(stop)
	got.Wait()
}

func TestDestroy(t *testing.T) {
	s := New()
	s.Post()
	if err := s.TryWait(); err != nil {
		t.Fatalf("TryWait() = %v, want nil", err)
	}
	s.Destroy()

	defer func() {
		if recover() == nil {
			t.Error("Post() on destroyed semaphore did not panic")
		}
	}()
	s.Post()
}
