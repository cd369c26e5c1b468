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

// Package mq provides named, bounded, prioritized message queues for
// handles within one process.
//
// Queues live in a Registry keyed by name, so independently-opened handles
// rendezvous on the same underlying storage exactly as they would on a
// kernel-managed named queue. Handles opened with any mix of access modes
// share one buffer of outstanding messages; each successful receive removes
// exactly one message.
//
// Messages are dequeued in descending priority order, first-in-first-out
// among equal priorities.
//
// Opening an existing queue with an exclusive-create request fails with
// retval.ErrPermissionDenied. The condition is conceptually "already
// exists", but the module folds it into the permission outcome so that both
// backends report the conflict identically.
package mq

import (
	"sync/atomic"
	"time"

	"osal.dev/osal/pkg/ilist"
	"osal.dev/osal/pkg/ipc"
	"osal.dev/osal/pkg/retval"
	"osal.dev/osal/pkg/sync"
	"osal.dev/osal/pkg/timer"
	"osal.dev/osal/pkg/waiter"
)

const (
	// maxPriority is the highest possible message priority, MQ_PRIO_MAX-1.
	maxPriority = 32767
)

type msgEntry = ilist.Entry[*Message]

// Message holds a message owned by a queue between a successful send and
// the receive that copies it out.
type Message struct {
	msgEntry

	// payload is the message's content. The queue owns it; senders' and
	// receivers' buffers are copied in and out.
	payload []byte

	// priority is the message's priority.
	priority uint32
}

// queue is the shared storage behind every handle opened against one name.
// It is created by the registry and survives unlinking until the last
// handle is closed.
type queue struct {
	// registry owns this queue. Immutable.
	registry *Registry

	// obj holds the queue's name and permission bits. Immutable.
	obj ipc.Object

	// footprint is the number of bytes charged against the registry's
	// backing-store quota. Immutable.
	footprint uint64

	// maxMessages is the maximum number of outstanding messages. Immutable.
	maxMessages uint32

	// maxMessageSize is the per-message byte ceiling. Immutable.
	maxMessageSize uint32

	// mu protects the fields below.
	mu sync.Mutex

	// messages holds the outstanding messages, ordered by descending
	// priority and FIFO within each priority class.
	messages ilist.List[*Message]

	// messageCount is the number of outstanding messages.
	messageCount uint32

	// senders is a queue of currently blocked senders. Senders are
	// notified when space is available for a new message.
	senders waiter.Queue

	// receivers is a queue of currently blocked receivers. Receivers are
	// notified when a new message is inserted in the queue.
	receivers waiter.Queue

	// The following fields are protected by the registry's lock.

	// refs is the number of open handles.
	refs int

	// unlinked is true once the name has been removed from the registry.
	unlinked bool
}

// push inserts m in priority order if there is capacity. It reports false
// when the queue is full.
func (q *queue) push(m *Message) bool {
	q.mu.Lock()
	if q.messageCount >= q.maxMessages {
		q.mu.Unlock()
		return false
	}

	// Scan from the back: among equal priorities the new message goes
	// last, and for the common single-priority case this is O(1).
	var prev *Message
	for e := q.messages.Back(); e != nil; e = e.Prev() {
		if e.priority >= m.priority {
			prev = e
			break
		}
	}
	if prev != nil {
		q.messages.InsertAfter(prev, m)
	} else {
		q.messages.PushFront(m)
	}
	q.messageCount++
	q.mu.Unlock()

	q.receivers.Notify(waiter.EventIn)
	return true
}

// pop removes and returns the head of the priority/FIFO order, or nil if
// the queue is empty.
func (q *queue) pop() *Message {
	q.mu.Lock()
	m := q.messages.Front()
	if m == nil {
		q.mu.Unlock()
		return nil
	}
	q.messages.Remove(m)
	q.messageCount--
	q.mu.Unlock()

	q.senders.Notify(waiter.EventOut)
	return m
}

// Queue is a handle (a capability) over exactly one named queue. The zero
// value is an invalid handle; every operation on it returns
// retval.ErrInvalidParam.
type Queue struct {
	// q is the shared storage, nil for a zero-initialized handle.
	q *queue

	// mode restricts which operations this handle may perform. Immutable.
	mode ipc.AccessMode

	// closed flips once on Close.
	closed atomic.Bool
}

// ok reports whether the handle may be used at all.
func (h *Queue) ok() bool {
	return h != nil && h.q != nil && !h.closed.Load()
}

// Name returns the name the handle was opened with.
func (h *Queue) Name() string {
	return h.q.obj.Name
}

// MaxMessages returns the queue's depth.
func (h *Queue) MaxMessages() uint32 {
	return h.q.maxMessages
}

// MaxMessageSize returns the queue's per-message byte ceiling.
func (h *Queue) MaxMessageSize() uint32 {
	return h.q.maxMessageSize
}

// CurrentMessages returns the number of outstanding messages.
func (h *Queue) CurrentMessages() uint32 {
	h.q.mu.Lock()
	defer h.q.mu.Unlock()
	return h.q.messageCount
}

// Send enqueues payload with the given priority, blocking while the queue
// is full.
func (h *Queue) Send(payload []byte, priority uint32) error {
	return h.send(payload, priority, nil, false)
}

// TrySend is like Send but returns retval.ErrTimeout instead of blocking
// when the queue is full.
func (h *Queue) TrySend(payload []byte, priority uint32) error {
	return h.send(payload, priority, nil, true)
}

// TimedSend is like Send but gives up with retval.ErrTimeout once deadline
// passes with the queue still full. A malformed deadline returns
// retval.ErrInvalidParam without blocking; a nil deadline degenerates to
// TrySend semantics.
func (h *Queue) TimedSend(payload []byte, priority uint32, deadline *timer.Deadline) error {
	return h.send(payload, priority, deadline, true)
}

// send validates in the fixed order descriptor, parameters, access mode,
// and only then blocks. Side effects happen only once all validation has
// passed.
func (h *Queue) send(payload []byte, priority uint32, deadline *timer.Deadline, timed bool) error {
	if !h.ok() {
		return retval.ErrInvalidParam
	}
	if timed && deadline != nil && !deadline.Valid() {
		return retval.ErrInvalidParam
	}
	q := h.q
	if uint64(len(payload)) > uint64(q.maxMessageSize) {
		return retval.ErrInvalidParam
	}
	if priority > maxPriority {
		return retval.ErrInvalidParam
	}
	if !h.mode.CanWrite() {
		return retval.ErrInvalidParam
	}

	m := &Message{
		payload:  append([]byte(nil), payload...),
		priority: priority,
	}
	if q.push(m) {
		return nil
	}
	if timed && deadline == nil {
		return retval.ErrTimeout
	}

	// Register for wakeups before re-checking so that a receiver freeing
	// capacity between the check and the wait cannot be missed.
	e, ch := waiter.NewChannelEntry(nil)
	q.senders.EventRegister(&e, waiter.EventOut)
	defer q.senders.EventUnregister(&e)

	for {
		if q.push(m) {
			return nil
		}
		if deadline == nil {
			<-ch
			continue
		}
		rem := deadline.Remaining()
		if rem == 0 {
			return retval.ErrTimeout
		}
		t := time.NewTimer(rem)
		select {
		case <-ch:
			t.Stop()
		case <-t.C:
			return retval.ErrTimeout
		}
	}
}

// Receive dequeues the head of the priority/FIFO order into buf, blocking
// while the queue is empty. It returns the message's length and priority.
// buf must be large enough for the worst-case message, i.e. at least
// MaxMessageSize bytes.
func (h *Queue) Receive(buf []byte) (int, uint32, error) {
	return h.receive(buf, nil, false)
}

// TryReceive is like Receive but returns retval.ErrTimeout instead of
// blocking when the queue is empty.
func (h *Queue) TryReceive(buf []byte) (int, uint32, error) {
	return h.receive(buf, nil, true)
}

// TimedReceive is like Receive but gives up with retval.ErrTimeout once
// deadline passes with the queue still empty. A malformed deadline returns
// retval.ErrInvalidParam without blocking; a nil deadline degenerates to
// TryReceive semantics.
func (h *Queue) TimedReceive(buf []byte, deadline *timer.Deadline) (int, uint32, error) {
	return h.receive(buf, deadline, true)
}

func (h *Queue) receive(buf []byte, deadline *timer.Deadline, timed bool) (int, uint32, error) {
	if !h.ok() {
		return 0, 0, retval.ErrInvalidParam
	}
	if timed && deadline != nil && !deadline.Valid() {
		return 0, 0, retval.ErrInvalidParam
	}
	q := h.q
	if uint64(len(buf)) < uint64(q.maxMessageSize) {
		return 0, 0, retval.ErrInvalidParam
	}
	if !h.mode.CanRead() {
		return 0, 0, retval.ErrInvalidParam
	}

	if m := q.pop(); m != nil {
		return copy(buf, m.payload), m.priority, nil
	}
	if timed && deadline == nil {
		return 0, 0, retval.ErrTimeout
	}

	e, ch := waiter.NewChannelEntry(nil)
	q.receivers.EventRegister(&e, waiter.EventIn)
	defer q.receivers.EventUnregister(&e)

	for {
		if m := q.pop(); m != nil {
			return copy(buf, m.payload), m.priority, nil
		}
		if deadline == nil {
			<-ch
			continue
		}
		rem := deadline.Remaining()
		if rem == 0 {
			return 0, 0, retval.ErrTimeout
		}
		t := time.NewTimer(rem)
		select {
		case <-ch:
			t.Stop()
		case <-t.C:
			return 0, 0, retval.ErrTimeout
		}
	}
}

// Close releases the handle. Closing an invalid, already-closed, or
// zero-initialized handle returns retval.ErrInvalidParam. The shared
// storage is released once the queue has been unlinked and the last handle
// is closed.
//
// Closing while another goroutine is blocked in a send or receive on the
// same handle is a caller error with undefined outcome.
func (h *Queue) Close() error {
	if h == nil || h.q == nil {
		return retval.ErrInvalidParam
	}
	if !h.closed.CompareAndSwap(false, true) {
		return retval.ErrInvalidParam
	}
	h.q.registry.decRef(h.q)
	return nil
}
