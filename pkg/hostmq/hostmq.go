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

//go:build linux

// Package hostmq provides named message queues backed by the host kernel's
// POSIX message queue facility, for rendezvous between processes. It
// carries the same operation surface and outcome taxonomy as package mq;
// the difference is that the namespace is the kernel's, so unrelated
// processes can meet on a name.
//
// Deadlines are monotonic (timer.Deadline). The kernel's timed calls want
// an absolute CLOCK_REALTIME timespec, so each attempt converts the
// remaining monotonic time to a fresh realtime target; an interrupted call
// is restarted with a recomputed target, so wall-clock steps between
// attempts cannot stretch the wait.
package hostmq

import (
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
	"osal.dev/osal/pkg/ipc"
	"osal.dev/osal/pkg/log"
	"osal.dev/osal/pkg/retval"
	"osal.dev/osal/pkg/timer"
)

// maxNameLength bounds the name passed to the kernel, including the
// leading slash. The kernel's own limit is NAME_MAX on the mqueue
// filesystem.
const maxNameLength = 255

// mqAttr is the kernel's mq_attr layout.
type mqAttr struct {
	Flags   int64
	MaxMsg  int64
	MsgSize int64
	CurMsgs int64
	_       [4]int64
}

// Queue is a handle to a kernel message queue. The zero value is invalid.
type Queue struct {
	fd     int32
	name   string
	mode   ipc.AccessMode
	closed atomic.Bool
}

// Open opens the named kernel queue, creating it if attr requests that.
//
// Outcomes follow the same taxonomy as mq.Registry.Open: malformed names
// and unsatisfiable attributes are retval.ErrInvalidParam, exhausted
// kernel limits are retval.ErrSystemLimitReached, and both permission
// conflicts and exclusive-create collisions are retval.ErrPermissionDenied.
func Open(name string, attr ipc.Attr) (*Queue, error) {
	if !validName(name) {
		return nil, retval.ErrInvalidParam
	}
	// Geometry only matters when creating; non-creating opens adopt the
	// queue's existing attributes.
	if attr.Create {
		if attr.MaxMessages == 0 || attr.MaxMessageSize == 0 {
			return nil, retval.ErrInvalidParam
		}
		if attr.MaxMessages > 1<<30 || attr.MaxMessageSize > 1<<30 {
			return nil, retval.ErrInvalidParam
		}
	}

	var oflag int
	switch attr.Mode {
	case ipc.ReadOnly:
		oflag = unix.O_RDONLY
	case ipc.WriteOnly:
		oflag = unix.O_WRONLY
	case ipc.ReadWrite:
		oflag = unix.O_RDWR
	default:
		return nil, retval.ErrInvalidParam
	}
	if attr.Create {
		oflag |= unix.O_CREAT
	}
	if attr.Exclusive {
		oflag |= unix.O_EXCL
	}

	// The kernel wants the name without its leading slash.
	kname, err := unix.BytePtrFromString(name[1:])
	if err != nil {
		return nil, retval.ErrInvalidParam
	}
	var kattrPtr *mqAttr
	if attr.Create {
		kattrPtr = &mqAttr{
			MaxMsg:  int64(attr.MaxMessages),
			MsgSize: int64(attr.MaxMessageSize),
		}
	}

	fd, _, errno := unix.Syscall6(unix.SYS_MQ_OPEN,
		uintptr(unsafe.Pointer(kname)),
		uintptr(oflag),
		uintptr(attr.Perm),
		uintptr(unsafe.Pointer(kattrPtr)), 0, 0)
	if errno != 0 {
		if errno == unix.EINVAL && attr.Create {
			// The kernel rejects attributes that exceed its ceilings with
			// EINVAL; that is the invalid-combination outcome already.
			return nil, retval.ErrInvalidParam
		}
		return nil, retval.FromUnix(errno)
	}

	log.Debugf("hostmq: opened %q (fd=%d)", name, fd)
	return &Queue{fd: int32(fd), name: name, mode: attr.Mode}, nil
}

// Unlink removes name from the kernel namespace. Open handles keep
// working; the queue is destroyed once the last one closes.
func Unlink(name string) error {
	if !validName(name) {
		return retval.ErrInvalidParam
	}
	kname, err := unix.BytePtrFromString(name[1:])
	if err != nil {
		return retval.ErrInvalidParam
	}
	_, _, errno := unix.Syscall(unix.SYS_MQ_UNLINK,
		uintptr(unsafe.Pointer(kname)), 0, 0)
	if errno != 0 {
		return retval.FromUnix(errno)
	}
	return nil
}

// Name returns the queue's name.
func (q *Queue) Name() string {
	return q.name
}

// attrs fetches the queue's current kernel attributes.
func (q *Queue) attrs() (mqAttr, error) {
	var a mqAttr
	_, _, errno := unix.Syscall(unix.SYS_MQ_GETSETATTR,
		uintptr(q.fd), 0, uintptr(unsafe.Pointer(&a)))
	if errno != 0 {
		return mqAttr{}, retval.FromUnix(errno)
	}
	return a, nil
}

// MaxMessages returns the queue's depth bound.
func (q *Queue) MaxMessages() (uint32, error) {
	a, err := q.attrs()
	if err != nil {
		return 0, err
	}
	return uint32(a.MaxMsg), nil
}

// MaxMessageSize returns the queue's per-message byte bound.
func (q *Queue) MaxMessageSize() (uint32, error) {
	a, err := q.attrs()
	if err != nil {
		return 0, err
	}
	return uint32(a.MsgSize), nil
}

// CurrentMessages returns the number of messages currently queued.
func (q *Queue) CurrentMessages() (uint32, error) {
	a, err := q.attrs()
	if err != nil {
		return 0, err
	}
	return uint32(a.CurMsgs), nil
}

func (q *Queue) ok() bool {
	return q != nil && q.fd != 0 && !q.closed.Load()
}

// Send enqueues payload with the given priority, blocking while the queue
// is full.
func (q *Queue) Send(payload []byte, priority uint32) error {
	return q.send(payload, priority, nil, false)
}

// TrySend enqueues payload without blocking, reporting retval.ErrTimeout
// if the queue is full.
func (q *Queue) TrySend(payload []byte, priority uint32) error {
	return q.send(payload, priority, nil, true)
}

// TimedSend enqueues payload, blocking until the monotonic deadline at the
// latest. A nil deadline degrades to TrySend semantics.
func (q *Queue) TimedSend(payload []byte, priority uint32, deadline *timer.Deadline) error {
	return q.send(payload, priority, deadline, true)
}

func (q *Queue) send(payload []byte, priority uint32, deadline *timer.Deadline, timed bool) error {
	if !q.ok() || !q.mode.CanWrite() {
		return retval.ErrInvalidParam
	}
	if timed && deadline != nil && !deadline.Valid() {
		return retval.ErrInvalidParam
	}

	var p unsafe.Pointer
	if len(payload) > 0 {
		p = unsafe.Pointer(&payload[0])
	} else {
		var dummy byte
		p = unsafe.Pointer(&dummy)
	}

	for {
		ts := absTimeout(deadline, timed)
		_, _, errno := unix.Syscall6(unix.SYS_MQ_TIMEDSEND,
			uintptr(q.fd),
			uintptr(p),
			uintptr(len(payload)),
			uintptr(priority),
			uintptr(unsafe.Pointer(ts)), 0)
		switch errno {
		case 0:
			return nil
		case unix.EINTR:
			continue
		case unix.EMSGSIZE:
			return retval.ErrInvalidParam
		default:
			return retval.FromUnix(errno)
		}
	}
}

// Receive dequeues the highest-priority message into buf, blocking while
// the queue is empty. It returns the message length and priority.
func (q *Queue) Receive(buf []byte) (int, uint32, error) {
	return q.receive(buf, nil, false)
}

// TryReceive dequeues without blocking, reporting retval.ErrTimeout if the
// queue is empty.
func (q *Queue) TryReceive(buf []byte) (int, uint32, error) {
	return q.receive(buf, nil, true)
}

// TimedReceive dequeues, blocking until the monotonic deadline at the
// latest. A nil deadline degrades to TryReceive semantics.
func (q *Queue) TimedReceive(buf []byte, deadline *timer.Deadline) (int, uint32, error) {
	return q.receive(buf, deadline, true)
}

func (q *Queue) receive(buf []byte, deadline *timer.Deadline, timed bool) (int, uint32, error) {
	if !q.ok() || !q.mode.CanRead() {
		return 0, 0, retval.ErrInvalidParam
	}
	if timed && deadline != nil && !deadline.Valid() {
		return 0, 0, retval.ErrInvalidParam
	}
	if len(buf) == 0 {
		return 0, 0, retval.ErrInvalidParam
	}

	var priority uint32
	for {
		ts := absTimeout(deadline, timed)
		n, _, errno := unix.Syscall6(unix.SYS_MQ_TIMEDRECEIVE,
			uintptr(q.fd),
			uintptr(unsafe.Pointer(&buf[0])),
			uintptr(len(buf)),
			uintptr(unsafe.Pointer(&priority)),
			uintptr(unsafe.Pointer(ts)), 0)
		switch errno {
		case 0:
			return int(n), priority, nil
		case unix.EINTR:
			continue
		case unix.EMSGSIZE:
			// Buffer smaller than the queue's message size bound.
			return 0, 0, retval.ErrInvalidParam
		default:
			return 0, 0, retval.FromUnix(errno)
		}
	}
}

// Close releases the handle. Closing a zero or already-closed handle is
// retval.ErrInvalidParam.
func (q *Queue) Close() error {
	if q == nil || q.fd == 0 || !q.closed.CompareAndSwap(false, true) {
		return retval.ErrInvalidParam
	}
	if err := unix.Close(int(q.fd)); err != nil {
		return retval.ErrInvalidParam
	}
	return nil
}

// absTimeout converts a monotonic deadline to the absolute CLOCK_REALTIME
// timespec the kernel's timed calls take. Blocking calls (timed false)
// pass no timespec; try calls pass an already-expired one so a full or
// empty queue reports ETIMEDOUT immediately.
func absTimeout(deadline *timer.Deadline, timed bool) *unix.Timespec {
	if !timed {
		return nil
	}
	var ts unix.Timespec
	if deadline == nil {
		return &ts
	}
	if err := unix.ClockGettime(unix.CLOCK_REALTIME, &ts); err != nil {
		return &ts
	}
	rem := deadline.Remaining()
	ts.Sec += int64(rem / 1e9)
	ts.Nsec += int64(rem % 1e9)
	if ts.Nsec >= 1e9 {
		ts.Sec++
		ts.Nsec -= 1e9
	}
	return &ts
}

// validName checks the kernel namespace's rules: a leading slash, at least
// one further character, no other slashes, and the length limit.
func validName(name string) bool {
	if len(name) < 2 || name[0] != '/' {
		return false
	}
	if len(name) > maxNameLength {
		return false
	}
	for i := 1; i < len(name); i++ {
		if name[i] == '/' {
			return false
		}
	}
	return true
}
