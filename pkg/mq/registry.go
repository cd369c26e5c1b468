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

package mq

import (
	"strings"

	"osal.dev/osal/pkg/ipc"
	"osal.dev/osal/pkg/log"
	"osal.dev/osal/pkg/retval"
	"osal.dev/osal/pkg/sync"
)

// messageOverhead is the per-slot bookkeeping charge counted against the
// backing-store quota, in addition to the slot's payload capacity.
const messageOverhead = 64

// Registry is a namespace of message queues, keyed by name. It mirrors a
// kernel queue namespace: a queue is external to any handle, survives until
// unlinked and unreferenced, and counts against the registry's resource
// limits.
type Registry struct {
	// limits holds the registry's environmental resource limits. Immutable.
	limits Limits

	// mu protects all the fields below, plus the refs and unlinked fields
	// of every queue owned by this registry.
	mu sync.Mutex

	// queues maps names to live queues.
	queues map[string]*queue

	// handles is the number of currently open handles.
	handles int

	// usedBytes is the backing-store charge of all live queues.
	usedBytes uint64
}

// NewRegistry returns an empty registry enforcing the given limits.
func NewRegistry(limits Limits) *Registry {
	return &Registry{
		limits: limits,
		queues: make(map[string]*queue),
	}
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	return NewRegistry(DefaultLimits())
})

// Default returns the process-wide registry, created on first use with
// DefaultLimits.
func Default() *Registry {
	return defaultRegistry()
}

// Open opens a queue in the default registry. See Registry.Open.
func Open(name string, attr ipc.Attr) (*Queue, error) {
	return Default().Open(name, attr)
}

// Unlink removes a name from the default registry. See Registry.Unlink.
func Unlink(name string) error {
	return Default().Unlink(name)
}

// Limits returns the registry's resource limits.
func (r *Registry) Limits() Limits {
	return r.limits
}

// footprint is the backing-store charge for a queue created with attr.
func footprint(attr ipc.Attr) uint64 {
	return uint64(attr.MaxMessages) * (uint64(attr.MaxMessageSize) + messageOverhead)
}

// Open returns a handle to the named queue, creating it if requested.
//
// Validation happens in a fixed order: name, then attributes, then
// aggregate capacity, then existence and permission checks, then limits
// that only creation can discover. Combinations that could never be
// satisfied return retval.ErrInvalidParam; limits that depend on current
// resource usage return retval.ErrSystemLimitReached.
func (r *Registry) Open(name string, attr ipc.Attr) (*Queue, error) {
	if !r.validName(name) {
		return nil, retval.ErrInvalidParam
	}
	if attr.MaxMessages == 0 || attr.MaxMessageSize == 0 {
		return nil, retval.ErrInvalidParam
	}
	if attr.MaxMessageSize > r.limits.MaxMessageSize || attr.MaxMessages > r.limits.MaxMessages {
		return nil, retval.ErrInvalidParam
	}
	if footprint(attr) > r.limits.QueueBytes {
		// Unsatisfiable regardless of current usage.
		return nil, retval.ErrInvalidParam
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.handles >= r.limits.MaxHandles {
		log.Warningf("mq: handle limit (%d) reached opening %q", r.limits.MaxHandles, name)
		return nil, retval.ErrSystemLimitReached
	}

	q, exists := r.queues[name]
	if exists {
		if attr.Create && attr.Exclusive {
			// "Already exists" is reported as a permission conflict; see
			// the package documentation.
			return nil, retval.ErrPermissionDenied
		}
		if !q.obj.CheckPermissions(attr.Mode) {
			return nil, retval.ErrPermissionDenied
		}
	} else {
		if !attr.Create {
			return nil, retval.ErrNotFound
		}
		if len(r.queues) >= r.limits.MaxQueues {
			log.Warningf("mq: queue limit (%d) reached creating %q", r.limits.MaxQueues, name)
			return nil, retval.ErrSystemLimitReached
		}
		fp := footprint(attr)
		if r.usedBytes+fp > r.limits.QueueBytes {
			log.Warningf("mq: backing-store quota (%d bytes) reached creating %q", r.limits.QueueBytes, name)
			return nil, retval.ErrSystemLimitReached
		}
		q = &queue{
			registry:       r,
			obj:            ipc.Object{Name: name, Perm: attr.Perm},
			footprint:      fp,
			maxMessages:    attr.MaxMessages,
			maxMessageSize: attr.MaxMessageSize,
		}
		r.queues[name] = q
		r.usedBytes += fp
		log.Debugf("mq: created %q (maxmsg=%d msgsize=%d)", name, attr.MaxMessages, attr.MaxMessageSize)
	}

	q.refs++
	r.handles++
	return &Queue{q: q, mode: attr.Mode}, nil
}

// Unlink removes name from the registry. The queue's storage stays alive
// for existing handles and is released when the last one closes. Messages
// still queued at that point are discarded.
func (r *Registry) Unlink(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.queues[name]
	if !ok {
		return retval.ErrNotFound
	}
	delete(r.queues, name)
	q.unlinked = true
	if q.refs == 0 {
		r.usedBytes -= q.footprint
	}
	log.Debugf("mq: unlinked %q", name)
	return nil
}

// decRef drops one handle reference to q, releasing the storage if the
// queue is both unlinked and unreferenced.
func (r *Registry) decRef(q *queue) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.handles--
	q.refs--
	if q.refs == 0 && q.unlinked {
		r.usedBytes -= q.footprint
	}
}

// validName checks the name against the namespace's rules: a leading
// slash, at least one further character, no other slashes, and the length
// limit.
func (r *Registry) validName(name string) bool {
	if len(name) < 2 || name[0] != '/' {
		return false
	}
	if len(name) > r.limits.MaxNameLength {
		return false
	}
	return !strings.ContainsRune(name[1:], '/')
}
