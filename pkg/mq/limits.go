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

// Limits holds a registry's environmental resource limits. They model the
// bounds a kernel enforces on its queue namespace and are injectable so
// tests can exercise exhaustion without exhausting anything real.
type Limits struct {
	// MaxQueues is the maximum number of queues in the registry.
	MaxQueues int

	// MaxHandles is the maximum number of concurrently open handles,
	// mirroring an open-descriptor limit.
	MaxHandles int

	// MaxNameLength is the maximum queue name length, including the
	// leading slash.
	MaxNameLength int

	// MaxMessages is the largest queue depth a single queue may be created
	// with.
	MaxMessages uint32

	// MaxMessageSize is the per-message byte ceiling any queue may be
	// created with.
	MaxMessageSize uint32

	// QueueBytes is the aggregate backing-store quota: the sum over all
	// queues of maxMessages*(maxMessageSize+overhead) may not exceed it,
	// mirroring RLIMIT_MSGQUEUE.
	QueueBytes uint64
}

// Default limit values, matching the Linux mqueue defaults where one
// exists.
const (
	defaultMaxQueues      = 256
	defaultMaxHandles     = 1024
	defaultMaxNameLength  = 255
	defaultMaxMessages    = 65536
	defaultMaxMessageSize = 8192
	defaultQueueBytes     = 819200
)
