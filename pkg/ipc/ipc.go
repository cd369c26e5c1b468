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

// Package ipc defines attributes and permission plumbing common to all
// named-object backends.
package ipc

// AccessMode restricts which operations a handle may perform. It constrains
// the handle, not the underlying object: any number of handles with any mix
// of modes may reference the same name.
type AccessMode uint32

// Access modes for Attr.Mode.
const (
	// ReadOnly allows receive operations only.
	ReadOnly AccessMode = iota

	// WriteOnly allows send operations only.
	WriteOnly

	// ReadWrite allows both.
	ReadWrite
)

// CanRead returns whether m permits receive operations.
func (m AccessMode) CanRead() bool {
	return m == ReadOnly || m == ReadWrite
}

// CanWrite returns whether m permits send operations.
func (m AccessMode) CanWrite() bool {
	return m == WriteOnly || m == ReadWrite
}

// String implements fmt.Stringer.String.
func (m AccessMode) String() string {
	switch m {
	case ReadOnly:
		return "ro"
	case WriteOnly:
		return "wo"
	case ReadWrite:
		return "rw"
	default:
		return "invalid"
	}
}

// Permission bits enforced on open. Only the owner class is meaningful for
// the in-process backend, where every handle acts as the owner; the host
// backend passes the full set to the kernel.
const (
	PermUserRead   = 0o400
	PermUserWrite  = 0o200
	PermGroupRead  = 0o040
	PermGroupWrite = 0o020
	PermOtherRead  = 0o004
	PermOtherWrite = 0o002
)

// Attr holds the attributes a message queue is opened with. All fields
// take part in validation; there are no defaulted fields.
type Attr struct {
	// Mode is the access mode requested for the returned handle.
	Mode AccessMode

	// Create requests creation if no object of the given name exists.
	Create bool

	// Exclusive makes open fail if the object already exists. Only
	// meaningful together with Create.
	Exclusive bool

	// MaxMessages is the queue depth. Must be positive.
	MaxMessages uint32

	// MaxMessageSize is the per-message byte ceiling. Must be positive and
	// within the backend's per-message limit.
	MaxMessageSize uint32

	// Perm holds the access-control bits applied at creation and enforced
	// against subsequent non-creating opens.
	Perm uint32
}

// Object holds the fields common to all named objects.
type Object struct {
	// Name is the object's name in its namespace. Immutable.
	Name string

	// Perm is the object's access-control bits. Immutable.
	Perm uint32
}

// CheckPermissions verifies that the requested access mode is permitted by
// the object's permission bits. In-process handles always belong to the
// creating user, so only the owner class is consulted.
func (o *Object) CheckPermissions(req AccessMode) bool {
	if req.CanRead() && o.Perm&PermUserRead == 0 {
		return false
	}
	if req.CanWrite() && o.Perm&PermUserWrite == 0 {
		return false
	}
	return true
}
