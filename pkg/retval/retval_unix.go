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

//go:build unix

package retval

import (
	"golang.org/x/sys/unix"
)

// FromUnix is the translation table from native errnos to the outcome set.
// Backends built on kernel facilities must route every native error through
// this table (or a stricter local mapping layered above it) so that no errno
// escapes to callers.
//
// EEXIST maps to PermissionDenied rather than a distinct conflict outcome;
// see the mq package documentation for the exclusive-create semantics.
func FromUnix(err unix.Errno) *Error {
	switch err {
	case 0:
		return nil
	case unix.EACCES, unix.EPERM, unix.EEXIST:
		return ErrPermissionDenied
	case unix.ENOENT:
		return ErrNotFound
	case unix.ETIMEDOUT:
		return ErrTimeout
	case unix.EMFILE, unix.ENFILE, unix.ENOSPC, unix.ENOMEM, unix.EAGAIN, unix.EDQUOT:
		return ErrSystemLimitReached
	default:
		// EINVAL, EBADF, EMSGSIZE, ENAMETOOLONG, EFAULT and anything
		// unexpected: the caller handed us something malformed.
		return ErrInvalidParam
	}
}
