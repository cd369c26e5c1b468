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

package retval

import (
	"testing"

	"golang.org/x/sys/unix"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		err  error
		want Code
	}{
		{nil, OK},
		{ErrInvalidParam, InvalidParam},
		{ErrPermissionDenied, PermissionDenied},
		{ErrNotFound, NotFound},
		{ErrSystemLimitReached, SystemLimitReached},
		{ErrTimeout, Timeout},
	}
	for _, test := range tests {
		if got := CodeOf(test.err); got != test.want {
			t.Errorf("CodeOf(%v) = %v, want %v", test.err, got, test.want)
		}
	}
}

func TestFromUnix(t *testing.T) {
	tests := []struct {
		errno unix.Errno
		want  *Error
	}{
		{0, nil},
		{unix.EACCES, ErrPermissionDenied},
		{unix.EPERM, ErrPermissionDenied},
		{unix.EEXIST, ErrPermissionDenied},
		{unix.ENOENT, ErrNotFound},
		{unix.ETIMEDOUT, ErrTimeout},
		{unix.EMFILE, ErrSystemLimitReached},
		{unix.ENFILE, ErrSystemLimitReached},
		{unix.ENOSPC, ErrSystemLimitReached},
		{unix.ENOMEM, ErrSystemLimitReached},
		{unix.EINVAL, ErrInvalidParam},
		{unix.EBADF, ErrInvalidParam},
		{unix.ENAMETOOLONG, ErrInvalidParam},
		{unix.EMSGSIZE, ErrInvalidParam},
		// Unknown errnos must not leak through.
		{unix.EXDEV, ErrInvalidParam},
	}
	for _, test := range tests {
		if got := FromUnix(test.errno); got != test.want {
			t.Errorf("FromUnix(%v) = %v, want %v", test.errno, got, test.want)
		}
	}
}

func TestErrorIdentity(t *testing.T) {
	// Sentinels compare by pointer identity; a freshly constructed error
	// with the same code must not compare equal.
	if e := New(Timeout, "timed out"); error(e) == error(ErrTimeout) {
		t.Error("distinct *Error values compare equal")
	}
	if ErrTimeout.Code() != Timeout {
		t.Errorf("ErrTimeout.Code() = %v, want %v", ErrTimeout.Code(), Timeout)
	}
}
