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

// Package retval defines the closed set of outcomes returned by every
// synchronization and messaging operation, exported as tagged error values.
// This allows for fast pointer comparison while keeping native error codes
// from leaking through backend boundaries. Success is a nil error.
package retval

// Code enumerates the possible operation outcomes.
type Code uint32

// Outcome codes. The set is closed; backends translate their native error
// codes into one of these and nothing else.
const (
	// OK indicates success. Operations report it as a nil error; the code
	// exists for display purposes only.
	OK Code = iota

	// InvalidParam indicates malformed input: oversized names, zero or
	// oversized sizes, undersized buffers, malformed deadlines, or invalid
	// descriptors. The operation had no side effect.
	InvalidParam

	// PermissionDenied indicates that the caller's requested access mode
	// conflicts with the object's protection bits, or that an
	// exclusive-create request hit an existing object.
	PermissionDenied

	// NotFound indicates an open without create against a name that does
	// not exist.
	NotFound

	// SystemLimitReached indicates backing resource exhaustion discovered
	// at creation or use time: queue count, descriptor count, or
	// backing-store quota.
	SystemLimitReached

	// Timeout indicates that a timed wait's deadline elapsed before its
	// condition was satisfied, or that a non-blocking attempt would have
	// had to block.
	Timeout
)

// String implements fmt.Stringer.String.
func (c Code) String() string {
	switch c {
	case OK:
		return "ok"
	case InvalidParam:
		return "invalid parameter"
	case PermissionDenied:
		return "permission denied"
	case NotFound:
		return "not found"
	case SystemLimitReached:
		return "system limit reached"
	case Timeout:
		return "timeout"
	default:
		return "unknown outcome"
	}
}

// Error represents an operation outcome with a descriptive message.
// Comparisons are by pointer identity against the sentinel values below.
type Error struct {
	code    Code
	message string
}

// New creates a new *Error.
func New(code Code, message string) *Error {
	return &Error{
		code:    code,
		message: message,
	}
}

// Error implements error.Error.
func (e *Error) Error() string { return e.message }

// Code returns the outcome code carried by e.
func (e *Error) Code() Code { return e.code }

// Sentinel outcomes. Every failing operation in this module returns one of
// these exact values.
var (
	ErrInvalidParam       = New(InvalidParam, "invalid parameter")
	ErrPermissionDenied   = New(PermissionDenied, "permission denied")
	ErrNotFound           = New(NotFound, "not found")
	ErrSystemLimitReached = New(SystemLimitReached, "system limit reached")
	ErrTimeout            = New(Timeout, "timed out")
)

// CodeOf returns the outcome code for an error returned by any operation in
// this module. A nil error reports OK.
func CodeOf(err error) Code {
	if err == nil {
		return OK
	}
	if e, ok := err.(*Error); ok {
		return e.code
	}
	return InvalidParam
}
