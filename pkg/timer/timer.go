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

// Package timer provides absolute deadlines on the monotonic clock.
//
// A Deadline is an absolute point in monotonic time, so wall-clock
// adjustments can neither shorten nor lengthen a timed wait. Timed
// operations consume deadlines as opaque values and only ever validate,
// compare against now, and compute the remaining duration.
package timer

import (
	"time"
)

// Deadline is an absolute point on the monotonic clock, split into whole
// seconds and nanoseconds within the second. The epoch is unspecified;
// deadlines are only meaningful within the process that created them.
//
// A deadline with a negative Sec, a negative Nsec, or an Nsec of a full
// second or more is malformed; timed operations reject it without blocking.
type Deadline struct {
	Sec  int64
	Nsec int64
}

// Expires returns a deadline d from now. A zero or negative duration yields
// a deadline that has already expired, which timed operations treat as an
// immediate, non-blocking check.
func Expires(d time.Duration) Deadline {
	n := now()
	n.Nsec += int64(d % time.Second)
	n.Sec += int64(d / time.Second)
	if n.Nsec >= int64(time.Second) {
		n.Nsec -= int64(time.Second)
		n.Sec++
	} else if n.Nsec < 0 {
		n.Nsec += int64(time.Second)
		n.Sec--
	}
	if n.Sec < 0 {
		// Clamp rather than produce a malformed deadline; the monotonic
		// clock starts near zero on some platforms.
		n.Sec, n.Nsec = 0, 0
	}
	return n
}

// Now returns the current monotonic time as a Deadline.
func Now() Deadline {
	return now()
}

// Valid reports whether d is well formed.
func (d Deadline) Valid() bool {
	return d.Sec >= 0 && d.Nsec >= 0 && d.Nsec < int64(time.Second)
}

// Remaining returns the duration until d, clamped at zero once d has
// passed.
func (d Deadline) Remaining() time.Duration {
	n := now()
	rem := time.Duration(d.Sec-n.Sec)*time.Second + time.Duration(d.Nsec-n.Nsec)
	if rem < 0 {
		return 0
	}
	return rem
}

// Expired reports whether d has passed.
func (d Deadline) Expired() bool {
	return d.Remaining() == 0
}
