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

package timer

import (
	"golang.org/x/sys/unix"
)

// now reads CLOCK_MONOTONIC directly so that deadlines line up with what
// the kernel uses for its own timed waits.
func now() Deadline {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		// clock_gettime on CLOCK_MONOTONIC cannot fail on any supported
		// kernel; a failure here means memory corruption.
		panic("clock_gettime(CLOCK_MONOTONIC) failed: " + err.Error())
	}
	return Deadline{Sec: ts.Sec, Nsec: ts.Nsec}
}
