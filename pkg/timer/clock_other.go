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

//go:build !linux

package timer

import (
	"time"
)

// base anchors the process-local monotonic epoch. time.Since uses the
// monotonic reading embedded in base, never the wall clock.
var base = time.Now()

func now() Deadline {
	elapsed := time.Since(base)
	return Deadline{
		Sec:  int64(elapsed / time.Second),
		Nsec: int64(elapsed % time.Second),
	}
}
