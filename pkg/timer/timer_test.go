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

package timer

import (
	"testing"
	"time"
)

func TestValid(t *testing.T) {
	tests := []struct {
		d    Deadline
		want bool
	}{
		{Deadline{Sec: 0, Nsec: 0}, true},
		{Deadline{Sec: 1, Nsec: 999999999}, true},
		{Deadline{Sec: -1, Nsec: 0}, false},
		{Deadline{Sec: 0, Nsec: -1}, false},
		{Deadline{Sec: 0, Nsec: 1000000000}, false},
	}
	for _, test := range tests {
		if got := test.d.Valid(); got != test.want {
			t.Errorf("Valid(%+v) = %t, want %t", test.d, got, test.want)
		}
	}
}

func TestExpiresRemaining(t *testing.T) {
	d := Expires(time.Second)
	if !d.Valid() {
		t.Fatalf("Expires(1s) produced invalid deadline %+v", d)
	}
	rem := d.Remaining()
	if rem <= 0 || rem > time.Second {
		t.Errorf("Remaining() = %v, want in (0s, 1s]", rem)
	}
	if d.Expired() {
		t.Error("deadline 1s in the future reports expired")
	}
}

func TestExpiredDeadline(t *testing.T) {
	d := Expires(-time.Second)
	if !d.Valid() {
		t.Fatalf("Expires(-1s) produced invalid deadline %+v", d)
	}
	if !d.Expired() {
		t.Error("deadline in the past does not report expired")
	}
	if rem := d.Remaining(); rem != 0 {
		t.Errorf("Remaining() = %v, want 0", rem)
	}
}

func TestMonotonicAdvance(t *testing.T) {
	a := Now()
	time.Sleep(10 * time.Millisecond)
	b := Now()
	if b.Sec < a.Sec || (b.Sec == a.Sec && b.Nsec <= a.Nsec) {
		t.Errorf("clock did not advance: %+v then %+v", a, b)
	}
}

func TestNormalization(t *testing.T) {
	// Carrying nanoseconds over the second boundary must never produce an
	// Nsec outside [0, 1e9).
	for _, dur := range []time.Duration{0, time.Nanosecond, 999 * time.Millisecond, time.Second, 1500 * time.Millisecond} {
		if d := Expires(dur); !d.Valid() {
			t.Errorf("Expires(%v) = %+v, not normalized", dur, d)
		}
	}
}
