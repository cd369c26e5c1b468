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

package waiter

import (
	"testing"
)

type countCallback struct {
	count int
}

func (c *countCallback) Callback(*Entry) {
	c.count++
}

func TestNotifyMask(t *testing.T) {
	var q Queue
	in := &countCallback{}
	out := &countCallback{}

	eIn := Entry{Callback: in}
	eOut := Entry{Callback: out}
	q.EventRegister(&eIn, EventIn)
	q.EventRegister(&eOut, EventOut)

	q.Notify(EventIn)
	if in.count != 1 || out.count != 0 {
		t.Errorf("Notify(EventIn): in=%d out=%d, want in=1 out=0", in.count, out.count)
	}

	q.Notify(EventOut)
	if in.count != 1 || out.count != 1 {
		t.Errorf("Notify(EventOut): in=%d out=%d, want in=1 out=1", in.count, out.count)
	}

	q.Notify(EventIn | EventOut)
	if in.count != 2 || out.count != 2 {
		t.Errorf("Notify(both): in=%d out=%d, want in=2 out=2", in.count, out.count)
	}
}

func TestUnregister(t *testing.T) {
	var q Queue
	cb := &countCallback{}
	e := Entry{Callback: cb}

	q.EventRegister(&e, EventIn)
	if q.IsEmpty() {
		t.Error("queue empty after EventRegister")
	}
	q.EventUnregister(&e)
	if !q.IsEmpty() {
		t.Error("queue not empty after EventUnregister")
	}
	q.Notify(EventIn)
	if cb.count != 0 {
		t.Errorf("unregistered entry notified %d times", cb.count)
	}
}

func TestChannelEntry(t *testing.T) {
	var q Queue
	e, ch := NewChannelEntry(nil)
	q.EventRegister(&e, EventIn)
	defer q.EventUnregister(&e)

	select {
	case <-ch:
		t.Fatal("channel readable before Notify")
	default:
	}

	q.Notify(EventIn)
	select {
	case <-ch:
	default:
		t.Fatal("channel not readable after Notify")
	}

	// Redundant notifications collapse into the single-slot channel.
	q.Notify(EventIn)
	q.Notify(EventIn)
	<-ch
	select {
	case <-ch:
		t.Fatal("channel readable twice after draining")
	default:
	}
}
