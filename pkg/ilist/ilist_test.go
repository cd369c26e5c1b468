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

package ilist

import (
	"testing"
)

type testElem struct {
	Entry[*testElem]
	value int
}

func values(l *List[*testElem]) []int {
	var vals []int
	for e := l.Front(); e != nil; e = e.Next() {
		vals = append(vals, e.value)
	}
	return vals
}

func checkList(t *testing.T, l *List[*testElem], want []int) {
	t.Helper()
	got := values(l)
	if len(got) != len(want) {
		t.Fatalf("list is %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("list is %v, want %v", got, want)
		}
	}
	if l.Len() != len(want) {
		t.Errorf("Len() = %d, want %d", l.Len(), len(want))
	}
}

func TestZeroValue(t *testing.T) {
	var l List[*testElem]
	if !l.Empty() {
		t.Error("zero value list is not empty")
	}
	if l.Front() != nil || l.Back() != nil {
		t.Error("zero value list has a front or back element")
	}
}

func TestPushPop(t *testing.T) {
	var l List[*testElem]
	l.PushBack(&testElem{value: 1})
	l.PushBack(&testElem{value: 2})
	l.PushFront(&testElem{value: 0})
	checkList(t, &l, []int{0, 1, 2})

	l.Remove(l.Front())
	checkList(t, &l, []int{1, 2})
	l.Remove(l.Back())
	checkList(t, &l, []int{1})
	l.Remove(l.Front())
	checkList(t, &l, nil)
	if !l.Empty() {
		t.Error("list is not empty after removing all elements")
	}
}

func TestInsert(t *testing.T) {
	var l List[*testElem]
	a := &testElem{value: 1}
	c := &testElem{value: 3}
	l.PushBack(a)
	l.PushBack(c)

	l.InsertAfter(a, &testElem{value: 2})
	checkList(t, &l, []int{1, 2, 3})

	l.InsertBefore(a, &testElem{value: 0})
	checkList(t, &l, []int{0, 1, 2, 3})

	l.InsertAfter(c, &testElem{value: 4})
	checkList(t, &l, []int{0, 1, 2, 3, 4})
}

func TestRemoveMiddle(t *testing.T) {
	var l List[*testElem]
	var elems [5]*testElem
	for i := range elems {
		elems[i] = &testElem{value: i}
		l.PushBack(elems[i])
	}
	l.Remove(elems[2])
	checkList(t, &l, []int{0, 1, 3, 4})
	if elems[2].Next() != nil || elems[2].Prev() != nil {
		t.Error("removed element still linked")
	}
}

func TestReset(t *testing.T) {
	var l List[*testElem]
	l.PushBack(&testElem{value: 1})
	l.Reset()
	if !l.Empty() {
		t.Error("list is not empty after Reset")
	}
}
