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

package log

import (
	"strings"
	"testing"
	"time"
)

type capture struct {
	lines []string
}

func (c *capture) Emit(level Level, _ time.Time, format string, v ...any) {
	c.lines = append(c.lines, level.String())
}

func TestLevelFilter(t *testing.T) {
	c := &capture{}
	l := New(c, Info)

	l.Warningf("w")
	l.Infof("i")
	l.Debugf("d")

	if len(c.lines) != 2 {
		t.Fatalf("emitted %d statements, want 2: %v", len(c.lines), c.lines)
	}
	if c.lines[0] != "Warning" || c.lines[1] != "Info" {
		t.Errorf("emitted %v, want [Warning Info]", c.lines)
	}

	l.SetLevel(Debug)
	if !l.IsLogging(Debug) {
		t.Error("IsLogging(Debug) = false after SetLevel(Debug)")
	}
	l.Debugf("d")
	if len(c.lines) != 3 {
		t.Errorf("debug statement not emitted after SetLevel(Debug)")
	}
}

func TestWriterFormat(t *testing.T) {
	var sb strings.Builder
	w := &Writer{Next: &sb}
	w.Emit(Warning, time.Date(2026, 8, 27, 1, 2, 3, 0, time.UTC), "queue %q full", "/q1")

	got := sb.String()
	if !strings.HasPrefix(got, "W0827 01:02:03") {
		t.Errorf("line %q does not carry a glog-style header", got)
	}
	if !strings.Contains(got, `queue "/q1" full`) {
		t.Errorf("line %q does not contain the message", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Errorf("line %q is not newline-terminated", got)
	}
}
