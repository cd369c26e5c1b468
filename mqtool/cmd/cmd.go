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

// Package cmd holds the mqtool subcommands.
package cmd

import (
	"fmt"
	"os"

	"osal.dev/osal/pkg/ipc"
)

// Fatalf logs to stderr and exits with a failure status.
func Fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "mqtool: "+format+"\n", args...)
	os.Exit(1)
}

// queueFlags holds the queue geometry flags shared by the commands that
// create queues.
type queueFlags struct {
	maxMsg  uint
	msgSize uint
	perm    uint
}

func (q *queueFlags) attr(mode ipc.AccessMode, create, exclusive bool) ipc.Attr {
	return ipc.Attr{
		Mode:           mode,
		Create:         create,
		Exclusive:      exclusive,
		MaxMessages:    uint32(q.maxMsg),
		MaxMessageSize: uint32(q.msgSize),
		Perm:           uint32(q.perm),
	}
}
