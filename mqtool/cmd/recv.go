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

package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"osal.dev/osal/pkg/hostmq"
	"osal.dev/osal/pkg/ipc"
	"osal.dev/osal/pkg/timer"
)

// Recv implements subcommands.Command for the "recv" command.
type Recv struct {
	timeout  time.Duration
	withPrio bool
}

// Name implements subcommands.Command.Name.
func (*Recv) Name() string {
	return "recv"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Recv) Synopsis() string {
	return "receives one message from a queue and prints it"
}

// Usage implements subcommands.Command.Usage.
func (*Recv) Usage() string {
	return "recv [flags] <name>\n"
}

// SetFlags implements subcommands.Command.SetFlags.
func (r *Recv) SetFlags(f *flag.FlagSet) {
	f.DurationVar(&r.timeout, "timeout", 0, "receive deadline; 0 blocks indefinitely")
	f.BoolVar(&r.withPrio, "priority", false, "prefix the output with the message priority")
}

// Execute implements subcommands.Command.Execute.
func (r *Recv) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)

	q, err := hostmq.Open(name, ipc.Attr{Mode: ipc.ReadOnly})
	if err != nil {
		Fatalf("opening %q: %v", name, err)
	}
	defer q.Close()

	size, err := q.MaxMessageSize()
	if err != nil {
		Fatalf("querying %q: %v", name, err)
	}
	buf := make([]byte, size)

	var n int
	var prio uint32
	if r.timeout > 0 {
		deadline := timer.Expires(r.timeout)
		n, prio, err = q.TimedReceive(buf, &deadline)
	} else {
		n, prio, err = q.Receive(buf)
	}
	if err != nil {
		Fatalf("receiving from %q: %v", name, err)
	}

	if r.withPrio {
		fmt.Printf("%d ", prio)
	}
	os.Stdout.Write(buf[:n])
	fmt.Println()
	return subcommands.ExitSuccess
}
