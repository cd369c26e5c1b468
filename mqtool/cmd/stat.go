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

	"github.com/google/subcommands"
	"osal.dev/osal/pkg/hostmq"
	"osal.dev/osal/pkg/ipc"
)

// Stat implements subcommands.Command for the "stat" command.
type Stat struct{}

// Name implements subcommands.Command.Name.
func (*Stat) Name() string {
	return "stat"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Stat) Synopsis() string {
	return "prints a queue's attributes and occupancy"
}

// Usage implements subcommands.Command.Usage.
func (*Stat) Usage() string {
	return "stat <name>\n"
}

// SetFlags implements subcommands.Command.SetFlags.
func (*Stat) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.Execute.
func (*Stat) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
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

	maxMsg, err := q.MaxMessages()
	if err != nil {
		Fatalf("querying %q: %v", name, err)
	}
	msgSize, err := q.MaxMessageSize()
	if err != nil {
		Fatalf("querying %q: %v", name, err)
	}
	cur, err := q.CurrentMessages()
	if err != nil {
		Fatalf("querying %q: %v", name, err)
	}

	fmt.Printf("name:    %s\n", q.Name())
	fmt.Printf("maxmsg:  %d\n", maxMsg)
	fmt.Printf("msgsize: %d\n", msgSize)
	fmt.Printf("curmsgs: %d\n", cur)
	return subcommands.ExitSuccess
}
