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

	"github.com/google/subcommands"
	"osal.dev/osal/pkg/hostmq"
	"osal.dev/osal/pkg/ipc"
)

// Create implements subcommands.Command for the "create" command.
type Create struct {
	queueFlags
	exclusive bool
}

// Name implements subcommands.Command.Name.
func (*Create) Name() string {
	return "create"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Create) Synopsis() string {
	return "creates a named message queue"
}

// Usage implements subcommands.Command.Usage.
func (*Create) Usage() string {
	return "create [flags] <name>\n"
}

// SetFlags implements subcommands.Command.SetFlags.
func (c *Create) SetFlags(f *flag.FlagSet) {
	f.UintVar(&c.maxMsg, "maxmsg", 10, "queue depth")
	f.UintVar(&c.msgSize, "msgsize", 1024, "maximum message size in bytes")
	f.UintVar(&c.perm, "perm", 0o600, "permission bits for the new queue")
	f.BoolVar(&c.exclusive, "exclusive", false, "fail if the name already exists")
}

// Execute implements subcommands.Command.Execute.
func (c *Create) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)

	q, err := hostmq.Open(name, c.attr(ipc.ReadWrite, true, c.exclusive))
	if err != nil {
		Fatalf("creating %q: %v", name, err)
	}
	if err := q.Close(); err != nil {
		Fatalf("closing %q: %v", name, err)
	}
	return subcommands.ExitSuccess
}
