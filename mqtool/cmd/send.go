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
	"time"

	"github.com/cenkalti/backoff"
	"github.com/google/subcommands"
	"osal.dev/osal/pkg/hostmq"
	"osal.dev/osal/pkg/ipc"
	"osal.dev/osal/pkg/retval"
	"osal.dev/osal/pkg/timer"
)

// Send implements subcommands.Command for the "send" command.
type Send struct {
	priority uint
	timeout  time.Duration
	retry    bool
}

// Name implements subcommands.Command.Name.
func (*Send) Name() string {
	return "send"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Send) Synopsis() string {
	return "sends a message to a queue"
}

// Usage implements subcommands.Command.Usage.
func (*Send) Usage() string {
	return "send [flags] <name> <message>\n"
}

// SetFlags implements subcommands.Command.SetFlags.
func (s *Send) SetFlags(f *flag.FlagSet) {
	f.UintVar(&s.priority, "priority", 0, "message priority")
	f.DurationVar(&s.timeout, "timeout", 0, "per-attempt deadline; 0 blocks indefinitely")
	f.BoolVar(&s.retry, "retry", false, "retry timed-out attempts with exponential backoff")
}

// Execute implements subcommands.Command.Execute.
func (s *Send) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 2 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)
	payload := []byte(f.Arg(1))

	q, err := hostmq.Open(name, ipc.Attr{Mode: ipc.WriteOnly})
	if err != nil {
		Fatalf("opening %q: %v", name, err)
	}
	defer q.Close()

	attempt := func() error {
		if s.timeout <= 0 {
			return q.Send(payload, uint32(s.priority))
		}
		deadline := timer.Expires(s.timeout)
		return q.TimedSend(payload, uint32(s.priority), &deadline)
	}

	if s.retry {
		// Only the elapsed-deadline outcome is retriable; anything else is
		// permanent.
		err = backoff.Retry(func() error {
			err := attempt()
			if err != nil && err != retval.ErrTimeout {
				return backoff.Permanent(err)
			}
			return err
		}, backoff.NewExponentialBackOff())
	} else {
		err = attempt()
	}
	if err != nil {
		Fatalf("sending to %q: %v", name, err)
	}
	return subcommands.ExitSuccess
}
