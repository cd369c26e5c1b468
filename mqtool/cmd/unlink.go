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
)

// Unlink implements subcommands.Command for the "unlink" command.
type Unlink struct{}

// Name implements subcommands.Command.Name.
func (*Unlink) Name() string {
	return "unlink"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Unlink) Synopsis() string {
	return "removes a named message queue"
}

// Usage implements subcommands.Command.Usage.
func (*Unlink) Usage() string {
	return "unlink <name>\n"
}

// SetFlags implements subcommands.Command.SetFlags.
func (*Unlink) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.Execute.
func (*Unlink) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)
	if err := hostmq.Unlink(name); err != nil {
		Fatalf("unlinking %q: %v", name, err)
	}
	return subcommands.ExitSuccess
}
