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

// Binary mqtool inspects and exercises kernel message queues: create,
// unlink, send, recv, stat, and a bench mode that stresses a queue with
// concurrent producers and consumers.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"osal.dev/osal/mqtool/cmd"
	"osal.dev/osal/pkg/log"
)

var debug = flag.Bool("debug", false, "enable debug logging")

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(new(cmd.Create), "")
	subcommands.Register(new(cmd.Unlink), "")
	subcommands.Register(new(cmd.Send), "")
	subcommands.Register(new(cmd.Recv), "")
	subcommands.Register(new(cmd.Stat), "")
	subcommands.Register(new(cmd.Bench), "")

	// All subcommands must be registered before flag parsing.
	flag.Parse()

	if *debug {
		log.SetLevel(log.Debug)
	}

	os.Exit(int(subcommands.Execute(context.Background())))
}
