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
	"encoding/binary"
	"flag"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"osal.dev/osal/pkg/hostmq"
	"osal.dev/osal/pkg/ipc"
)

// Bench implements subcommands.Command for the "bench" command. It drives
// a queue with concurrent producers and consumers and verifies, per
// logical endpoint, that everything sent arrived intact and in order.
type Bench struct {
	queueFlags
	producers int
	consumers int
	endpoints int
	count     int
	rate      float64
}

// Name implements subcommands.Command.Name.
func (*Bench) Name() string {
	return "bench"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Bench) Synopsis() string {
	return "stress-tests a queue with concurrent producers and consumers"
}

// Usage implements subcommands.Command.Usage.
func (*Bench) Usage() string {
	return "bench [flags] <name>\n"
}

// SetFlags implements subcommands.Command.SetFlags.
func (b *Bench) SetFlags(f *flag.FlagSet) {
	f.UintVar(&b.maxMsg, "maxmsg", 10, "queue depth")
	f.UintVar(&b.perm, "queue-perm", 0o600, "permission bits for the bench queue")
	f.IntVar(&b.producers, "producers", 4, "number of producer goroutines")
	f.IntVar(&b.consumers, "consumers", 4, "number of consumer goroutines")
	f.IntVar(&b.endpoints, "endpoints", 8, "number of logical endpoints to verify")
	f.IntVar(&b.count, "count", 1000, "messages per producer")
	f.Float64Var(&b.rate, "rate", 0, "aggregate send rate limit in messages/sec; 0 is unlimited")
}

// benchEndpoint accumulates a per-endpoint message count and order-sensitive
// hash on one side of the queue.
type benchEndpoint struct {
	mu      sync.Mutex
	counter uint32
	hash    uint64
}

func benchHash(old uint64, payload uint32) uint64 {
	h := fnv.New32a()
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], payload)
	h.Write(buf[:])
	return (old << 4) ^ uint64(h.Sum32())
}

// Execute implements subcommands.Command.Execute.
func (b *Bench) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	if b.producers < 1 || b.consumers < 1 || b.endpoints < 1 || b.count < 1 {
		Fatalf("producers, consumers, endpoints and count must be positive")
	}
	total := b.producers * b.count
	if total%b.consumers != 0 {
		Fatalf("producers*count (%d) must divide evenly among %d consumers", total, b.consumers)
	}
	name := f.Arg(0)

	b.msgSize = 8
	q, err := hostmq.Open(name, b.attr(ipc.ReadWrite, true, false))
	if err != nil {
		Fatalf("opening %q: %v", name, err)
	}
	defer func() {
		q.Close()
		hostmq.Unlink(name)
	}()

	limiter := rate.NewLimiter(rate.Inf, 1)
	if b.rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(b.rate), 1)
	}

	sources := make([]benchEndpoint, b.endpoints)
	dests := make([]benchEndpoint, b.endpoints)

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)

	for p := 0; p < b.producers; p++ {
		p := p
		g.Go(func() error {
			for i := 0; i < b.count; i++ {
				if err := limiter.Wait(ctx); err != nil {
					return err
				}
				dest := uint32((p + i) % b.endpoints)
				src := &sources[dest]

				src.mu.Lock()
				src.counter++
				payload := src.counter
				src.hash = benchHash(src.hash, payload)

				var msg [8]byte
				binary.LittleEndian.PutUint32(msg[0:4], dest)
				binary.LittleEndian.PutUint32(msg[4:8], payload)
				err := q.Send(msg[:], 0)
				src.mu.Unlock()
				if err != nil {
					return fmt.Errorf("send: %w", err)
				}
			}
			return nil
		})
	}

	var receiveMu sync.Mutex
	perConsumer := total / b.consumers
	for c := 0; c < b.consumers; c++ {
		g.Go(func() error {
			buf := make([]byte, 8)
			for i := 0; i < perConsumer; i++ {
				receiveMu.Lock()
				n, _, err := q.Receive(buf)
				if err != nil {
					receiveMu.Unlock()
					return fmt.Errorf("receive: %w", err)
				}
				if n != 8 {
					receiveMu.Unlock()
					return fmt.Errorf("receive: got %d bytes, want 8", n)
				}
				dest := binary.LittleEndian.Uint32(buf[0:4])
				payload := binary.LittleEndian.Uint32(buf[4:8])
				if int(dest) >= b.endpoints {
					receiveMu.Unlock()
					return fmt.Errorf("receive: endpoint %d out of range", dest)
				}

				d := &dests[dest]
				d.mu.Lock()
				d.counter++
				d.hash = benchHash(d.hash, payload)
				d.mu.Unlock()
				receiveMu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		Fatalf("bench failed: %v", err)
	}
	elapsed := time.Since(start)

	bad := false
	for i := 0; i < b.endpoints; i++ {
		if sources[i].counter != dests[i].counter || sources[i].hash != dests[i].hash {
			fmt.Printf("endpoint %d: MISMATCH sent=%d recv=%d srchash=%#x dsthash=%#x\n",
				i, sources[i].counter, dests[i].counter, sources[i].hash, dests[i].hash)
			bad = true
		}
	}
	if bad {
		return subcommands.ExitFailure
	}

	fmt.Printf("%d messages, %d producers, %d consumers, %d endpoints: ok in %v (%.0f msg/s)\n",
		total, b.producers, b.consumers, b.endpoints, elapsed.Round(time.Millisecond),
		float64(total)/elapsed.Seconds())
	return subcommands.ExitSuccess
}
