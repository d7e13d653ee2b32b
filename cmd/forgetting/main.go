// Copyright 2023 The acquirecloud Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/acquirecloud/forgettingmap/forgetting"
	"github.com/acquirecloud/forgettingmap/logging"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:          "forgetting",
		Short:        "exercise the bounded LRU associations map",
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd(), newDemoCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var capacity int
	var debug bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "interactive session: add <key> <value>, find <key>, len, quit",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := forgetting.New[string, string](capacity)
			if err != nil {
				return err
			}
			if debug {
				logging.SetLevel(logging.DEBUG)
				m.SetDebugHook(forgetting.LogHook[string, string](logging.NewLogger("forgetting.Map")))
			}
			return runLoop(cmd, m)
		},
	}
	cmd.Flags().IntVar(&capacity, "capacity", 10, "the maximum number of associations the map holds")
	cmd.Flags().BoolVar(&debug, "debug", false, "trace the recency list edges around every operation")
	return cmd
}

func runLoop(cmd *cobra.Command, m *forgetting.Map[string, string]) error {
	out := cmd.OutOrStdout()
	sc := bufio.NewScanner(cmd.InOrStdin())
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "add":
			if len(fields) != 3 {
				fmt.Fprintln(out, "usage: add <key> <value>")
				continue
			}
			m.Add(fields[1], fields[2])
			fmt.Fprintln(out, "ok")
		case "find":
			if len(fields) != 2 {
				fmt.Fprintln(out, "usage: find <key>")
				continue
			}
			if v, ok := m.Find(fields[1]); ok {
				fmt.Fprintln(out, v)
			} else {
				fmt.Fprintln(out, "<absent>")
			}
		case "len":
			fmt.Fprintln(out, m.Len())
		case "quit", "exit":
			return nil
		default:
			fmt.Fprintf(out, "unknown command %q\n", fields[0])
		}
	}
	return sc.Err()
}

func newDemoCmd() *cobra.Command {
	var capacity, ops, keys int

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "drive the map with a random workload and report the hit rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := forgetting.New[string, string](capacity)
			if err != nil {
				return err
			}
			log := logging.NewLogger("demo")

			keyspace := make([]string, keys)
			for i := range keyspace {
				keyspace[i] = uuid.NewString()
			}

			rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
			start := time.Now()
			hits, misses := 0, 0
			for i := 0; i < ops; i++ {
				k := keyspace[rnd.Intn(len(keyspace))]
				if _, ok := m.Find(k); ok {
					hits++
					continue
				}
				misses++
				m.Add(k, uuid.NewString())
			}
			log.Infof("%d ops over %d keys, capacity %d: %d hits, %d misses, len=%d, took %v",
				ops, keys, capacity, hits, misses, m.Len(), time.Since(start))
			return nil
		},
	}
	cmd.Flags().IntVar(&capacity, "capacity", 100, "the maximum number of associations the map holds")
	cmd.Flags().IntVar(&ops, "ops", 100000, "the number of operations to run")
	cmd.Flags().IntVar(&keys, "keys", 500, "the size of the generated keyspace")
	return cmd
}
