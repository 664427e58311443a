/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Command gonodeflow routes node-graph connections through the path cache
// and prints, renders or hit-tests the result.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.trai.ch/zerr"

	"gonodeflow/internal/crash"
	applog "gonodeflow/internal/log"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cc := &crash.Context{Args: append([]string{"gonodeflow"}, args...)}
	defer crash.Recover(cc)

	c := newCLI(cc)
	c.root.SetArgs(args)
	c.root.SetOut(stdout)
	c.root.SetErr(stderr)

	if err := c.execute(ctx); err != nil {
		zerr.Log(ctx, applog.WithComponent("cli"), err)
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	return 0
}
