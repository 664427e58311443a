/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic in the CLI into a crash report plus a JSON
// snapshot of the graph being routed, so the failing input can be replayed.
package crash

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"go.trai.ch/zerr"

	"gonodeflow/internal/graph"
	applog "gonodeflow/internal/log"
	"gonodeflow/internal/version"
)

// exitFn is swapped in tests so Recover does not end the test process.
var exitFn = os.Exit

// Context describes what the process was doing when it panicked.
type Context struct {
	Dir   string   // report directory; empty means os.TempDir
	Args  []string // command line that led to the panic
	Graph *graph.Graph
}

// Recover captures a panic, logs it with its stack, writes a report and a
// graph snapshot, then exits with code 2.
//
// Usage: defer crash.Recover(ctx)
func Recover(c *Context) {
	r := recover()
	if r == nil {
		return
	}
	l := applog.WithComponent("crash")
	stack := debug.Stack()
	l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

	reportPath, err := writeReport(c, r, stack)
	if err != nil {
		zerr.Log(context.Background(), l, err)
	}
	if c != nil && c.Graph != nil {
		if path, err := writeSnapshot(c, reportPath); err != nil {
			zerr.Log(context.Background(), l, err)
		} else {
			l.Info("graph snapshot written", slog.String("path", path))
		}
	}

	if _, err := fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath); err != nil {
		l.Error("failed to write crash message to stderr", slog.Any("err", err))
	}
	if _, err := fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH); err != nil {
		l.Error("failed to write version info to stderr", slog.Any("err", err))
	}
	exitFn(2)
}

func reportDir(c *Context) string {
	if c != nil && c.Dir != "" {
		_ = os.MkdirAll(c.Dir, 0o755)
		return c.Dir
	}
	return os.TempDir()
}

func writeReport(c *Context, panicVal any, stack []byte) (string, error) {
	stamp := time.Now().Format("20060102-150405.000")
	path := filepath.Join(reportDir(c), fmt.Sprintf("crash-%s.log", stamp))

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "gonodeflow crash report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if c != nil {
		if len(c.Args) > 0 {
			_, _ = fmt.Fprintf(&buf, "Args: %s\n", strings.Join(c.Args, " "))
		}
		if c.Graph != nil {
			_, _ = fmt.Fprintf(&buf, "Graph: %d nodes, %d connections\n", len(c.Graph.Nodes), len(c.Graph.Connections))
		}
	}
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return path, zerr.With(zerr.Wrap(err, "write crash report"), "path", path)
	}
	return path, nil
}

// writeSnapshot stores the graph next to the report: crash-X.log becomes crash-X.graph.json.
func writeSnapshot(c *Context, reportPath string) (string, error) {
	path := strings.TrimSuffix(reportPath, ".log") + ".graph.json"
	data, err := json.MarshalIndent(c.Graph, "", "  ")
	if err != nil {
		return path, zerr.Wrap(err, "encode graph snapshot")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return path, zerr.With(zerr.Wrap(err, "write graph snapshot"), "path", path)
	}
	return path, nil
}
