/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package crash

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonodeflow/internal/graph"
	"gonodeflow/internal/vector"
)

// TestRecoverWritesReportAndSnapshot panics under Recover with exitFn swapped
// out and checks both files land in the context dir.
func TestRecoverWritesReportAndSnapshot(t *testing.T) {
	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w
	defer func() {
		_ = w.Close()
		os.Stderr = oldStderr
		_, _ = io.Copy(io.Discard, r)
	}()

	called := 0
	oldExit := exitFn
	exitFn = func(code int) { called = code }
	defer func() { exitFn = oldExit }()

	dir := t.TempDir()
	g := &graph.Graph{Nodes: []*graph.Node{{ID: "a", Size: vector.Size{W: 10, H: 10}}}}
	func() {
		defer Recover(&Context{Dir: dir, Graph: g})
		panic("boom")
	}()

	var report, snapshot string
	files, _ := os.ReadDir(dir)
	for _, f := range files {
		switch {
		case strings.HasSuffix(f.Name(), ".graph.json"):
			snapshot = filepath.Join(dir, f.Name())
		case strings.HasPrefix(f.Name(), "crash-") && strings.HasSuffix(f.Name(), ".log"):
			report = filepath.Join(dir, f.Name())
		}
	}
	if report == "" || snapshot == "" {
		t.Fatalf("expected report and snapshot, got %v", files)
	}
	b, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !bytes.Contains(b, []byte("Panic: boom")) || !bytes.Contains(b, []byte("Graph: 1 nodes, 0 connections")) {
		t.Fatalf("report content: %s", b)
	}
	var back graph.Graph
	data, _ := os.ReadFile(snapshot)
	if err := json.Unmarshal(data, &back); err != nil || len(back.Nodes) != 1 || back.Nodes[0].ID != "a" {
		t.Fatalf("snapshot: %v %s", err, data)
	}
	if called != 2 {
		t.Fatalf("expected exit code 2, got %d", called)
	}
}

func TestRecoverWithoutPanicIsNoop(t *testing.T) {
	called := false
	oldExit := exitFn
	exitFn = func(int) { called = true }
	defer func() { exitFn = oldExit }()

	func() {
		defer Recover(nil)
	}()
	if called {
		t.Fatalf("exit must not be called without a panic")
	}
}
