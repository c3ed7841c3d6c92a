/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package log

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestInitAndStructuredLoggingToFile verifies that Init with a file handler
// writes JSON logs and that static and contextual attributes are present.
func TestInitAndStructuredLoggingToFile(t *testing.T) {
	fpath := filepath.Join(os.TempDir(), fmt.Sprintf("gb_log_%d.json", time.Now().UnixNano()))
	t.Cleanup(func() { _ = os.Remove(fpath) })

	Init(Options{Level: "debug", Format: "json", File: fpath})

	l := WithComponent("testcomp")
	l = WithOperation(l, "op1")
	l.Info("hello world", slog.String("k", "v"))

	// Give a brief moment for the filesystem to settle (Windows)
	time.Sleep(50 * time.Millisecond)

	b, err := os.ReadFile(fpath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if len(b) == 0 {
		t.Fatalf("log file is empty")
	}

	scanner := bufio.NewScanner(strings.NewReader(string(b)))
	var last string
	for scanner.Scan() {
		if s := strings.TrimSpace(scanner.Text()); s != "" {
			last = s
		}
	}
	if last == "" {
		t.Fatalf("no log lines found")
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(last), &m); err != nil {
		t.Fatalf("parse log line: %v (%q)", err, last)
	}
	for _, key := range []string{"app", "ver", "component", "op", "k"} {
		if _, ok := m[key]; !ok {
			t.Fatalf("expected attribute %q in log line %q", key, last)
		}
	}
	if m["component"] != "testcomp" || m["op"] != "op1" || m["k"] != "v" {
		t.Fatalf("unexpected attribute values: %v", m)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Leveler{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFromEnvReadsOverrides(t *testing.T) {
	t.Setenv("GB_LOG_LEVEL", "debug")
	t.Setenv("GB_LOG_FORMAT", "json")
	t.Setenv("GB_LOG_SOURCE", "true")
	opts := FromEnv()
	if opts.Level != "debug" || opts.Format != "json" || !opts.AddSource {
		t.Fatalf("unexpected options from env: %+v", opts)
	}
}

func TestPrettyHandlerFormatsAttrs(t *testing.T) {
	var b strings.Builder
	h := &prettyTextHandler{opts: prettyOpts{Level: slog.LevelDebug}, w: &b}
	l := slog.New(h).With(slog.String("component", "snap"))
	l.Info("guide matched", slog.Int64("dist", 3), slog.Bool("snapped", true))
	out := b.String()
	if !strings.Contains(out, "INF") || !strings.Contains(out, "guide matched") {
		t.Fatalf("unexpected console line: %q", out)
	}
	for _, frag := range []string{"component=snap", "dist=3", "snapped=true"} {
		if !strings.Contains(out, frag) {
			t.Fatalf("missing %q in console line %q", frag, out)
		}
	}
}
