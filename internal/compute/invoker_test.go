// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package compute

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/skyguide/internal/config"
)

const testMarker = "---JSON_START---"

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}
}

func shell(script string, timeout time.Duration) Command {
	return Command{Name: "test-sh", Path: "/bin/sh", Args: []string{"-c", script}, Timeout: timeout}
}

func TestInvokeUsesLastMarker(t *testing.T) {
	t.Parallel()
	requireShell(t)

	inv := NewInvoker(config.ComputeConfig{})
	script := `cat >/dev/null
echo "loading catalog"
echo "` + testMarker + `"
echo '{"value":"stale"}'
echo "` + testMarker + `"
echo '{"value":"final"}'`

	var got struct {
		Value string `json:"value"`
	}
	if err := inv.Invoke(context.Background(), shell(script, 5*time.Second), map[string]int{"n": 1}, testMarker, &got); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if got.Value != "final" {
		t.Errorf("Expected value from last marker 'final', got %q", got.Value)
	}
}

func TestInvokeReceivesStdin(t *testing.T) {
	t.Parallel()
	requireShell(t)

	inv := NewInvoker(config.ComputeConfig{})
	script := `echo "` + testMarker + `"; cat`

	var got map[string]string
	if err := inv.Invoke(context.Background(), shell(script, 5*time.Second), map[string]string{"echo": "back"}, testMarker, &got); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if got["echo"] != "back" {
		t.Errorf("Expected stdin to round-trip, got %v", got)
	}
}

func TestRunErrors(t *testing.T) {
	t.Parallel()
	requireShell(t)

	tests := []struct {
		name    string
		cmd     Command
		wantErr error
	}{
		{"non-zero exit", shell(`echo boom >&2; exit 3`, 5*time.Second), ErrExit},
		{"timeout", shell(`exec sleep 5`, 100*time.Millisecond), ErrTimeout},
		{"missing binary", Command{Name: "missing", Path: "/nonexistent/engine"}, ErrSpawn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			inv := NewInvoker(config.ComputeConfig{})

			start := time.Now()
			_, err := inv.Run(context.Background(), tt.cmd, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected %v, got %v", tt.wantErr, err)
			}
			if elapsed := time.Since(start); elapsed > 4*time.Second {
				t.Errorf("Run took %s, expected the child to be killed promptly", elapsed)
			}
		})
	}
}

func TestExitErrorCarriesStderr(t *testing.T) {
	t.Parallel()
	requireShell(t)

	inv := NewInvoker(config.ComputeConfig{})
	_, err := inv.Run(context.Background(), shell(`echo "bad input" >&2; exit 2`, 5*time.Second), nil)

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Expected *ExitError, got %T: %v", err, err)
	}
	if exitErr.Code != 2 {
		t.Errorf("Expected exit code 2, got %d", exitErr.Code)
	}
	if !strings.Contains(exitErr.Stderr, "bad input") {
		t.Errorf("Expected stderr in error, got %q", exitErr.Stderr)
	}
}

func TestRunCanceledByCaller(t *testing.T) {
	t.Parallel()
	requireShell(t)

	inv := NewInvoker(config.ComputeConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := inv.Run(ctx, shell(`exec sleep 5`, 10*time.Second), nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestInvokeFramingAndDecode(t *testing.T) {
	t.Parallel()
	requireShell(t)

	inv := NewInvoker(config.ComputeConfig{})
	var out map[string]any

	err := inv.Invoke(context.Background(), shell(`echo '{"a":1}'`, 5*time.Second), nil, testMarker, &out)
	if !errors.Is(err, ErrFraming) {
		t.Errorf("Expected ErrFraming, got %v", err)
	}

	err = inv.Invoke(context.Background(), shell(`echo "`+testMarker+`"; echo 'not json'`, 5*time.Second), nil, testMarker, &out)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("Expected ErrDecode, got %v", err)
	}
}

func TestRunEnvAndDir(t *testing.T) {
	t.Parallel()
	requireShell(t)

	dir := t.TempDir()
	inv := NewInvoker(config.ComputeConfig{})
	cmd := shell(`echo "$DATA_SOURCE"; pwd`, 5*time.Second)
	cmd.Env = []string{"DATA_SOURCE=database"}
	cmd.Dir = dir

	out, err := inv.Run(context.Background(), cmd, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out.Stdout)), "\n")
	if len(lines) != 2 || lines[0] != "database" {
		t.Fatalf("Expected DATA_SOURCE echoed first, got %q", out.Stdout)
	}
	if !strings.HasSuffix(lines[1], strings.TrimPrefix(dir, "/private")) {
		t.Errorf("Expected working dir %s, got %s", dir, lines[1])
	}
}
