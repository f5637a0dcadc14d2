// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package compute

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/skyguide/internal/config"
	"github.com/tomtom215/skyguide/internal/logging"
	"github.com/tomtom215/skyguide/internal/metrics"
)

// waitDelay bounds how long Wait blocks on inherited pipes after the child
// has been killed.
const waitDelay = 2 * time.Second

// Command describes one program invocation.
type Command struct {
	// Name labels the invocation in logs and metrics.
	Name string
	Path string
	Args []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env entries are appended to the parent environment.
	Env []string
	// Timeout is the per-invocation deadline. Zero means the caller's
	// context is the only bound.
	Timeout time.Duration
}

// Output is the captured result of a completed child.
type Output struct {
	Stdout   []byte
	Stderr   []byte
	Duration time.Duration
}

// Invoker spawns child processes.
type Invoker struct {
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewInvoker creates an invoker. A non-positive SpawnRate disables the limiter.
func NewInvoker(cfg config.ComputeConfig) *Invoker {
	limit := rate.Inf
	if cfg.SpawnRate > 0 {
		limit = rate.Limit(cfg.SpawnRate)
	}
	burst := cfg.SpawnBurst
	if burst <= 0 {
		burst = 1
	}
	return &Invoker{
		limiter: rate.NewLimiter(limit, burst),
		logger:  logging.WithComponent("compute"),
	}
}

// Run starts cmd, writes stdin to it and waits for it to exit.
//
// A child that exits non-zero yields *ExitError. A child still running at
// the deadline is killed and ErrTimeout is returned. Cancellation of ctx by
// the caller is returned as ctx.Err().
func (i *Invoker) Run(ctx context.Context, cmd Command, stdin []byte) (*Output, error) {
	if err := i.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s: spawn limiter: %w", ErrSpawn, cmd.Name, err)
	}

	runCtx := ctx
	if cmd.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	c := exec.CommandContext(runCtx, cmd.Path, cmd.Args...)
	c.Dir = cmd.Dir
	c.WaitDelay = waitDelay
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	if stdin != nil {
		c.Stdin = bytes.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	log := i.logger.With().Str("program", cmd.Name).Logger()
	log.Debug().Str("path", cmd.Path).Strs("args", cmd.Args).Str("dir", cmd.Dir).Msg("Spawning process")

	start := time.Now()
	if err := c.Start(); err != nil {
		metrics.RecordProcess(cmd.Name, "spawn_error", time.Since(start))
		return nil, fmt.Errorf("%w: %s: %w", ErrSpawn, cmd.Name, err)
	}
	err := c.Wait()
	out := &Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes(), Duration: time.Since(start)}

	if err != nil {
		switch {
		case ctx.Err() != nil && !errors.Is(ctx.Err(), context.DeadlineExceeded):
			metrics.RecordProcess(cmd.Name, "canceled", out.Duration)
			return out, ctx.Err()
		case runCtx.Err() != nil:
			metrics.RecordProcess(cmd.Name, "timeout", out.Duration)
			log.Warn().Dur("duration", out.Duration).Msg("Process killed at deadline")
			return out, fmt.Errorf("%w: %s after %s", ErrTimeout, cmd.Name, out.Duration.Round(time.Millisecond))
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			metrics.RecordProcess(cmd.Name, "exit_error", out.Duration)
			log.Warn().Int("exit_code", exitErr.ExitCode()).Str("stderr", tail(out.Stderr, 512)).Msg("Process failed")
			return out, &ExitError{
				Program: cmd.Name,
				Code:    exitErr.ExitCode(),
				Stderr:  tail(bytes.TrimSpace(out.Stderr), maxStderrTail),
			}
		}
		// Wait failures other than a non-zero exit are I/O errors on the
		// child's pipes.
		metrics.RecordProcess(cmd.Name, "spawn_error", out.Duration)
		return out, fmt.Errorf("%w: %s: %w", ErrSpawn, cmd.Name, err)
	}

	metrics.RecordProcess(cmd.Name, "ok", out.Duration)
	log.Debug().Dur("duration", out.Duration).Int("stdout_bytes", len(out.Stdout)).Msg("Process finished")
	return out, nil
}

// Invoke encodes input as JSON on the child's stdin, runs it, and decodes
// the document that follows the last marker on stdout into result.
func (i *Invoker) Invoke(ctx context.Context, cmd Command, input any, marker string, result any) error {
	payload, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to encode %s input: %w", cmd.Name, err)
	}

	out, err := i.Run(ctx, cmd, payload)
	if err != nil {
		return err
	}

	doc, err := out.Result(marker)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.Name, err)
	}
	if err := json.Unmarshal(doc, result); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, cmd.Name, err)
	}
	return nil
}
