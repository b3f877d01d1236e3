package run

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
)

// Defaults for the runner.
const (
	DefaultInterpreter = "python3"
	DefaultTimeout     = 30 * time.Second
	DefaultMaxOutput   = 1 << 20 // 1 MB per stream
)

// ErrInterpreterNotFound is returned when the configured interpreter is
// not on PATH.
var ErrInterpreterNotFound = errors.New("run: interpreter not found")

// Result captures one program execution.
type Result struct {
	ID       string
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
	TimedOut bool
}

// Runner executes buffer contents with an external interpreter. The
// zero value is not usable; construct with New.
type Runner struct {
	interpreter string
	args        []string
	timeout     time.Duration
	maxOutput   int
}

// Option configures a Runner.
type Option func(*Runner)

// WithInterpreter sets the interpreter binary.
func WithInterpreter(path string) Option {
	return func(r *Runner) {
		r.interpreter = path
	}
}

// WithArgs sets extra arguments passed before the script path.
func WithArgs(args ...string) Option {
	return func(r *Runner) {
		r.args = args
	}
}

// WithTimeout bounds each execution. Zero or negative disables the
// timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithMaxOutput caps captured bytes per stream.
func WithMaxOutput(n int) Option {
	return func(r *Runner) {
		r.maxOutput = n
	}
}

// New creates a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{
		interpreter: DefaultInterpreter,
		timeout:     DefaultTimeout,
		maxOutput:   DefaultMaxOutput,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run writes source to a temporary file and executes it. The result
// carries a fresh ID so callers can correlate output panes, logs, and
// history.
func (r *Runner) Run(ctx context.Context, source string) (*Result, error) {
	dir, err := os.MkdirTemp("", "pyedit-run-*")
	if err != nil {
		return nil, fmt.Errorf("run: temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "main.py")
	if err := os.WriteFile(path, []byte(source), 0o600); err != nil {
		return nil, fmt.Errorf("run: writing script: %w", err)
	}
	return r.RunFile(ctx, path)
}

// RunFile executes a script already on disk.
func (r *Runner) RunFile(ctx context.Context, path string) (*Result, error) {
	if _, err := exec.LookPath(r.interpreter); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInterpreterNotFound, r.interpreter)
	}

	runCtx := ctx
	cancel := func() {}
	if r.timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, r.timeout)
	}
	defer cancel()

	args := append(append([]string{}, r.args...), path)
	cmd := exec.CommandContext(runCtx, r.interpreter, args...)

	stdout := newCappedBuffer(r.maxOutput)
	stderr := newCappedBuffer(r.maxOutput)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	// Kill the whole process group on cancellation; killing only the
	// direct child leaves grandchildren holding the output pipes, which
	// keeps Run blocked past the deadline. WaitDelay backstops anything
	// that survives the group kill.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = time.Second

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	result := &Result{
		ID:       uuid.New().String(),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: duration,
		TimedOut: runCtx.Err() == context.DeadlineExceeded,
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		if result.TimedOut {
			result.ExitCode = -1
			return result, nil
		}
		return nil, fmt.Errorf("run: executing %s: %w", r.interpreter, err)
	}
	return result, nil
}

// cappedBuffer keeps at most max bytes and drops the rest.
type cappedBuffer struct {
	buf       bytes.Buffer
	max       int
	truncated bool
}

func newCappedBuffer(max int) *cappedBuffer {
	return &cappedBuffer{max: max}
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	room := b.max - b.buf.Len()
	if room <= 0 {
		b.truncated = true
		return len(p), nil
	}
	if len(p) > room {
		b.buf.Write(p[:room])
		b.truncated = true
		return len(p), nil
	}
	b.buf.Write(p)
	return len(p), nil
}

func (b *cappedBuffer) String() string {
	if b.truncated {
		return b.buf.String() + "\n[output truncated]"
	}
	return b.buf.String()
}
