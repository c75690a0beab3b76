package ocr

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"time"
)

// maxLoggedStderr caps how much of a failing converter's stderr reaches the log.
const maxLoggedStderr = 8 << 10

// Runner executes an external text converter. Tests substitute a fake.
type Runner interface {
	Run(ctx context.Context, name string, logger *slog.Logger, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, logger *slog.Logger, args ...string) ([]byte, []byte, error) {
	start := time.Now()
	logger.Debug("ocr.exec.start", "cmd", name, "args", args)

	var out, errb bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &out
	cmd.Stderr = &errb

	if err := cmd.Run(); err != nil {
		stderr := errb.Bytes()
		if len(stderr) > maxLoggedStderr {
			stderr = stderr[:maxLoggedStderr]
		}
		logger.Error("ocr.exec.failed", "cmd", name, "duration_ms", time.Since(start).Milliseconds(), "error", err, "stderr", string(stderr))
		return out.Bytes(), errb.Bytes(), err
	}
	logger.Debug("ocr.exec.done", "cmd", name, "duration_ms", time.Since(start).Milliseconds(), "stdout_bytes", out.Len())
	return out.Bytes(), errb.Bytes(), nil
}
