package ytdlp

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Client invokes the yt-dlp binary. The zero value uses "yt-dlp" from PATH
// with no per-call timeout.
type Client struct {
	// Binary overrides the yt-dlp executable path. Empty means PATH lookup.
	Binary string
	// Timeout bounds each individual yt-dlp invocation, not the whole run.
	// Zero disables the bound.
	Timeout time.Duration
}

func (c *Client) binary() string {
	if strings.TrimSpace(c.Binary) != "" {
		return c.Binary
	}
	return "yt-dlp"
}

// run executes yt-dlp with the given arguments and returns its stdout.
// Stderr is folded into the returned error so callers see yt-dlp's own
// diagnostic text.
func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.binary(), args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("yt-dlp timed out: %w", ctxErr)
		}
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			return nil, fmt.Errorf("yt-dlp failed: %w", err)
		}
		return nil, fmt.Errorf("yt-dlp failed: %w: %s", err, detail)
	}
	return stdout.Bytes(), nil
}
