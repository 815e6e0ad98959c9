package fs

import (
	"context"
	"fmt"
	"os"
	"time"
)

// WaitForFile waits for a file to exist and be non-empty with exponential backoff.
// Returns an error if the file doesn't appear within maxWait or ctx is done.
func WaitForFile(ctx context.Context, filePath string, maxWait time.Duration) error {
	start := time.Now()
	attempt := 0
	baseDelay := 50 * time.Millisecond

	for {
		if info, err := os.Stat(filePath); err == nil && info.Mode().IsRegular() && info.Size() > 0 {
			return nil
		}

		if time.Since(start) >= maxWait {
			return fmt.Errorf("timeout waiting for file %s after %v", filePath, maxWait)
		}

		// capped at 500ms
		delay := baseDelay * time.Duration(1<<min(attempt, 4))
		if delay > 500*time.Millisecond {
			delay = 500 * time.Millisecond
		}
		if remaining := maxWait - time.Since(start); delay > remaining {
			delay = max(remaining, 0)
		}

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		attempt++
	}
}
