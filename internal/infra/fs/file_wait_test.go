package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWaitForFileExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")
	if err := os.WriteFile(path, []byte("png"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := WaitForFile(context.Background(), path, time.Second); err != nil {
		t.Errorf("expected immediate success, got %v", err)
	}
}

func TestWaitForFileAppearsLater(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")
	go func() {
		time.Sleep(80 * time.Millisecond)
		os.WriteFile(path, []byte("png"), 0644)
	}()
	if err := WaitForFile(context.Background(), path, 3*time.Second); err != nil {
		t.Errorf("expected file to be seen, got %v", err)
	}
}

func TestWaitForFileTimeout(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.png")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatal(err)
	}
	start := time.Now()
	if err := WaitForFile(context.Background(), empty, 120*time.Millisecond); err == nil {
		t.Errorf("empty file should time out")
	}
	if time.Since(start) > 2*time.Second {
		t.Errorf("wait overran maxWait")
	}
}

func TestWaitForFileCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := WaitForFile(ctx, filepath.Join(t.TempDir(), "never.png"), time.Minute)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
