package runner

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestShellRunner_CapturesCombinedOutput(t *testing.T) {
	out, err := ShellRunner{}.Run(context.Background(), "echo out; echo err 1>&2", 5*time.Second)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out, "out") || !strings.Contains(out, "err") {
		t.Errorf("combined output missing streams: %q", out)
	}
}

func TestShellRunner_NonZeroExit(t *testing.T) {
	out, err := ShellRunner{}.Run(context.Background(), "echo partial; exit 3", 5*time.Second)

	var procErr *ProcessError
	if !errors.As(err, &procErr) {
		t.Fatalf("expected *ProcessError, got %v", err)
	}
	if !strings.Contains(procErr.Output, "partial") {
		t.Errorf("partial output not preserved: %q", procErr.Output)
	}
	if !strings.Contains(out, "partial") {
		t.Errorf("returned output not preserved: %q", out)
	}
	if !strings.Contains(procErr.Error(), "partial") {
		t.Errorf("error message should carry output context: %q", procErr.Error())
	}
}

func TestShellRunner_Timeout(t *testing.T) {
	start := time.Now()
	_, err := ShellRunner{}.Run(context.Background(), "sleep 10", 100*time.Millisecond)
	if time.Since(start) > 5*time.Second {
		t.Fatal("timeout did not kill the process promptly")
	}

	var procErr *ProcessError
	if !errors.As(err, &procErr) {
		t.Fatalf("expected *ProcessError, got %v", err)
	}
	if !strings.Contains(procErr.Err.Error(), "timed out") {
		t.Errorf("expected timeout error, got %v", procErr.Err)
	}
}

func TestProcessError_TruncatesLongOutput(t *testing.T) {
	e := &ProcessError{Output: strings.Repeat("x", 5000), Err: errors.New("boom")}
	if len(e.Error()) > 1000 {
		t.Errorf("error message too long: %d bytes", len(e.Error()))
	}
}
