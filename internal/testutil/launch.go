package testutil

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func buildBinary(t *testing.T) string {
	t.Helper()
	RequireTmux(t)
	tdir := t.TempDir()
	bin := filepath.Join(tdir, "popmenu")
	cmd := exec.Command("go", "build", "-o", bin, ".")
	cmd.Dir = repoRoot(t)
	cmd.Env = append(os.Environ(), "GOCACHE="+filepath.Join(tdir, ".gocache"))
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build binary: %v\n%s", err, out)
	}
	return bin
}

// waitForText polls the pane until its contents include want.
func waitForText(t *testing.T, ctx context.Context, socket, target, exitPath, want string) string {
	t.Helper()
	loggedPaneMissing := false
	last := ""
	for {
		select {
		case <-ctx.Done():
			t.Fatalf("timeout waiting for %q: %v\nlast capture:\n%s", want, ctx.Err(), last)
		case <-time.After(50 * time.Millisecond):
			if exitPath != "" {
				if data, err := os.ReadFile(exitPath); err == nil {
					code := strings.TrimSpace(string(data))
					if code != "" && code != "0" {
						t.Fatalf("popmenu exited early with code %s", code)
					}
				}
			}
			out, err := CapturePane(t, socket, target)
			if err != nil {
				if errors.Is(err, ErrPaneUnavailable) {
					if !loggedPaneMissing {
						t.Logf("waiting for pane %s to become available", target)
						loggedPaneMissing = true
					}
					continue
				}
				t.Fatalf("capture-pane error: %v", err)
			}
			last = out
			if strings.Contains(out, want) {
				return out
			}
		}
	}
}

func repoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd failed: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}

// Launch starts bin with args in a new 80x24 session on the server behind
// socket. The returned path receives the exit code once the program ends;
// the pane stays open afterwards so it can still be captured.
func Launch(t *testing.T, socket, session, bin string, args ...string) (pane, exitPath string) {
	t.Helper()
	dir := t.TempDir()
	exitPath = filepath.Join(dir, "exit-code")
	script := filepath.Join(dir, "run.sh")
	quoted := make([]string, 0, len(args)+1)
	for _, a := range append([]string{bin}, args...) {
		quoted = append(quoted, "'"+strings.ReplaceAll(a, "'", `'\''`)+"'")
	}
	body := "#!/bin/sh\n" +
		strings.Join(quoted, " ") + " 2>/dev/null\n" +
		"printf '%s' $? > '" + exitPath + "'\n" +
		"sleep 300\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("failed to write launcher script: %v", err)
	}
	if err := tmuxCommand(socket, "new-session", "-d", "-x", "80", "-y", "24", "-s", session, script).Run(); err != nil {
		t.Fatalf("failed to launch %s: %v", bin, err)
	}
	if err := tmuxCommand(socket, "has-session", "-t", session).Run(); err != nil {
		t.Skipf("skipping: unable to create tmux session: %v", err)
	}
	t.Cleanup(func() { _ = tmuxCommand(socket, "kill-session", "-t", session).Run() })
	return session + ":0.0", exitPath
}

func waitForExit(t *testing.T, ctx context.Context, exitPath string) string {
	t.Helper()
	for {
		if data, err := os.ReadFile(exitPath); err == nil && len(data) > 0 {
			return string(data)
		}
		select {
		case <-ctx.Done():
			t.Fatalf("timeout waiting for exit: %v", ctx.Err())
		case <-time.After(50 * time.Millisecond):
		}
	}
}
