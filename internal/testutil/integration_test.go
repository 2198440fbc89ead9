package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDemoMenuRoundTrip(t *testing.T) {
	bin := buildBinary(t)
	socket, cleanup, logDir := StartTmuxServer(t)
	defer cleanup()
	t.Cleanup(func() {
		AssertNoServerCrash(t, logDir)
	})
	pane, exitFile := Launch(t, socket, "demomenu", bin,
		"-socket", socket, "-width", "80", "-height", "24", "-no-animations")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	waitForText(t, ctx, socket, pane, exitFile, "ready")
	SendKeys(t, socket, pane, "m")
	waitForText(t, ctx, socket, pane, exitFile, "About")
	// File is preselected; Enter opens it and selects New.
	SendKeys(t, socket, pane, "Enter")
	waitForText(t, ctx, socket, pane, exitFile, "Open Recent")
	SendKeys(t, socket, pane, "Enter")
	waitForText(t, ctx, socket, pane, exitFile, `chose "New" (id 101)`)

	SendKeys(t, socket, pane, "q")
	if code := waitForExit(t, ctx, exitFile); code != "0" {
		t.Fatalf("expected clean exit, got code %s", code)
	}
}

func TestListPrintsDefinition(t *testing.T) {
	bin := buildBinary(t)
	socket, cleanup, _ := StartTmuxServer(t)
	defer cleanup()
	def := filepath.Join(t.TempDir(), "menu.txt")
	if err := os.WriteFile(def, []byte("&Build\t1\n&Deploy\t2\tdisabled\n"), 0o644); err != nil {
		t.Fatalf("write definition: %v", err)
	}
	pane, exitFile := Launch(t, socket, "listing", bin, "-list", "-menu", def)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if code := waitForExit(t, ctx, exitFile); code != "0" {
		t.Fatalf("expected clean exit, got code %s", code)
	}
	waitForText(t, ctx, socket, pane, "", "Deploy   2  disabled")
}
