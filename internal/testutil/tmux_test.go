package testutil

import "testing"

func TestStartTmuxServerLifecycle(t *testing.T) {
	socket, cleanup, _ := StartTmuxServer(t)
	defer cleanup()
	if err := tmuxCommand(socket, "has-session", "-t", TestSession).Run(); err != nil {
		t.Skipf("skipping: has-session failed: %v", err)
	}
}
