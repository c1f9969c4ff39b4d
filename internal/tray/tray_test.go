package tray

import "testing"

func TestNew_EnabledByDefault(t *testing.T) {
	// The menu opens showing recognition as on; whoever wires the tray to
	// the pipeline reads this to bring the two in sync at startup.
	if !New().IsEnabled() {
		t.Error("IsEnabled() = false on a fresh tray, want true")
	}
}
