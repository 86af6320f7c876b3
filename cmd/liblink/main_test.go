package main

import "testing"

func TestSudoID(t *testing.T) {
	t.Setenv("TEST_SUDO_ID", "1000")
	if got := sudoID("TEST_SUDO_ID", 0); got != 1000 {
		t.Errorf("Expected 1000, got %d", got)
	}

	t.Setenv("TEST_SUDO_ID", "not-a-number")
	if got := sudoID("TEST_SUDO_ID", 42); got != 42 {
		t.Errorf("Expected fallback 42, got %d", got)
	}

	if got := sudoID("TEST_SUDO_ID_UNSET", 42); got != 42 {
		t.Errorf("Expected fallback 42 for unset variable, got %d", got)
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	rootCmd := newRootCommand()

	want := []string{"sync", "export", "runtime", "fstab", "detect", "history"}
	for _, name := range want {
		found := false
		for _, cmd := range rootCmd.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected subcommand %s", name)
		}
	}
}
