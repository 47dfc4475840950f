package main

import "testing"

// These only probe the flag-scanning logic in run that short-circuits
// before touching the filesystem: a missing source path always prints
// usage and exits 0, regardless of which other flags were present.

func TestRunWithNoArgsPrintsUsageAndExitsZero(t *testing.T) {
	if got := run([]string{"decafc"}); got != 0 {
		t.Errorf("run with no source path = %d, want 0", got)
	}
}

func TestRunWithOnlyFlagsPrintsUsageAndExitsZero(t *testing.T) {
	if got := run([]string{"decafc", "--debug", "--no-color"}); got != 0 {
		t.Errorf("run with flags but no source path = %d, want 0", got)
	}
}
