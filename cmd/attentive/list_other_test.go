//go:build !windows

package main

import (
	"strings"
	"testing"
)

func TestListLine(t *testing.T) {
	if got, want := listLine(42, "bash"), "  [42] bash"; got != want {
		t.Errorf("listLine(42, \"bash\") = %q, want %q", got, want)
	}

	// Without an executable path no classification is possible, so the
	// row must not carry one.
	if got := listLine(1, "init"); strings.Contains(got, "restricted") {
		t.Errorf("listLine(1, \"init\") = %q, classifies a process with no known path", got)
	}
}
