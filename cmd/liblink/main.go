// Command liblink keeps a local game-library catalog reconciled with a
// portable one on a removable exFAT drive, materializing local entries
// and manifests as symlinks into the portable catalog.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/avitali/liblink/internal/logger"
)

// errPartial marks a run that completed with conflicts or per-action
// failures left over; main maps it to a distinct exit code.
var errPartial = errors.New("run completed with unresolved items")

func main() {
	code := run()
	_ = logger.Shutdown()
	os.Exit(code)
}

func run() int {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errPartial) {
			return 2
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
