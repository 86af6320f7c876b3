package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/avitali/liblink/internal/service"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	dimColor     = color.New(color.FgHiBlack)
)

func printSuccess(format string, args ...any) {
	_, _ = successColor.Printf("✓ "+format+"\n", args...)
}

func printWarning(format string, args ...any) {
	_, _ = warningColor.Printf("⚠ "+format+"\n", args...)
}

func printError(format string, args ...any) {
	_, _ = errorColor.Fprintf(os.Stderr, "✗ "+format+"\n", args...)
}

// printSyncReport renders the post-run report: counters first, then the
// identifiers behind every non-success outcome so the user can act on
// each one.
func printSyncReport(report *service.SyncReport, dryRun bool) {
	result := report.Result

	if dryRun {
		_, _ = infoColor.Println("Dry run: no filesystem changes were made.")
	}

	fmt.Printf("created %d, refreshed %d, skipped %d", result.Created, result.Refreshed, result.Skipped)
	if result.Forced > 0 {
		fmt.Printf(", forced %d", result.Forced)
	}
	if result.ConflictsLeft > 0 {
		fmt.Printf(", conflicts left %d", result.ConflictsLeft)
	}
	if result.Failed > 0 {
		fmt.Printf(", failed %d", result.Failed)
	}
	fmt.Println()

	for _, id := range result.CreatedIDs {
		printSuccess("linked %s", id)
	}
	for _, id := range result.RefreshedIDs {
		printSuccess("refreshed %s", id)
	}
	for _, id := range result.ForcedIDs {
		printWarning("replaced real path for %s", id)
	}
	for _, conflict := range result.Conflicts {
		printWarning("conflict on %s %s: %s (use --force to overwrite)",
			conflict.Slot, conflict.ID, conflict.Reason)
	}
	for _, failure := range result.Failures {
		printError("failed %s %s: %s", failure.Slot, failure.ID, failure.Reason)
	}

	if len(report.Orphans) > 0 {
		fmt.Println()
		_, _ = dimColor.Printf("%d local symlink(s) have no portable twin (left untouched):\n", len(report.Orphans))
		for _, orphan := range report.Orphans {
			_, _ = dimColor.Printf("  %s %s\n", orphan.Slot, orphan.ID)
		}
	}
}

// confirm asks a y/N question on stdin
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// confirmDestructive requires a literal YES, used before force runs
func confirmDestructive(prompt string) bool {
	printWarning("%s", prompt)
	fmt.Print("Type 'YES' to continue: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(line) == "YES"
}
