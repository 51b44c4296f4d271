// Package cliutil holds the small pieces of CLI plumbing shared across the
// keygen/encrypt/decrypt commands: verbose progress reporting, duration
// formatting, and numeric flag parsing.
package cliutil

import (
	"fmt"
	"time"
)

// DotPrinter reports progress for an unbounded search (prime candidate
// generation has no known trial count, unlike a fixed-length puzzle scan) by
// printing dots as units of work are recorded and a trailing summary. It
// rate-limits printing the same way a bounded progress bar does, so a fast
// search doesn't flood the terminal with one dot per microsecond.
type DotPrinter struct {
	enabled   bool
	label     string
	startTime time.Time
	lastPrint time.Time
	count     uint64
}

// NewDotPrinter creates a printer for label; it is a no-op if enabled is
// false, so call sites don't need to guard every Tick with a verbosity
// check.
func NewDotPrinter(enabled bool, label string) *DotPrinter {
	now := time.Now()
	return &DotPrinter{enabled: enabled, label: label, startTime: now, lastPrint: now}
}

// Tick records one unit of progress and prints a dot, rate-limited to at
// most once every 100ms.
func (d *DotPrinter) Tick() {
	if !d.enabled {
		return
	}
	d.count++

	now := time.Now()
	if now.Sub(d.lastPrint) < 100*time.Millisecond {
		return
	}
	d.lastPrint = now
	fmt.Print(".")
}

// Finish prints the trailing summary line: how many attempts and how long it
// took.
func (d *DotPrinter) Finish() {
	if !d.enabled {
		return
	}
	elapsed := time.Since(d.startTime)
	fmt.Printf("\n%s: %d attempts in %s\n", d.label, d.count, FormatDuration(elapsed))
}

// FormatDuration formats a duration in a human-readable way, scaling the
// unit to the magnitude of d.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%.1fm", d.Minutes())
	case d < 24*time.Hour:
		return fmt.Sprintf("%.1fh", d.Hours())
	default:
		return fmt.Sprintf("%.1fd", d.Hours()/24)
	}
}
