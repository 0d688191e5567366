package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"bracelint/internal/driver"
	"bracelint/internal/source"
	"bracelint/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

type checkOutcome struct {
	fileSet *source.FileSet
	results []driver.CheckResult
	err     error
}

// runCheckDirWithUI runs CheckDir while a Bubble Tea progress display consumes
// its scan events.
func runCheckDirWithUI(ctx context.Context, title, dir string, opts driver.CheckOptions) (*source.FileSet, []driver.CheckResult, error) {
	files, err := driver.ListSourceFiles(dir, opts.Config.Scan)
	if err != nil {
		return nil, nil, err
	}

	events := make(chan driver.ScanEvent, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fileSet, results, runErr := driver.CheckDir(ctx, dir, optsCopy)
		outcomeCh <- checkOutcome{fileSet: fileSet, results: results, err: runErr}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
