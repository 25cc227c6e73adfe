package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"gpex/internal/buildpipeline"
	"gpex/internal/driver"
	"gpex/internal/ui"
)

type compileOutcome struct {
	result *driver.Result
	err    error
}

// compileWithUI runs the compilation in the background and renders its
// progress events until the driver is done.
func compileWithUI(ctx context.Context, title, root string, opts driver.Options) (*driver.Result, error) {
	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan compileOutcome, 1)

	go func() {
		opts.Progress = buildpipeline.ChannelSink{Ch: events}
		res, err := driver.Compile(ctx, root, opts)
		outcomeCh <- compileOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, nil, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// если TUI упал раньше, не даём драйверу застрять на канале
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
