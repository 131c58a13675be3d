package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"refactor/internal/driver"
	"refactor/internal/ui"
)

type runOutcome struct {
	result *driver.Result
	err    error
}

func runWithUI(ctx context.Context, req driver.Request) (*driver.Result, error) {
	files, err := driver.ExpandInputs(req.Inputs)
	if err != nil {
		return nil, err
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		reqCopy := req
		reqCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.Run(ctx, reqCopy)
		outcomeCh <- runOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("reorganize", files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
