package ui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"hop/internal/buildpipeline"
)

// RunWithProgress runs work in the background while a progress view
// renders its events to out. The view exits once work returns.
func RunWithProgress(out io.Writer, title string, files []string, work func(sink buildpipeline.ProgressSink) error) error {
	events := make(chan buildpipeline.Event, 256)
	done := make(chan error, 1)

	go func() {
		err := work(buildpipeline.ChannelSink{Ch: events})
		close(events)
		done <- err
	}()

	program := tea.NewProgram(NewProgressModel(title, files, events), tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	if uiErr != nil {
		// drain so the worker never blocks on a full channel
		go func() {
			for range events {
			}
		}()
	}
	workErr := <-done
	if uiErr != nil {
		return uiErr
	}
	return workErr
}
