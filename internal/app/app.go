// Package app runs the interactive line loop over an input/output pair.
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"calkeep/internal/agent"
)

const banner = `Local Calendar Assistant

Call functions with a CALL_FUNCTION directive. Example:
CALL_FUNCTION: book_event(summary="Standup", start_time="2026-01-02T09:00:00", end_time="2026-01-02T09:15:00")

Type 'quit' to exit.`

var exitWords = map[string]bool{"quit": true, "exit": true, "bye": true}

type Application struct {
	agent *agent.Agent
	in    io.Reader
	out   io.Writer
	log   *slog.Logger
}

func New(ag *agent.Agent, in io.Reader, out io.Writer, logger *slog.Logger) *Application {
	if logger == nil {
		logger = slog.Default()
	}
	return &Application{agent: ag, in: in, out: out, log: logger}
}

// Run reads lines until an exit sentinel, end of input or context
// cancellation. Input is read on a goroutine feeding a channel so a
// canceled context interrupts a blocked read.
func (a *Application) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, banner)

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(a.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
		close(lines)
	}()

	for {
		fmt.Fprint(a.out, "\nYou: ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(a.out, "\nGoodbye")
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(a.out, "\nGoodbye")
				if err := <-scanErr; err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				return nil
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if exitWords[strings.ToLower(line)] {
				fmt.Fprintln(a.out, "Goodbye")
				return nil
			}
			fmt.Fprintln(a.out, "\nAgent:")
			fmt.Fprintln(a.out, a.agent.Run(line))
		}
	}
}
