package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	s := newSession()
	err := s.command().ExecuteContext(ctx)
	s.sync()
	cancel()
	os.Exit(exitCode(err))
}

// exitCode maps a command error to the process status: 2 for rude edits, 1 for failures
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errRudeEdits):
		return 2
	default:
		fmt.Fprintln(os.Stderr, "hotedit:", err)
		return 1
	}
}
