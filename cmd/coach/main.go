package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/kapu/chess-coach-go/internal/obslog"
)

func main() {
	if err := obslog.InitFromEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "logging init:", err)
	}
	defer obslog.Sync()

	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
