// Command qrbatch generates QR codes in bulk from a CSV file.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], &app{stdout: os.Stdout, stderr: os.Stderr})
	stop()
	os.Exit(code)
}

// run executes the root command with args and returns the exit status.
func run(ctx context.Context, args []string, a *app) int {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		printError(a.stderr, err)
	}
	return exitCode(err)
}

func printError(w io.Writer, err error) {
	_, _ = color.New(color.FgRed, color.Bold).Fprintf(w, "Error: %v\n", err)
}
