package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jacoelho/jsonv/internal/config"
	"github.com/jacoelho/jsonv/internal/execute"
)

func main() {
	exitCode := run()
	os.Exit(exitCode)
}

func run() int {
	cfg, exitResult := config.Parse(os.Args)
	if exitResult != nil {
		exitResult.Print()
		return exitResult.ExitCode
	}

	r := execute.New(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return r.Run(ctx)
}
