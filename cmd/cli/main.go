package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/coinbank/internal/buildinfo"
	"github.com/dmitrijs2005/coinbank/internal/client/cli"
	"github.com/dmitrijs2005/coinbank/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	// The REPL blocks on stdin, so an interrupt is handled here rather than
	// waiting for the next line. Cancelling ctx aborts the requests of a
	// running command and Close waits for that command to return.
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		fmt.Println()
	}

	if err := app.Close(); err != nil {
		log.Printf("close: %v", err)
	}
}
