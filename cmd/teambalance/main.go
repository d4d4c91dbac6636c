package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/askiada/go-teambalance/internal/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cmd.NewRootCmd().ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}
