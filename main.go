package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"story-archiver/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := cmd.RootCmd.ExecuteContext(ctx); err != nil {
		stop()
		logrus.Fatalf("Error executing command: %v", err)
	}
}
