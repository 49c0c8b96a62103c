package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"alcyxob/loadx/internal/service"

	log "github.com/sirupsen/logrus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCLI().RunContext(ctx, os.Args); err != nil {
		if service.IsValidation(err) {
			fmt.Fprintln(os.Stderr, service.Message(err))
			os.Exit(1)
		}
		log.Errorf("loadx: %s", err)
		os.Exit(2)
	}
}
