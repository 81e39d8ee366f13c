package main

import (
	"DMR_Link/config"
	"DMR_Link/internal/bootstrap"
	"DMR_Link/internal/worker"
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	app := bootstrap.Init()
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	trigger := make(chan struct{}, 1)
	app.ListenExpiry(ctx, func(string) { worker.Notify(trigger) })

	log.Printf("link sweeper started, interval %s", config.AppConfig.SweepInterval)
	worker.RunSweeper(ctx, app.Tracker, config.AppConfig.SweepInterval, trigger)
	log.Println("link sweeper stopped")
}
