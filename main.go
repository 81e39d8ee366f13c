package main

import (
	"DMR_Link/config"
	"DMR_Link/internal/bootstrap"
	"DMR_Link/internal/handler"
	"DMR_Link/internal/worker"
	"DMR_Link/router"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// main initializes services, starts the link sweeper and serves HTTP.
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	app := bootstrap.Init()
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	trigger := make(chan struct{}, 1)
	app.ListenExpiry(ctx, func(string) { worker.Notify(trigger) })

	sweeperDone := make(chan struct{})
	go func() {
		worker.RunSweeper(ctx, app.Tracker, config.AppConfig.SweepInterval, trigger)
		close(sweeperDone)
	}()

	h := handler.NewHandler(app.Resolver, app.DMR, app.Tracker)
	srv := &http.Server{
		Addr:    config.AppConfig.HTTPAddr,
		Handler: router.InitRouter(h),
	}
	err := serve(ctx, stop, srv)
	<-sweeperDone
	return err
}

// serve runs srv until ctx is done or the listener fails, then shuts it
// down. A listener failure calls stop so the sweeper winds down as well.
func serve(ctx context.Context, stop context.CancelFunc, srv *http.Server) error {
	serveErr := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	var err error
	select {
	case <-ctx.Done():
		log.Println("shutting down")
	case err = <-serveErr:
		log.Printf("http server: %v, shutting down", err)
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Printf("http shutdown: %v", shutdownErr)
	}
	return err
}
