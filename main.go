package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go.dravis.dev/flow/internal/app"
	"go.dravis.dev/flow/session"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// stdoutInjector writes final session text to standard output, one block per
// session, so the daemon can be piped into other tools.
type stdoutInjector struct{}

func (stdoutInjector) Inject(_ context.Context, text string) error {
	_, err := fmt.Println(text)
	return err
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	slog.Info("starting flow", "version", version, "commit", commit, "date", date)

	svc, err := app.New(version, app.Options{
		Injector: stdoutInjector{},
		Emit: func(event string, data any) {
			if event == session.EventAudioLevel {
				return
			}
			slog.Debug("event", "name", event, "data", data)
		},
	})
	if err != nil {
		slog.Error("init service", "error", err)
		os.Exit(1)
	}
	defer svc.Shutdown()

	if err := svc.Start(); err != nil {
		slog.Error("start service", "error", err)
		os.Exit(1)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	slog.Info("shutting down")
}
