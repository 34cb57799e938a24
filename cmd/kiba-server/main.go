// Command kiba-server runs the Kiba key-value server: it loads an
// optional config file, binds a TCP listener, and wires the dispatcher
// and executor described in spec.md §4 together.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/kiba-db/kiba/internal/config"
	"github.com/kiba-db/kiba/internal/dispatcher"
	"github.com/kiba-db/kiba/internal/executor"
	"github.com/kiba-db/kiba/internal/server"
	"github.com/kiba-db/kiba/internal/store"
)

// must prints a fatal startup error and exits nonzero, mirroring the
// teacher's check(err) pattern: anything that fails before the accept
// loop starts is unrecoverable, per spec.md §7.
func must(log *logrus.Logger, context string, err error) {
	if err == nil {
		return
	}
	log.WithError(err).Fatalf("kiba-server: %s", context)
}

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	var configPath string
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Load(configPath, log)
	must(log, "loading config", err)

	hasher, err := store.NewHasher(cfg.Hasher)
	must(log, "resolving hasher", err)

	backing, err := store.NewListBacking(cfg.List)
	must(log, "resolving list backing", err)

	ln, err := net.Listen("tcp", cfg.Bind)
	must(log, fmt.Sprintf("binding %s", cfg.Bind), err)
	log.WithField("addr", ln.Addr().String()).Info("listening")

	d := dispatcher.New(cfg.CBound)
	s := store.New(store.Options{Hasher: hasher, ListBacking: backing})
	exec := executor.New(s, d, log)
	srv := server.New(ln, d, log)

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.WithField("signal", sig.String()).Info("shutting down")
		cancel()
	}()

	go exec.Run(ctx)

	if err := srv.Serve(ctx); err != nil {
		log.WithError(err).Error("serve exited with error")
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
