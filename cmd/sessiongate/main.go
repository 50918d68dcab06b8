package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mkrupp/homecase-sessiongate/internal/infra/config"
	"github.com/mkrupp/homecase-sessiongate/internal/infra/logging"
	"github.com/mkrupp/homecase-sessiongate/internal/infra/transport/http"
	"github.com/mkrupp/homecase-sessiongate/internal/repo/session"
	"github.com/mkrupp/homecase-sessiongate/internal/svc/authclient"
	"github.com/mkrupp/homecase-sessiongate/internal/svc/navgate"
	"github.com/mkrupp/homecase-sessiongate/internal/svc/sessionsvc"
	"github.com/mkrupp/homecase-sessiongate/internal/svc/shellsvc"
)

const (
	appName = "demo"
	svcName = "sessiongate"
)

type Config struct {
	config.EnvConfig

	Log   logging.LoggerConfig         `envPrefix:"LOG_"`
	Store session.StoreConfig          `envPrefix:"STORE_"`
	Auth  authclient.HTTPClientConfig  `envPrefix:"AUTH_"`
	HTTP  shellsvc.HTTPTransportConfig `envPrefix:"HTTP_"`
}

func main() {
	var (
		cfg Config
		ctx = context.Background()

		configPrefix = strings.ToUpper(strings.Join([]string{appName, svcName}, "_"))
		loggerName   = strings.ToLower(strings.Join([]string{appName, svcName}, "."))
	)

	if err := config.Parse(ctx, &cfg, configPrefix); err != nil {
		panic(err)
	}

	logging.Configure(ctx, cfg.Log, loggerName)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	err := run(ctx, cfg)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config) (err error) {
	log := logging.GetLogger("cmd.sessiongate")

	defer func() {
		if err != nil {
			log.ErrorContext(ctx, "error", "err", err)
		} else {
			log.InfoContext(ctx, "shutdown")
		}
	}()

	store, err := session.StoreFactoryFromConfig(cfg.Store)(ctx)
	if err != nil {
		return fmt.Errorf("new session store: %w", err)
	}

	defer func() {
		err = errors.Join(err, store.Close())
	}()

	ctrl := sessionsvc.NewController(store)
	auth := authclient.NewHTTPClient(cfg.Auth, nil)

	shell := shellsvc.NewShell(ctrl, auth, navgate.DefaultTrees())
	defer shell.Close()

	state := shell.Bootstrap(ctx)
	log.InfoContext(ctx, "session resolved", "state", state, "driver", cfg.Store.Driver)

	httpTransport := shellsvc.NewHTTPTransport(shell, cfg.HTTP)

	if err := http.ListenAndServe(ctx, httpTransport, cfg.HTTP.HTTPTransportConfig); err != nil {
		return fmt.Errorf("listen and serve: %w", err)
	}

	return nil
}
