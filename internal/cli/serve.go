package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tombowditch/pasters/internal/config"
	"github.com/tombowditch/pasters/internal/ratelimit"
	"github.com/tombowditch/pasters/internal/server/httpserver"
	"github.com/tombowditch/pasters/internal/store"
)

const shutdownTimeout = 5 * time.Second

func (a *app) newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local paste.rs-compatible server",
		Long: `Run a local server that speaks the paste.rs API.

Pastes live in memory unless serve.redis_uri (or REDIS_URI) is set, in
which case they go to Redis and requests are rate limited per client IP.
Point the client at it with --base-url http://<addr>/.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Serving is a long-running mode; show request logs by default.
			if !a.verbose {
				a.log.SetLevel(logrus.InfoLevel)
			}

			sc := a.cfg.Serve
			if addr != "" {
				sc.Addr = addr
			}

			handler, cleanup, err := a.buildServer(sc)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.listen(ctx, sc.Addr, handler)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default "+config.HTTPAddr+")")
	return cmd
}

func (a *app) buildServer(sc config.Serve) (http.Handler, func(), error) {
	opts := httpserver.Options{
		BaseURL:        sc.BaseURL(),
		MaxPayloadSize: sc.MaxPayloadSize,
		TrustProxy:     sc.TrustProxy,
		Logger:         a.log,
	}

	if sc.RedisURI == "" {
		a.log.Info("using in-memory store")
		return httpserver.NewHandler(store.NewMemory(), opts), func() {}, nil
	}

	s, err := store.NewRedis(sc.RedisURI, config.RedisPassword, config.RedisDB, config.PasteTTL)
	if err != nil {
		return nil, nil, err
	}
	a.log.WithField("redis", sc.RedisURI).Info("connected to redis")

	if err := ratelimit.Init(sc.RedisURI, config.RedisPassword); err != nil {
		s.Close()
		return nil, nil, err
	}
	opts.CreateLimiter = ratelimit.NewRedis(ratelimit.Create)
	opts.FetchLimiter = ratelimit.NewRedis(ratelimit.Fetch)

	cleanup := func() {
		if err := s.Close(); err != nil {
			a.log.WithError(err).Warn("closing redis")
		}
	}
	return httpserver.NewHandler(s, opts), cleanup, nil
}

func (a *app) listen(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.WithField("addr", addr).Info("starting http server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
