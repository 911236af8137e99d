package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/joestump/dexview/internal/api"
	"github.com/joestump/dexview/internal/config"
	"github.com/joestump/dexview/internal/detail"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			cat := a.newCatalog()
			cat.RefreshAsync(ctx)

			a.cfg.OnChange(func(next *config.Config, err error) {
				if err != nil {
					a.log.Warn("ignoring invalid config change", zap.Error(err))
					return
				}
				lvl, err := zapcore.ParseLevel(next.Log.Level)
				if err != nil {
					a.log.Warn("ignoring invalid log level", zap.String("level", next.Log.Level))
					return
				}
				if lvl != a.level.Level() {
					a.level.SetLevel(lvl)
					a.log.Info("log level changed", zap.Stringer("level", lvl))
				}
			})

			router := api.NewRouter(api.Deps{
				Catalog:        cat,
				Favorites:      a.favorites,
				Loader:         detail.NewLoader(a.client, a.log.Named("detail")),
				Details:        a.client,
				PageSize:       a.cfg.Listing.PageSize,
				AllowedOrigins: a.cfg.CORS.AllowedOrigins,
				Logger:         a.log.Named("http"),
			})
			srv := &http.Server{
				Addr:              a.cfg.HTTP.Addr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				a.log.Info("listening", zap.String("addr", a.cfg.HTTP.Addr))
				if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				a.log.Info("shutting down")
				return srv.Shutdown(shutdownCtx)
			})
			return g.Wait()
		},
	}
}
