package main

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/emailpattern"
	"github.com/sells-group/leadgen-cli/internal/lead"
	"github.com/sells-group/leadgen-cli/internal/server"
	"github.com/sells-group/leadgen-cli/internal/store"
)

var (
	servePort    int
	serveNoStore bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP aggregation API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var st store.Store
		if !serveNoStore {
			opened, err := openStore(ctx)
			if err != nil {
				zap.L().Warn("serve: store unavailable, run history disabled", zap.Error(err))
			} else {
				st = opened
				defer st.Close() //nolint:errcheck
			}
		}

		engine := lead.NewEngine(emailpattern.NewCache(),
			lead.WithMinPatternMatches(cfg.Match.MinPatternMatches))
		handler := server.New(engine, st, cfg.Server)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: handler,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx) //nolint:errcheck
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	serveCmd.Flags().BoolVar(&serveNoStore, "no-store", false, "disable run history persistence")
	rootCmd.AddCommand(serveCmd)
}
