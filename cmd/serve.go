package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/trusthire/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the verification HTTP API",
	Run: func(_ *cobra.Command, _ []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a := newApplication(ctx)

		cfg := a.config.Server
		cfg.Version = version

		srv := server.New(cfg, a.verifier, a.documents, a.interviews, a.logger.Named("server"))

		a.logger.Info("starting the trusthire api", zap.String("version", version), zap.String("addr", cfg.Addr))

		if err := srv.Run(ctx); err != nil {
			a.logger.Fatal("http server", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default :8000)")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}
