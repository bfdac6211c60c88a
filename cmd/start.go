package cmd

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/strangelove-ventures/ata-devtool/backend"
	"github.com/strangelove-ventures/ata-devtool/relayer"
	"github.com/strangelove-ventures/ata-devtool/server"
)

func Start(a *AppState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Serve the ATA form over http",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := a.Logger
			cfg := a.Config

			if addr, _ := cmd.Flags().GetString(flagServerAddress); addr != "" {
				cfg.Server.Address = addr
			}

			port, err := cmd.Flags().GetInt16(flagMetricsPort)
			if err != nil {
				return fmt.Errorf("invalid port error=%w", err)
			}

			address, err := cmd.Flags().GetString(flagMetricsAddress)
			if err != nil {
				return fmt.Errorf("invalid address error=%w", err)
			}

			metrics := relayer.InitPromMetrics(address, port)

			gin.SetMode(gin.ReleaseMode)
			adapter := backend.NewClient(cfg.Backend, logger, metrics)
			srv, err := server.New(cfg.Server, adapter, logger, metrics)
			if err != nil {
				return fmt.Errorf("error creating server error=%w", err)
			}

			logger.Info("Starting ATA devtool", "backend", cfg.Backend.BaseURL, "metrics", fmt.Sprintf("%s:%d", address, port))
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().String(flagServerAddress, "", "override server.address from the config")
	cmd.Flags().String(flagMetricsAddress, "localhost", "customize Prometheus metrics address")
	cmd.Flags().Int16P(flagMetricsPort, "p", 2112, "customize Prometheus metrics port")

	return cmd
}
