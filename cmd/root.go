package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree around a.
func NewRootCmd(a *AppState) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ata-devtool",
		Short:         "Create or verify Solana Associated Token Accounts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.InitAppState()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.ConfigPath, flagConfigPath, "c", defaultConfigPath, "file path of config file")
	rootCmd.PersistentFlags().StringVar(&a.LogLevel, flagLogLevel, "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&a.JSON, flagJSON, false, "output logs as json")

	rootCmd.AddCommand(
		Start(a),
		Form(a),
		Submit(a),
		Tokens(a),
	)

	return rootCmd
}
