package cmd

import (
	"github.com/spf13/cobra"

	"github.com/strangelove-ventures/ata-devtool/backend"
	"github.com/strangelove-ventures/ata-devtool/form"
	"github.com/strangelove-ventures/ata-devtool/ui"
)

func Form(a *AppState) *cobra.Command {
	return &cobra.Command{
		Use:   "form",
		Short: "Fill in the ATA form interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter := backend.NewClient(a.Config.Backend, a.Logger, nil)
			c := form.NewController(adapter, ui.Notifier{UI: a.UI}, a.Logger, nil)

			stop := ui.SpinWhileLoading(a.UI, c)
			defer stop()

			return ui.RunForm(cmd.Context(), a.UI, c)
		},
	}
}
