package cmd

import (
	"github.com/spf13/cobra"

	"github.com/strangelove-ventures/ata-devtool/types"
)

func Tokens(a *AppState) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens",
		Short: "List the tokens the form offers",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][2]string, 0, len(types.Tokens()))
			for _, t := range types.Tokens() {
				rows = append(rows, [2]string{t.Symbol, t.Name})
			}
			a.UI.Section("Tokens")
			a.UI.KeyValue(rows)
			return nil
		},
	}
}
