package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strangelove-ventures/ata-devtool/backend"
	"github.com/strangelove-ventures/ata-devtool/form"
	"github.com/strangelove-ventures/ata-devtool/ui"
)

// ErrSubmissionFailed is returned by submit when the attempt ended with an
// error notification.
var ErrSubmissionFailed = errors.New("submission failed")

func Submit(a *AppState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Create or verify one ATA and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := cmd.Flags().GetString(flagToken)
			if err != nil {
				return fmt.Errorf("invalid token flag error=%w", err)
			}
			owner, err := cmd.Flags().GetString(flagOwner)
			if err != nil {
				return fmt.Errorf("invalid owner flag error=%w", err)
			}

			var last form.Notification
			notifier := form.NotifierFunc(func(n form.Notification) {
				last = n
				ui.Notifier{UI: a.UI}.Notify(n)
			})

			adapter := backend.NewClient(a.Config.Backend, a.Logger, nil)
			c := form.NewController(adapter, notifier, a.Logger, nil)

			stop := ui.SpinWhileLoading(a.UI, c)
			c.Submit(cmd.Context(), token, owner)
			stop()

			if res, ok := c.State().LastResult.Get(); ok {
				ui.RenderResult(a.UI, res)
			}
			return outcomeError(last)
		},
	}

	cmd.Flags().StringP(flagToken, "t", "", "token symbol, e.g. USDC")
	cmd.Flags().StringP(flagOwner, "o", "", "owner wallet public key")

	return cmd
}

// outcomeError maps the last notification of a submit run to the command's
// result. A run that reported nothing is a failure too.
func outcomeError(last form.Notification) error {
	switch last.Severity {
	case form.SeveritySuccess:
		return nil
	case form.SeverityError:
		return fmt.Errorf("%w: %s", ErrSubmissionFailed, last.Description)
	}
	return fmt.Errorf("%w: no outcome reported", ErrSubmissionFailed)
}
