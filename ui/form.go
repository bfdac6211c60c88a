package ui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/strangelove-ventures/ata-devtool/form"
	"github.com/strangelove-ventures/ata-devtool/solana"
	"github.com/strangelove-ventures/ata-devtool/types"
)

// Notifier shows form notifications as toasts on a UI.
type Notifier struct {
	UI UI
}

func (n Notifier) Notify(note form.Notification) {
	n.UI.Toast(note.Severity == form.SeveritySuccess, note.Title, note.Description)
}

// SpinWhileLoading shows a spinner for as long as c is loading. The returned
// function unsubscribes.
func SpinWhileLoading(u UI, c *form.Controller) func() {
	var stop func()
	return c.Subscribe(func(s form.State) {
		switch {
		case s.IsLoading && stop == nil:
			stop = u.Spinner("Processing...")
		case !s.IsLoading && stop != nil:
			stop()
			stop = nil
		}
	})
}

// RunForm asks for a token and an owner address, submits them and renders
// the result. The controller's notifier reports the outcome.
func RunForm(ctx context.Context, u UI, c *form.Controller) error {
	u.Section("Solana ATA Devtool")
	u.Info("Seamlessly create or verify Associated Token Accounts on Solana")

	tokens := types.Tokens()
	labels := make([]string, len(tokens))
	for i, t := range tokens {
		labels[i] = t.Label()
	}
	idx := u.Choose("Select a token", labels)
	if idx < 0 || idx >= len(tokens) {
		return fmt.Errorf("no token selected")
	}

	u.Info("Public Key/Wallet Address")
	owner := u.Ask(nil)

	c.Submit(ctx, tokens[idx].Symbol, owner)

	if res, ok := c.State().LastResult.Get(); ok {
		RenderResult(u, res)
	}
	return nil
}

// RenderResult prints the result card.
func RenderResult(u UI, res types.AtaResult) {
	u.Section("Result")
	u.KeyValue([][2]string{
		{"Token:", res.Token},
		{"Token Mint:", res.TokenMint},
		{"Owner Public Key:", res.OwnerPublicKey},
		{"Associated Token Address:", res.AssociatedToken},
		{"Status:", res.Status},
	})

	ix, ok := res.Instruction.Get()
	if !ok {
		return
	}
	u.Info("")
	u.Info("Instruction:")
	programID := ix.ProgramID
	if label := solana.ProgramLabel(ix.ProgramID); label != "" {
		programID += " (" + label + ")"
	}
	u.Info("Program ID: %s", programID)
	u.Info("Keys:")
	for _, line := range KeyLines(res, ix) {
		u.Info("  - %s", line)
	}
}

// KeyLines formats instruction keys as "Pubkey: .., Signer: .., Writable: ..",
// followed by the key's role when it is recognisable.
func KeyLines(res types.AtaResult, ix types.Instruction) []string {
	lines := make([]string, len(ix.Keys))
	for i, k := range ix.Keys {
		line := fmt.Sprintf("Pubkey: %s, Signer: %s, Writable: %s",
			k.Pubkey, strconv.FormatBool(k.IsSigner), strconv.FormatBool(k.IsWritable))
		if role := KeyRole(res, k.Pubkey); role != "" {
			line += " [" + role + "]"
		}
		lines[i] = line
	}
	return lines
}

// KeyRole names a key by comparing it to the result's addresses and to
// well-known programs.
func KeyRole(res types.AtaResult, pubkey string) string {
	switch pubkey {
	case "":
		return ""
	case res.AssociatedToken:
		return "associated token account"
	case res.OwnerPublicKey:
		return "owner"
	case res.TokenMint:
		return "mint"
	}
	return solana.ProgramLabel(pubkey)
}
