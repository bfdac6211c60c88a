package solana

import (
	"regexp"

	"github.com/gagliardetto/solana-go"
)

// publicKeyPattern accepts 32-44 characters of the base58 alphabet (no 0, I, O, l).
var publicKeyPattern = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)

// IsValidPublicKey reports whether s looks like a Solana address. It is a
// format check only; the backend decides whether the key is usable.
func IsValidPublicKey(s string) bool {
	return publicKeyPattern.MatchString(s)
}

// ParsePublicKey decodes a base58 address into its 32 bytes.
func ParsePublicKey(s string) (solana.PublicKey, bool) {
	pk, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return solana.PublicKey{}, false
	}
	return pk, true
}

var wellKnownPrograms = []struct {
	id    solana.PublicKey
	label string
}{
	{solana.SystemProgramID, "System Program"},
	{solana.TokenProgramID, "SPL Token Program"},
	{solana.Token2022ProgramID, "Token-2022 Program"},
	{solana.SPLAssociatedTokenAccountProgramID, "Associated Token Account Program"},
	{solana.SysVarRentPubkey, "Rent Sysvar"},
}

// ProgramLabel names well-known program and sysvar ids. Unknown ids return "".
func ProgramLabel(id string) string {
	pk, ok := ParsePublicKey(id)
	if !ok {
		return ""
	}
	for _, p := range wellKnownPrograms {
		if pk.Equals(p.id) {
			return p.label
		}
	}
	return ""
}
