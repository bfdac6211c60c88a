package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/strangelove-ventures/ata-devtool/types"
)

func TestTokenCatalog(t *testing.T) {
	tokens := types.Tokens()
	require.Len(t, tokens, 8)

	seen := make(map[string]bool)
	for _, tok := range tokens {
		require.NotEmpty(t, tok.Name)
		require.NotEmpty(t, tok.IconURL)
		require.False(t, seen[tok.Symbol], "duplicate symbol %s", tok.Symbol)
		seen[tok.Symbol] = true
	}

	// callers cannot mutate the catalog
	tokens[0].Symbol = "XXX"
	require.Equal(t, "USDC", types.Tokens()[0].Symbol)
}

func TestLookupToken(t *testing.T) {
	tok, ok := types.LookupToken("tETH")
	require.True(t, ok)
	require.Equal(t, "Turbo ETH (tETH)", tok.Label())

	_, ok = types.LookupToken("TETH")
	require.False(t, ok)
	_, ok = types.LookupToken("")
	require.False(t, ok)
}
