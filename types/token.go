package types

// TokenOption is an entry of the token selector.
type TokenOption struct {
	Name    string `json:"name" yaml:"name"`
	Symbol  string `json:"symbol" yaml:"symbol"`
	IconURL string `json:"image" yaml:"image"`
}

// FallbackIconURL is shown in place of a token icon that fails to load.
const FallbackIconURL = "https://via.placeholder.com/24?text=Token"

var tokenCatalog = []TokenOption{
	{Name: "USD Coin", Symbol: "USDC", IconURL: "https://assets.coingecko.com/coins/images/6319/standard/usdc.png"},
	{Name: "dogwifhat", Symbol: "WIF", IconURL: "https://assets.coingecko.com/coins/images/33566/standard/dogwifhat.jpg?1702499428"},
	{Name: "Solana", Symbol: "SOL", IconURL: "https://assets.coingecko.com/coins/images/4128/standard/solana.png"},
	{Name: "Ethereum", Symbol: "ETH", IconURL: "https://assets.coingecko.com/coins/images/279/standard/ethereum.png?1696501628"},
	{Name: "Turbo ETH", Symbol: "tETH", IconURL: "https://assets.coingecko.com/coins/images/52492/standard/tETH.png?1733441914"},
	{Name: "Orca", Symbol: "ORCA", IconURL: "https://assets.coingecko.com/coins/images/17547/standard/Orca_Logo.png?1696517083"},
	{Name: "Tether USD", Symbol: "USDT", IconURL: "https://assets.coingecko.com/coins/images/325/standard/Tether.png?1696501661"},
	{Name: "BITZ", Symbol: "BITZ", IconURL: "https://assets.coingecko.com/coins/images/55907/standard/download.png?1747672115"},
}

// Tokens returns a copy of the token catalog in display order.
func Tokens() []TokenOption {
	out := make([]TokenOption, len(tokenCatalog))
	copy(out, tokenCatalog)
	return out
}

// LookupToken finds a catalog entry by its exact symbol.
func LookupToken(symbol string) (TokenOption, bool) {
	for _, t := range tokenCatalog {
		if t.Symbol == symbol {
			return t, true
		}
	}
	return TokenOption{}, false
}

// Label is the selector text, e.g. "USD Coin (USDC)".
func (t TokenOption) Label() string {
	return t.Name + " (" + t.Symbol + ")"
}
