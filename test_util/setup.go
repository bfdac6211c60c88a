package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"

	"github.com/strangelove-ventures/ata-devtool/cmd"
	"github.com/strangelove-ventures/ata-devtool/types"
)

const (
	TestOwner  = "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T"
	TestAta    = "8Yq3fXq3ZQwvq1dAqcqT8oWkz3cJX7SmdYgnHC2rWbCu"
	TestPayer  = "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"
	TestAPIKey = "test-api-key"

	ataProgramID   = "ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL"
	systemProgram  = "11111111111111111111111111111111"
	tokenProgramID = "TokenkegQfeZyiNwAJbNbGqPBiZ5FvGpk1CK8Gg8Gfj"
)

// TestMints are the mints the fake backend knows about.
var TestMints = map[string]string{
	"USDC": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
	"SOL":  "So11111111111111111111111111111111111111112",
	"USDT": "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB",
}

// GetEnvOrDefault returns the environment variable value or a default if not set
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func init() {
	// Try to load .env file if it exists
	if err := godotenv.Load(".env"); err != nil {
		_ = godotenv.Load("../.env")
	}
}

// FakeBackend mimics /api/createAta. The first call for a token and owner
// creates the account, later calls report it as existing. Unknown tokens and
// a wrong api key get a 400 with an error message.
type FakeBackend struct {
	*httptest.Server

	APIKey string

	mu       sync.Mutex
	requests []url.Values
	accounts map[string]bool

	// Gate, when set, holds every request until it is closed. Entered
	// receives a value once a held request has arrived.
	Gate    chan struct{}
	Entered chan struct{}
}

func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	fb := &FakeBackend{
		APIKey:   TestAPIKey,
		accounts: make(map[string]bool),
	}
	fb.Server = httptest.NewServer(http.HandlerFunc(fb.serve))
	t.Cleanup(fb.Close)
	return fb
}

// Hold makes the backend block requests until the returned func is called.
func (fb *FakeBackend) Hold() (release func()) {
	fb.Gate = make(chan struct{})
	fb.Entered = make(chan struct{}, 1)
	var once sync.Once
	return func() { once.Do(func() { close(fb.Gate) }) }
}

func (fb *FakeBackend) Requests() []url.Values {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	out := make([]url.Values, len(fb.requests))
	copy(out, fb.requests)
	return out
}

func (fb *FakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/createAta" {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()

	fb.mu.Lock()
	fb.requests = append(fb.requests, q)
	fb.mu.Unlock()

	if fb.Gate != nil {
		fb.Entered <- struct{}{}
		<-fb.Gate
	}

	token := q.Get("tokenInput")
	owner := q.Get("ownerPublicKey")

	if q.Get("apiKey") != fb.APIKey {
		writeJSON(w, http.StatusUnauthorized, types.FailureResult{Status: types.StatusFlag{Bool: false}, Token: token, Error: "Invalid API key"})
		return
	}
	mint, ok := TestMints[token]
	if !ok {
		writeJSON(w, http.StatusBadRequest, types.FailureResult{Status: types.StatusFlag{Bool: false}, Token: token, Error: "Unsupported token: " + token})
		return
	}

	fb.mu.Lock()
	key := token + "/" + owner
	exists := fb.accounts[key]
	fb.accounts[key] = true
	fb.mu.Unlock()

	res := types.AtaResult{
		Token:           token,
		TokenMint:       mint,
		OwnerPublicKey:  owner,
		AssociatedToken: TestAta,
		Status:          types.StatusAccountExists,
	}
	if !exists {
		res.Status = types.StatusAccountCreated
		res.Instruction = types.Some(types.Instruction{
			ProgramID: ataProgramID,
			Keys: []types.AccountKey{
				{Pubkey: TestPayer, IsSigner: true, IsWritable: true},
				{Pubkey: TestAta, IsWritable: true},
				{Pubkey: owner},
				{Pubkey: mint},
				{Pubkey: systemProgram},
				{Pubkey: tokenProgramID},
			},
		})
	}
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	bz, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(bz)
}

// ConfigSetup returns an AppState pointed at a fresh fake backend.
func ConfigSetup(t *testing.T) (a *cmd.AppState, fb *FakeBackend) {
	t.Helper()

	fb = NewFakeBackend(t)

	var testConfig = types.Config{
		Backend: types.BackendSettings{
			BaseURL: fb.URL,
			APIKey:  TestAPIKey,
		},
		Server: types.ServerSettings{
			Address:        GetEnvOrDefault("ATA_TEST_SERVER_ADDRESS", "127.0.0.1:0"),
			TrustedProxies: []string{"127.0.0.1"},
			SessionTTL:     types.DefaultSessionTTLSeconds,
		},
	}

	a = cmd.NewAppState()
	a.LogLevel = GetEnvOrDefault("ATA_TEST_LOG_LEVEL", "error")
	a.InitLogger()
	a.Config = &testConfig

	return a, fb
}
