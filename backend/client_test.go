package backend_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"cosmossdk.io/log"

	"github.com/strangelove-ventures/ata-devtool/backend"
	"github.com/strangelove-ventures/ata-devtool/relayer"
	"github.com/strangelove-ventures/ata-devtool/types"
)

const (
	testOwner  = "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T"
	testAPIKey = "test-api-key"
)

var logger log.Logger

func init() {
	logger = log.NewLogger(os.Stdout, log.LevelOption(zerolog.ErrorLevel))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*backend.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := backend.NewClient(types.BackendSettings{BaseURL: srv.URL, APIKey: testAPIKey}, logger, nil)
	return c, srv
}

func TestFetchAtaQueryParameters(t *testing.T) {
	var gotPath, gotRawQuery string
	var gotQuery map[string][]string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		gotPath = r.URL.Path
		gotRawQuery = r.URL.RawQuery
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"USDC","tokenMint":"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v","ownerPublicKey":"` + testOwner + `","associatedToken":"8Yq3fXq3ZQwvq1dAqcqT8oWkz3cJX7SmdYgnHC2rWbCu","status":"Account Created","instruction":null}`))
	})

	res, err := c.FetchAta(context.Background(), "USDC", testOwner)
	require.NoError(t, err)
	require.NotNil(t, res)

	require.Equal(t, "/api/createAta", gotPath)
	require.Equal(t, "tokenInput=USDC&ownerPublicKey="+testOwner+"&apiKey="+testAPIKey, gotRawQuery)
	require.Equal(t, []string{"USDC"}, gotQuery["tokenInput"])
	require.Equal(t, []string{testOwner}, gotQuery["ownerPublicKey"])
	require.Equal(t, []string{testAPIKey}, gotQuery["apiKey"])

	require.Equal(t, types.StatusAccountCreated, res.Status)
	require.Equal(t, "8Yq3fXq3ZQwvq1dAqcqT8oWkz3cJX7SmdYgnHC2rWbCu", res.AssociatedToken)
	require.False(t, res.Instruction.IsSome())
}

func TestFetchAtaPercentEncoding(t *testing.T) {
	var got map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_, _ = w.Write([]byte(`{"status":"Account Exists"}`))
	}))
	defer srv.Close()

	c := backend.NewClient(types.BackendSettings{BaseURL: srv.URL + "/", APIKey: "k=1&x/2 y"}, logger, nil)
	require.Equal(t, srv.URL+"/api/createAta?tokenInput=a%20b%26c&ownerPublicKey="+testOwner+"&apiKey=k%3D1%26x%2F2%20y",
		c.CreateAtaURL("a b&c", testOwner))
	require.Equal(t, srv.URL+"/api/createAta?tokenInput=it's(ok)!*~&ownerPublicKey=%2B&apiKey=k%3D1%26x%2F2%20y",
		c.CreateAtaURL("it's(ok)!*~", "+"))

	_, err := c.FetchAta(context.Background(), "a b&c", testOwner)
	require.NoError(t, err)
	require.Equal(t, []string{"a b&c"}, got["tokenInput"])
	require.Equal(t, []string{"k=1&x/2 y"}, got["apiKey"])
}

func TestFetchAtaBackendError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":false,"token":"USDC","error":"Invalid mint"}`))
	})

	res, err := c.FetchAta(context.Background(), "USDC", testOwner)
	require.Nil(t, res)

	var backendErr *types.BackendError
	require.True(t, errors.As(err, &backendErr))
	require.Equal(t, "Invalid mint", backendErr.Message)
	require.Equal(t, "Invalid mint", err.Error())
	require.Equal(t, http.StatusBadRequest, backendErr.StatusCode)
	require.Equal(t, "USDC", backendErr.Failure.Token)
}

func TestFetchAtaBackendErrorNumericStatus(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":400,"error":"Invalid mint"}`))
	})

	res, err := c.FetchAta(context.Background(), "USDC", testOwner)
	require.Nil(t, res)

	var backendErr *types.BackendError
	require.True(t, errors.As(err, &backendErr))
	require.Equal(t, "Invalid mint", backendErr.Message)
	require.Equal(t, "400", backendErr.Failure.Status.String())
}

func TestFetchAtaSuccessNumericStatus(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token":"USDC","associatedToken":"8Yq3fXq3ZQwvq1dAqcqT8oWkz3cJX7SmdYgnHC2rWbCu","status":1}`))
	})

	res, err := c.FetchAta(context.Background(), "USDC", testOwner)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Equal(t, "1", res.Status)
	require.False(t, res.Verified())
}

func TestFetchAtaBackendErrorFallbackMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status":"error"}`))
	})

	_, err := c.FetchAta(context.Background(), "USDC", testOwner)
	var backendErr *types.BackendError
	require.True(t, errors.As(err, &backendErr))
	require.Equal(t, types.DefaultBackendErrorMessage, backendErr.Message)
	require.Equal(t, "error", backendErr.Failure.Status.String())
}

func TestFetchAtaMalformedBody(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusBadGateway} {
		status := status
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`<html>gateway</html>`))
		})

		res, err := c.FetchAta(context.Background(), "USDC", testOwner)
		require.Nil(t, res)
		var transportErr *types.TransportError
		require.True(t, errors.As(err, &transportErr), "status %d", status)
		require.True(t, strings.HasPrefix(err.Error(), types.DefaultTransportErrorMessage))
	}
}

func TestFetchAtaConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	c := backend.NewClient(types.BackendSettings{BaseURL: baseURL}, logger, nil)
	res, err := c.FetchAta(context.Background(), "USDC", testOwner)
	require.Nil(t, res)

	var transportErr *types.TransportError
	require.True(t, errors.As(err, &transportErr))
	require.NotNil(t, transportErr.Unwrap())
}

func TestFetchAtaCanceledContext(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchAta(ctx, "USDC", testOwner)
	var transportErr *types.TransportError
	require.True(t, errors.As(err, &transportErr))
	require.ErrorIs(t, err, context.Canceled)
}

func TestFetchAtaMetrics(t *testing.T) {
	metrics := relayer.NewPromMetrics()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token":"SOL","status":"Account Exists"}`))
	}))
	defer srv.Close()

	c := backend.NewClient(types.BackendSettings{BaseURL: srv.URL}, logger, metrics)
	_, err := c.FetchAta(context.Background(), "SOL", testOwner)
	require.NoError(t, err)

	require.Equal(t, 1, testutil.CollectAndCount(metrics.BackendLatency))
}
