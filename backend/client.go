package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cosmossdk.io/log"
	"github.com/goccy/go-json"

	"github.com/strangelove-ventures/ata-devtool/relayer"
	"github.com/strangelove-ventures/ata-devtool/types"
)

const createAtaPath = "/api/createAta"

// Client calls the ATA backend. It does not retry and sets no timeout of its
// own; callers bound a request through the context.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     log.Logger
	metrics    *relayer.PromMetrics
}

func NewClient(cfg types.BackendSettings, logger log.Logger, metrics *relayer.PromMetrics) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{},
		logger:     logger.With("component", "backend"),
		metrics:    metrics,
	}
}

// WithHTTPClient swaps the underlying http client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// normalizeBaseURL removes trailing slashes
func normalizeBaseURL(u string) string {
	return strings.TrimRight(strings.TrimSpace(u), "/")
}

// CreateAtaURL builds the request URL. Parameters keep the order tokenInput,
// ownerPublicKey, apiKey and are all percent-encoded.
func (c *Client) CreateAtaURL(tokenSymbol, ownerPublicKey string) string {
	return fmt.Sprintf("%s%s?tokenInput=%s&ownerPublicKey=%s&apiKey=%s",
		c.baseURL,
		createAtaPath,
		escapeComponent(tokenSymbol),
		escapeComponent(ownerPublicKey),
		escapeComponent(c.apiKey),
	)
}

// componentUnescaper undoes the query-only escapes so values match a browser's
// encodeURIComponent: spaces become %20 and !'()* stay literal.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func escapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// FetchAta asks the backend to create or verify the owner's ATA for the token.
//
// A non-2xx response yields *types.BackendError carrying the backend's
// message. A failed call or an unparsable body yields *types.TransportError.
func (c *Client) FetchAta(ctx context.Context, tokenSymbol, ownerPublicKey string) (*types.AtaResult, error) {
	start := time.Now()
	res, err := c.fetchAta(ctx, tokenSymbol, ownerPublicKey)
	if c.metrics != nil {
		c.metrics.ObserveBackendRequest(outcomeLabel(res, err), time.Since(start))
	}
	return res, err
}

func (c *Client) fetchAta(ctx context.Context, tokenSymbol, ownerPublicKey string) (*types.AtaResult, error) {
	logger := c.logger.With("token", tokenSymbol, "owner", ownerPublicKey)
	logger.Debug(fmt.Sprintf("Requesting ATA at %s%s", c.baseURL, createAtaPath))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.CreateAtaURL(tokenSymbol, ownerPublicKey), nil)
	if err != nil {
		return nil, &types.TransportError{Err: err}
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Debug("ATA request failed", "error", err)
		return nil, &types.TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &types.TransportError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure types.FailureResult
		if err := json.Unmarshal(body, &failure); err != nil {
			logger.Debug("Unparsable error response", "status", resp.StatusCode, "error", err)
			return nil, &types.TransportError{Err: fmt.Errorf("failed to parse response: %w", err)}
		}
		msg := failure.Error
		if msg == "" {
			msg = types.DefaultBackendErrorMessage
		}
		logger.Debug("Backend rejected ATA request", "status", resp.StatusCode, "error", msg)
		return nil, &types.BackendError{StatusCode: resp.StatusCode, Message: msg, Failure: failure}
	}

	var result types.AtaResult
	if err := json.Unmarshal(body, &result); err != nil {
		logger.Debug("Unparsable ATA response", "status", resp.StatusCode, "error", err)
		return nil, &types.TransportError{Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	logger.Info("ATA response received", "status", result.Status, "associated_token", result.AssociatedToken)
	return &result, nil
}

func outcomeLabel(res *types.AtaResult, err error) string {
	switch err.(type) {
	case nil:
		if res != nil && res.Verified() {
			return "verified"
		}
		return "created"
	case *types.BackendError:
		return "backend_error"
	default:
		return "transport_error"
	}
}
