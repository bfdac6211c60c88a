package form

import (
	"context"
	"strings"
	"sync"

	"cosmossdk.io/log"

	"github.com/strangelove-ventures/ata-devtool/relayer"
	"github.com/strangelove-ventures/ata-devtool/solana"
	"github.com/strangelove-ventures/ata-devtool/types"
)

const (
	fieldToken = "token"
	fieldOwner = "ownerPublicKey"
)

// Adapter performs the single backend call of a submission.
type Adapter interface {
	FetchAta(ctx context.Context, tokenSymbol, ownerPublicKey string) (*types.AtaResult, error)
}

// State is a snapshot of the form.
type State struct {
	SelectedToken       string                        `json:"tokenInput"`
	OwnerPublicKeyInput string                        `json:"ownerPublicKey"`
	IsLoading           bool                          `json:"isLoading"`
	LastResult          types.Option[types.AtaResult] `json:"result"`
}

// Controller owns the form state and runs at most one submission at a time.
type Controller struct {
	mu    sync.Mutex
	state State
	subs  map[int]func(State)
	next  int

	adapter  Adapter
	notifier Notifier
	logger   log.Logger
	metrics  *relayer.PromMetrics
}

func NewController(adapter Adapter, notifier Notifier, logger log.Logger, metrics *relayer.PromMetrics) *Controller {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Controller{
		subs:     make(map[int]func(State)),
		adapter:  adapter,
		notifier: notifier,
		logger:   logger.With("component", "form"),
		metrics:  metrics,
	}
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn to receive every state change. fn runs synchronously
// while the controller is locked and must not call back into it.
func (c *Controller) Subscribe(fn func(State)) (cancel func()) {
	c.mu.Lock()
	id := c.next
	c.next++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// publish must be called with c.mu held
func (c *Controller) publish() {
	for _, fn := range c.subs {
		fn(c.state)
	}
}

// Submit validates the inputs and, if they pass, calls the backend once.
//
// It returns false without side effects while another submission is in
// flight. Otherwise exactly one notification is emitted and the form is idle
// again when Submit returns.
func (c *Controller) Submit(ctx context.Context, selectedToken, ownerPublicKeyInput string) bool {
	c.mu.Lock()
	if c.state.IsLoading {
		c.mu.Unlock()
		c.logger.Debug("Submission already in flight, ignoring submit")
		return false
	}

	c.state.SelectedToken = selectedToken
	c.state.OwnerPublicKeyInput = ownerPublicKeyInput
	c.state.LastResult = types.None[types.AtaResult]()

	if verr := validate(selectedToken, ownerPublicKeyInput); verr != nil {
		c.publish()
		c.mu.Unlock()
		c.logger.Debug("Rejected submission", "field", verr.Field, "input", ownerPublicKeyInput)
		c.finish(validationNotification(verr))
		return true
	}

	c.state.IsLoading = true
	c.publish()
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.IncInFlight()
	}
	res, err := c.adapter.FetchAta(ctx, selectedToken, ownerPublicKeyInput)
	if c.metrics != nil {
		c.metrics.DecInFlight()
	}
	if err == nil && res == nil {
		err = &types.TransportError{}
	}

	c.mu.Lock()
	if err == nil {
		c.state.LastResult = types.Some(*res)
	}
	c.state.IsLoading = false
	c.publish()
	c.mu.Unlock()

	if err != nil {
		c.logger.Debug("Submission failed", "token", selectedToken, "error", err)
	}
	c.finish(resultNotification(res, err))
	return true
}

func (c *Controller) finish(n Notification) {
	if c.metrics != nil {
		c.metrics.IncSubmission(string(n.Kind))
	}
	c.notifier.Notify(n)
}

func validate(selectedToken, ownerPublicKeyInput string) *types.ValidationError {
	if strings.TrimSpace(selectedToken) == "" {
		return &types.ValidationError{Field: fieldToken, Message: missingTokenMessage}
	}
	if !solana.IsValidPublicKey(ownerPublicKeyInput) {
		return &types.ValidationError{Field: fieldOwner, Message: invalidKeyDescription}
	}
	return nil
}
