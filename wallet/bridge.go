package wallet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"blocktrack/core/events"
	"blocktrack/observability/metrics"
)

// State is the bridge connection state.
type State uint8

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateWrongChain
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateWrongChain:
		return "wrong-chain"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Binder receives the signer-bound contract handles' lifecycle. Binding is
// repeated on every reconnection and chain switch because a changed signer
// invalidates the previous handles.
type Binder interface {
	Bind(ctx context.Context, account common.Address) error
	Unbind()
}

// Session is a snapshot of the live provider session.
type Session struct {
	Account     string `json:"account,omitempty"`
	IsConnected bool   `json:"isConnected"`
	ChainID     uint64 `json:"chainId,omitempty"`
}

// Bridge mediates between the local core and the wallet provider. It owns the
// connection state machine and rebinds contracts whenever the session
// changes.
type Bridge struct {
	provider        Provider
	binder          Binder
	expectedChainID uint64
	logger          *slog.Logger
	emitter         events.Emitter

	mu         sync.Mutex
	state      State
	account    common.Address
	chainID    uint64
	connecting bool
}

// NewBridge wires a bridge against the provider. The binder may be nil when
// no contract handles are needed (tests).
func NewBridge(provider Provider, binder Binder, expectedChainID uint64, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{
		provider:        provider,
		binder:          binder,
		expectedChainID: expectedChainID,
		logger:          logger,
		emitter:         events.NoopEmitter{},
	}
}

// SetEmitter configures the event emitter. Passing nil resets to no-op.
func (b *Bridge) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		b.emitter = events.NoopEmitter{}
		return
	}
	b.emitter = emitter
}

// Connect drives Disconnected -> Connecting -> Connected. A second call while
// a connect is still in flight fails fast with ErrConnectionInProgress.
func (b *Bridge) Connect(ctx context.Context) (string, error) {
	if b.provider == nil {
		return "", ErrProviderUnavailable
	}

	b.mu.Lock()
	if b.connecting {
		b.mu.Unlock()
		return "", ErrConnectionInProgress
	}
	b.connecting = true
	b.state = StateConnecting
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.connecting = false
		b.mu.Unlock()
	}()

	accounts, err := b.provider.RequestAccounts(ctx)
	if err != nil {
		b.toDisconnected()
		return "", err
	}
	if len(accounts) == 0 {
		b.toDisconnected()
		return "", ErrNoAccounts
	}
	if err := b.establish(ctx, accounts[0]); err != nil {
		return "", err
	}
	return accounts[0].Hex(), nil
}

// establish validates the chain, attempts exactly one provider-driven switch
// on mismatch, rebinds the contract handles and enters Connected.
func (b *Bridge) establish(ctx context.Context, account common.Address) error {
	chainID, err := b.provider.ChainID(ctx)
	if err != nil {
		b.toDisconnected()
		return err
	}

	if chainID != b.expectedChainID {
		b.mu.Lock()
		b.state = StateWrongChain
		b.account = account
		b.chainID = chainID
		b.mu.Unlock()

		metrics.Wallet().ChainSwitchAttempted()
		b.logger.Info("chain mismatch, requesting switch", "have", chainID, "want", b.expectedChainID)
		if err := b.provider.SwitchChain(ctx, b.expectedChainID); err != nil {
			b.toDisconnected()
			if errors.Is(err, ErrUnsupportedChain) || errors.Is(err, ErrConnectionRejected) {
				return err
			}
			return fmt.Errorf("%w: switch failed: %v", ErrWrongNetwork, err)
		}
		chainID, err = b.provider.ChainID(ctx)
		if err != nil {
			b.toDisconnected()
			return err
		}
		if chainID != b.expectedChainID {
			b.toDisconnected()
			return fmt.Errorf("%w: provider stayed on chain %d", ErrWrongNetwork, chainID)
		}
	}

	if b.binder != nil {
		if err := b.binder.Bind(ctx, account); err != nil {
			b.toDisconnected()
			return fmt.Errorf("bind contracts: %w", err)
		}
	}

	b.mu.Lock()
	wasConnected := b.state == StateConnected && b.account == account
	b.state = StateConnected
	b.account = account
	b.chainID = chainID
	b.mu.Unlock()

	if !wasConnected {
		metrics.Wallet().Connected()
		b.emitter.Emit(events.WalletConnected{Account: account.Hex(), ChainID: chainID})
	}
	return nil
}

// Disconnect is a direct, always-available transition to Disconnected from
// any state. No remote confirmation is required.
func (b *Bridge) Disconnect() {
	b.toDisconnected()
}

func (b *Bridge) toDisconnected() {
	b.mu.Lock()
	wasConnected := b.state == StateConnected
	account := b.account
	b.state = StateDisconnected
	b.account = common.Address{}
	b.chainID = 0
	b.mu.Unlock()

	if b.binder != nil {
		b.binder.Unbind()
	}
	if wasConnected {
		metrics.Wallet().Disconnected()
		b.emitter.Emit(events.WalletDisconnected{Account: account.Hex()})
	}
}

// Run consumes unsolicited provider events until the context ends. Account
// changes with a non-empty list re-run the connect validation; an empty list
// or an explicit disconnect forces Disconnected; a chain change re-validates
// the chain id.
func (b *Bridge) Run(ctx context.Context) {
	if b.provider == nil {
		return
	}
	eventsCh := b.provider.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-eventsCh:
			if !ok {
				return
			}
			b.handleEvent(ctx, evt)
		}
	}
}

func (b *Bridge) handleEvent(ctx context.Context, evt Event) {
	switch evt.Kind {
	case EventAccountsChanged:
		if len(evt.Accounts) == 0 {
			b.logger.Info("provider reported empty account list")
			b.toDisconnected()
			return
		}
		if err := b.establish(ctx, evt.Accounts[0]); err != nil {
			b.logger.Warn("re-establish after account change failed", "error", err)
		}
	case EventChainChanged:
		b.mu.Lock()
		state := b.state
		account := b.account
		b.mu.Unlock()
		if state != StateConnected && state != StateWrongChain {
			return
		}
		if evt.ChainID == b.expectedChainID {
			b.mu.Lock()
			b.chainID = evt.ChainID
			b.mu.Unlock()
			return
		}
		if err := b.establish(ctx, account); err != nil {
			b.logger.Warn("re-establish after chain change failed", "error", err)
		}
	case EventDisconnect:
		b.logger.Info("provider disconnected")
		b.toDisconnected()
	}
}

// IsConnected reports whether the bridge holds a live session on the expected
// chain.
func (b *Bridge) IsConnected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state == StateConnected
}

// Account returns the session account while connected.
func (b *Bridge) Account() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != StateConnected {
		return "", false
	}
	return b.account.Hex(), true
}

// State returns the current machine state.
func (b *Bridge) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Session returns a snapshot of the live session.
func (b *Bridge) Session() Session {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != StateConnected {
		return Session{IsConnected: false}
	}
	return Session{Account: b.account.Hex(), IsConnected: true, ChainID: b.chainID}
}
