package wallet

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// EventKind discriminates unsolicited provider notifications.
type EventKind uint8

const (
	EventAccountsChanged EventKind = iota
	EventChainChanged
	EventDisconnect
)

// Event is an unsolicited provider-side change the bridge must react to.
type Event struct {
	Kind     EventKind
	Accounts []common.Address
	ChainID  uint64
}

// Provider is the wallet JSON-RPC surface the bridge consumes. Accounts and
// RequestAccounts mirror eth_accounts/eth_requestAccounts; SwitchChain mirrors
// wallet_switchEthereumChain. Events carries accountsChanged, chainChanged and
// disconnect notifications.
type Provider interface {
	Accounts(ctx context.Context) ([]common.Address, error)
	RequestAccounts(ctx context.Context) ([]common.Address, error)
	ChainID(ctx context.Context) (uint64, error)
	SwitchChain(ctx context.Context, chainID uint64) error
	BalanceAt(ctx context.Context, account common.Address) (*big.Int, error)
	SendTransaction(ctx context.Context, from, to common.Address, data []byte) (common.Hash, error)
	Events() <-chan Event
}

// RPCProvider implements Provider over a go-ethereum rpc.Client. Wallet
// daemons and dev nodes expose the same surface a browser provider would;
// unsolicited events are synthesised by polling since plain JSON-RPC has no
// EIP-1193 notification stream.
type RPCProvider struct {
	client *rpc.Client
	events chan Event

	mu           sync.Mutex
	lastAccounts []common.Address
	lastChainID  uint64
	seeded       bool
}

// DialProvider connects an RPCProvider to the given endpoint.
func DialProvider(endpoint string) (*RPCProvider, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return nil, ErrProviderUnavailable
	}
	client, err := rpc.Dial(trimmed)
	if err != nil {
		return nil, fmt.Errorf("dial wallet provider: %w", err)
	}
	return NewRPCProvider(client), nil
}

// NewRPCProvider wraps an existing rpc.Client.
func NewRPCProvider(client *rpc.Client) *RPCProvider {
	return &RPCProvider{
		client: client,
		events: make(chan Event, 16),
	}
}

// translateProviderError maps EIP-1193 error codes onto the typed taxonomy.
func translateProviderError(err error) error {
	if err == nil {
		return nil
	}
	var coded rpc.Error
	if ok := asRPCError(err, &coded); ok {
		switch coded.ErrorCode() {
		case codeUserRejected:
			return fmt.Errorf("%w: %s", ErrConnectionRejected, coded.Error())
		case codeRequestPending:
			return fmt.Errorf("%w: request pending in provider", ErrConnectionInProgress)
		case codeUnrecognizedChain:
			return fmt.Errorf("%w: %s", ErrUnsupportedChain, coded.Error())
		}
	}
	return err
}

func asRPCError(err error, target *rpc.Error) bool {
	for err != nil {
		if coded, ok := err.(rpc.Error); ok {
			*target = coded
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}

func (p *RPCProvider) Accounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	if err := p.client.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, translateProviderError(err)
	}
	return accounts, nil
}

func (p *RPCProvider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	if err := p.client.CallContext(ctx, &accounts, "eth_requestAccounts"); err != nil {
		return nil, translateProviderError(err)
	}
	return accounts, nil
}

func (p *RPCProvider) ChainID(ctx context.Context) (uint64, error) {
	var raw hexutil.Big
	if err := p.client.CallContext(ctx, &raw, "eth_chainId"); err != nil {
		return 0, translateProviderError(err)
	}
	return raw.ToInt().Uint64(), nil
}

func (p *RPCProvider) SwitchChain(ctx context.Context, chainID uint64) error {
	param := map[string]string{"chainId": hexutil.EncodeUint64(chainID)}
	var result any
	if err := p.client.CallContext(ctx, &result, "wallet_switchEthereumChain", param); err != nil {
		return translateProviderError(err)
	}
	return nil
}

func (p *RPCProvider) BalanceAt(ctx context.Context, account common.Address) (*big.Int, error) {
	var raw hexutil.Big
	if err := p.client.CallContext(ctx, &raw, "eth_getBalance", account, "latest"); err != nil {
		return nil, translateProviderError(err)
	}
	return raw.ToInt(), nil
}

// SendTransaction submits a provider-signed transaction; the wallet holds the
// key, the core never signs.
func (p *RPCProvider) SendTransaction(ctx context.Context, from, to common.Address, data []byte) (common.Hash, error) {
	msg := map[string]any{
		"from": from,
		"to":   to,
		"data": hexutil.Bytes(data),
	}
	var hash common.Hash
	if err := p.client.CallContext(ctx, &hash, "eth_sendTransaction", msg); err != nil {
		return common.Hash{}, translateProviderError(err)
	}
	return hash, nil
}

func (p *RPCProvider) Events() <-chan Event {
	return p.events
}

// Watch polls the provider and synthesises accountsChanged/chainChanged/
// disconnect events until the context ends.
func (p *RPCProvider) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *RPCProvider) poll(ctx context.Context) {
	accounts, accErr := p.Accounts(ctx)
	chainID, chainErr := p.ChainID(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	if accErr != nil || chainErr != nil {
		if p.seeded {
			p.seeded = false
			p.dispatch(Event{Kind: EventDisconnect})
		}
		return
	}
	if !p.seeded {
		p.seeded = true
		p.lastAccounts = accounts
		p.lastChainID = chainID
		return
	}
	if !sameAccounts(accounts, p.lastAccounts) {
		p.lastAccounts = accounts
		p.dispatch(Event{Kind: EventAccountsChanged, Accounts: accounts})
	}
	if chainID != p.lastChainID {
		p.lastChainID = chainID
		p.dispatch(Event{Kind: EventChainChanged, ChainID: chainID})
	}
}

func (p *RPCProvider) dispatch(evt Event) {
	select {
	case p.events <- evt:
	default:
		// Drop rather than block the poll loop; the bridge re-reads
		// provider state on every event anyway.
	}
}

func sameAccounts(a, b []common.Address) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Close releases the underlying RPC client.
func (p *RPCProvider) Close() {
	p.client.Close()
}
