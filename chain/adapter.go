package chain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// ErrNotInitialized is returned when an adapter method is called without a
// bound session.
var ErrNotInitialized = errors.New("chain: contracts not initialized")

// CallError wraps an opaque remote failure with the contract method that
// produced it.
type CallError struct {
	Method string
	Err    error
}

func (e *CallError) Error() string { return fmt.Sprintf("contract call %s: %v", e.Method, e.Err) }
func (e *CallError) Unwrap() error { return e.Err }

// Caller is the read-side subset of the Ethereum RPC the adapter uses.
// ethclient.Client satisfies it.
type Caller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]gethtypes.Log, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*gethtypes.Receipt, error)
}

// Sender submits provider-signed transactions; the wallet provider satisfies
// it. The core never holds keys.
type Sender interface {
	SendTransaction(ctx context.Context, from, to common.Address, data []byte) (common.Hash, error)
}

// RemoteProduct is the decoded product registry tuple. Timestamps are
// millisecond epochs.
type RemoteProduct struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	RFIDTag             string  `json:"rfidTag"`
	Manufacturer        string  `json:"manufacturer"`
	ManufacturerAddress string  `json:"manufacturerAddress"`
	Location            string  `json:"currentLocation"`
	Status              string  `json:"status"`
	Timestamp           int64   `json:"timestamp"`
	Temperature         float64 `json:"temperature"`
	Humidity            float64 `json:"humidity"`
}

// RemoteParticipant is the decoded participant registry tuple.
type RemoteParticipant struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Role          string `json:"role"`
	WalletAddress string `json:"walletAddress"`
	IsActive      bool   `json:"isActive"`
	RegisteredAt  int64  `json:"registeredAt"`
}

// HistoryEntry is one decoded ProductUpdated event.
type HistoryEntry struct {
	TxHash      string `json:"txHash"`
	BlockNumber uint64 `json:"blockNumber"`
	Status      string `json:"status"`
	Location    string `json:"location"`
}

// Adapter performs all contract interaction for the core. Every method
// requires the wallet bridge to have bound a session; binding is repeated on
// every reconnection because a changed signer invalidates the handles.
type Adapter struct {
	caller          Caller
	sender          Sender
	productAddr     common.Address
	participantAddr common.Address
	productABI      abi.ABI
	participantABI  abi.ABI
	logger          *slog.Logger
	receiptInterval time.Duration

	mu      sync.RWMutex
	account common.Address
	bound   bool
}

// NewAdapter parses the contract ABIs and wires the adapter against the RPC
// caller and the provider-backed sender.
func NewAdapter(caller Caller, sender Sender, productAddr, participantAddr common.Address, logger *slog.Logger) (*Adapter, error) {
	if logger == nil {
		logger = slog.Default()
	}
	productParsed, err := abi.JSON(strings.NewReader(productRegistryABI))
	if err != nil {
		return nil, fmt.Errorf("parse product registry abi: %w", err)
	}
	participantParsed, err := abi.JSON(strings.NewReader(participantRegistryABI))
	if err != nil {
		return nil, fmt.Errorf("parse participant registry abi: %w", err)
	}
	return &Adapter{
		caller:          caller,
		sender:          sender,
		productAddr:     productAddr,
		participantAddr: participantAddr,
		productABI:      productParsed,
		participantABI:  participantParsed,
		logger:          logger,
		receiptInterval: time.Second,
	}, nil
}

// SetReceiptInterval overrides the receipt poll cadence; tests shorten it.
func (a *Adapter) SetReceiptInterval(interval time.Duration) {
	if interval > 0 {
		a.receiptInterval = interval
	}
}

// Bind attaches the signer account to the contract handles. The wallet bridge
// calls this on every transition into Connected.
func (a *Adapter) Bind(ctx context.Context, account common.Address) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.account = account
	a.bound = true
	return nil
}

// Unbind invalidates the handles. The bridge calls this on disconnect.
func (a *Adapter) Unbind() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.account = common.Address{}
	a.bound = false
}

func (a *Adapter) session() (common.Address, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.bound {
		return common.Address{}, ErrNotInitialized
	}
	return a.account, nil
}

// isNotFound recognises "not found"-class contract reverts that the read
// paths convert to negative results instead of errors.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}

func (a *Adapter) call(ctx context.Context, target common.Address, contract abi.ABI, method string, args ...any) ([]any, error) {
	data, err := contract.Pack(method, args...)
	if err != nil {
		return nil, &CallError{Method: method, Err: err}
	}
	raw, err := a.caller.CallContract(ctx, ethereum.CallMsg{To: &target, Data: data}, nil)
	if err != nil {
		return nil, err
	}
	out, err := contract.Unpack(method, raw)
	if err != nil {
		return nil, &CallError{Method: method, Err: err}
	}
	return out, nil
}

func (a *Adapter) transact(ctx context.Context, target common.Address, contract abi.ABI, method string, args ...any) (common.Hash, error) {
	from, err := a.session()
	if err != nil {
		return common.Hash{}, err
	}
	data, err := contract.Pack(method, args...)
	if err != nil {
		return common.Hash{}, &CallError{Method: method, Err: err}
	}
	hash, err := a.sender.SendTransaction(ctx, from, target, data)
	if err != nil {
		return common.Hash{}, &CallError{Method: method, Err: err}
	}
	if err := a.waitMined(ctx, hash); err != nil {
		return hash, &CallError{Method: method, Err: err}
	}
	return hash, nil
}

// waitMined blocks until the transaction is acknowledged by the chain.
func (a *Adapter) waitMined(ctx context.Context, hash common.Hash) error {
	ticker := time.NewTicker(a.receiptInterval)
	defer ticker.Stop()
	for {
		receipt, err := a.caller.TransactionReceipt(ctx, hash)
		if err == nil && receipt != nil {
			if receipt.Status != gethtypes.ReceiptStatusSuccessful {
				return fmt.Errorf("transaction %s reverted", hash.Hex())
			}
			return nil
		}
		if err != nil && !errors.Is(err, ethereum.NotFound) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// VerifyProduct checks that the registry knows the product id. A remote
// "not found" is a negative result, not an error.
func (a *Adapter) VerifyProduct(ctx context.Context, productID string) (bool, error) {
	if _, err := a.session(); err != nil {
		return false, err
	}
	out, err := a.call(ctx, a.productAddr, a.productABI, "getProduct", productID)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, &CallError{Method: "getProduct", Err: err}
	}
	id, _ := out[0].(string)
	return id == productID, nil
}

// GetProduct fetches and decodes the registry tuple for a product. A remote
// "not found" yields (nil, nil).
func (a *Adapter) GetProduct(ctx context.Context, productID string) (*RemoteProduct, error) {
	if _, err := a.session(); err != nil {
		return nil, err
	}
	out, err := a.call(ctx, a.productAddr, a.productABI, "getProduct", productID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, &CallError{Method: "getProduct", Err: err}
	}
	return decodeProduct(out)
}

func decodeProduct(out []any) (*RemoteProduct, error) {
	if len(out) != 10 {
		return nil, fmt.Errorf("unexpected product tuple arity: %d", len(out))
	}
	product := &RemoteProduct{}
	var ok bool
	if product.ID, ok = out[0].(string); !ok {
		return nil, fmt.Errorf("product tuple field 0 not a string")
	}
	product.Name, _ = out[1].(string)
	product.RFIDTag, _ = out[2].(string)
	product.Manufacturer, _ = out[3].(string)
	if addr, ok := out[4].(common.Address); ok {
		product.ManufacturerAddress = addr.Hex()
	}
	product.Location, _ = out[5].(string)
	product.Status, _ = out[6].(string)
	if ts, ok := out[7].(*big.Int); ok {
		product.Timestamp = ts.Int64() * 1000
	}
	if temp, ok := out[8].(*big.Int); ok {
		product.Temperature, _ = new(big.Float).SetInt(temp).Float64()
	}
	if hum, ok := out[9].(*big.Int); ok {
		product.Humidity, _ = new(big.Float).SetInt(hum).Float64()
	}
	return product, nil
}

// RegisterProduct writes a new product record to the registry and waits for
// the acknowledgement.
func (a *Adapter) RegisterProduct(ctx context.Context, id, name, rfidTag, manufacturer string) (string, error) {
	hash, err := a.transact(ctx, a.productAddr, a.productABI, "registerProduct", id, name, rfidTag, manufacturer)
	if err != nil {
		return "", err
	}
	return hash.Hex(), nil
}

// UpdateProduct writes a status/location mutation to the registry.
func (a *Adapter) UpdateProduct(ctx context.Context, id, status, location string) (string, error) {
	hash, err := a.transact(ctx, a.productAddr, a.productABI, "updateProduct", id, status, location)
	if err != nil {
		return "", err
	}
	return hash.Hex(), nil
}

// CreateTransaction records a custody handover on-chain, moving the product
// in-transit towards the destination, and returns the transaction hash.
func (a *Adapter) CreateTransaction(ctx context.Context, to, productID string) (string, error) {
	return a.UpdateProduct(ctx, productID, "in-transit", to)
}

// RegisterParticipant writes a new participant record to the registry.
func (a *Adapter) RegisterParticipant(ctx context.Context, id, name, role string) (string, error) {
	hash, err := a.transact(ctx, a.participantAddr, a.participantABI, "registerParticipant", id, name, role)
	if err != nil {
		return "", err
	}
	return hash.Hex(), nil
}

// GetParticipant fetches and decodes the registry tuple for a wallet address.
func (a *Adapter) GetParticipant(ctx context.Context, address string) (*RemoteParticipant, error) {
	if _, err := a.session(); err != nil {
		return nil, err
	}
	out, err := a.call(ctx, a.participantAddr, a.participantABI, "getParticipant", common.HexToAddress(address))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, &CallError{Method: "getParticipant", Err: err}
	}
	if len(out) != 6 {
		return nil, fmt.Errorf("unexpected participant tuple arity: %d", len(out))
	}
	participant := &RemoteParticipant{}
	participant.ID, _ = out[0].(string)
	participant.Name, _ = out[1].(string)
	participant.Role, _ = out[2].(string)
	if addr, ok := out[3].(common.Address); ok {
		participant.WalletAddress = addr.Hex()
	}
	participant.IsActive, _ = out[4].(bool)
	if ts, ok := out[5].(*big.Int); ok {
		participant.RegisteredAt = ts.Int64() * 1000
	}
	return participant, nil
}

// GetTransactionHistory queries ProductUpdated logs for the product id. Any
// query failure yields an empty list rather than failing the caller.
func (a *Adapter) GetTransactionHistory(ctx context.Context, productID string) []HistoryEntry {
	if _, err := a.session(); err != nil {
		return []HistoryEntry{}
	}
	event, ok := a.productABI.Events["ProductUpdated"]
	if !ok {
		return []HistoryEntry{}
	}
	query := ethereum.FilterQuery{
		Addresses: []common.Address{a.productAddr},
		Topics: [][]common.Hash{
			{event.ID},
			{gethcrypto.Keccak256Hash([]byte(productID))},
		},
	}
	logs, err := a.caller.FilterLogs(ctx, query)
	if err != nil {
		a.logger.Warn("query product history failed", "productId", productID, "error", err)
		return []HistoryEntry{}
	}
	entries := make([]HistoryEntry, 0, len(logs))
	for _, logEntry := range logs {
		decoded, err := event.Inputs.NonIndexed().Unpack(logEntry.Data)
		if err != nil {
			a.logger.Warn("decode product history event failed", "txHash", logEntry.TxHash.Hex(), "error", err)
			continue
		}
		entry := HistoryEntry{
			TxHash:      logEntry.TxHash.Hex(),
			BlockNumber: logEntry.BlockNumber,
		}
		if len(decoded) > 0 {
			entry.Status, _ = decoded[0].(string)
		}
		if len(decoded) > 1 {
			entry.Location, _ = decoded[1].(string)
		}
		entries = append(entries, entry)
	}
	return entries
}

// GetBalance returns the account's chain balance as a decimal ether string.
func (a *Adapter) GetBalance(ctx context.Context, account string) (string, error) {
	if _, err := a.session(); err != nil {
		return "", err
	}
	wei, err := a.caller.BalanceAt(ctx, common.HexToAddress(account), nil)
	if err != nil {
		return "", &CallError{Method: "getBalance", Err: err}
	}
	return FormatEther(wei), nil
}
