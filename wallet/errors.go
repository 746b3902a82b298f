package wallet

import "errors"

var (
	// ErrProviderUnavailable is returned when no provider endpoint is
	// configured or reachable.
	ErrProviderUnavailable = errors.New("wallet: provider unavailable")
	// ErrNotConnected is returned when an operation requires a live session.
	ErrNotConnected = errors.New("wallet: not connected")
	// ErrConnectionInProgress guards against re-entrant connect attempts.
	ErrConnectionInProgress = errors.New("wallet: connection already in progress")
	// ErrConnectionRejected is returned when the provider or its user
	// declines the account request.
	ErrConnectionRejected = errors.New("wallet: connection rejected")
	// ErrNoAccounts is returned when the provider reports an empty account
	// list on connect.
	ErrNoAccounts = errors.New("wallet: no accounts available")
	// ErrWrongNetwork is returned when the provider stays on an unexpected
	// chain after the single switch attempt.
	ErrWrongNetwork = errors.New("wallet: wrong network")
	// ErrUnsupportedChain is returned when the provider does not know the
	// expected chain at all.
	ErrUnsupportedChain = errors.New("wallet: expected chain not available in provider")
)

// Provider error codes surfaced by EIP-1193 style wallets.
const (
	codeUserRejected      = 4001
	codeUnrecognizedChain = 4902
	codeRequestPending    = -32002
)
