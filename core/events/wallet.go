package events

import (
	"strconv"

	"blocktrack/core/types"
)

const (
	TypeWalletConnected    = "wallet.connected"
	TypeWalletDisconnected = "wallet.disconnected"
)

// WalletConnected is emitted when the bridge completes a connection on the
// expected chain.
type WalletConnected struct {
	Account string
	ChainID uint64
}

func (WalletConnected) EventType() string { return TypeWalletConnected }

func (e WalletConnected) Event() *types.Event {
	return &types.Event{
		Type: TypeWalletConnected,
		Attributes: map[string]string{
			"account": e.Account,
			"chainId": strconv.FormatUint(e.ChainID, 10),
		},
	}
}

// WalletDisconnected is emitted when the bridge drops to the disconnected
// state, whether caller- or provider-driven.
type WalletDisconnected struct {
	Account string
}

func (WalletDisconnected) EventType() string { return TypeWalletDisconnected }

func (e WalletDisconnected) Event() *types.Event {
	return &types.Event{
		Type:       TypeWalletDisconnected,
		Attributes: map[string]string{"account": e.Account},
	}
}
