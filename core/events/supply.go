package events

import (
	"strconv"

	"blocktrack/core/types"
)

const (
	TypeProductRegistered     = "product.registered"
	TypeProductStatusUpdated  = "product.status_updated"
	TypeProductTransferred    = "product.transferred"
	TypeParticipantRegistered = "participant.registered"
)

// ProductRegistered is emitted when a new product enters the ledger.
type ProductRegistered struct {
	ID           string
	Name         string
	RFIDTag      string
	Manufacturer string
	Timestamp    int64
}

func (ProductRegistered) EventType() string { return TypeProductRegistered }

func (e ProductRegistered) Event() *types.Event {
	return &types.Event{
		Type: TypeProductRegistered,
		Attributes: map[string]string{
			"id":           e.ID,
			"name":         e.Name,
			"rfidTag":      e.RFIDTag,
			"manufacturer": e.Manufacturer,
			"timestamp":    strconv.FormatInt(e.Timestamp, 10),
		},
	}
}

// ProductStatusUpdated is emitted for every status mutation.
type ProductStatusUpdated struct {
	ID        string
	Status    types.ProductStatus
	Timestamp int64
}

func (ProductStatusUpdated) EventType() string { return TypeProductStatusUpdated }

func (e ProductStatusUpdated) Event() *types.Event {
	return &types.Event{
		Type: TypeProductStatusUpdated,
		Attributes: map[string]string{
			"id":        e.ID,
			"status":    string(e.Status),
			"timestamp": strconv.FormatInt(e.Timestamp, 10),
		},
	}
}

// ProductTransferred is emitted when custody of a product moves between
// participants.
type ProductTransferred struct {
	ProductID string
	From      string
	To        string
	Status    types.ProductStatus
	Location  string
	Timestamp int64
}

func (ProductTransferred) EventType() string { return TypeProductTransferred }

func (e ProductTransferred) Event() *types.Event {
	return &types.Event{
		Type: TypeProductTransferred,
		Attributes: map[string]string{
			"productId": e.ProductID,
			"from":      e.From,
			"to":        e.To,
			"status":    string(e.Status),
			"location":  e.Location,
			"timestamp": strconv.FormatInt(e.Timestamp, 10),
		},
	}
}

// ParticipantRegistered is emitted when a new participant enters the ledger.
type ParticipantRegistered struct {
	ID   string
	Name string
	Role types.ParticipantRole
}

func (ParticipantRegistered) EventType() string { return TypeParticipantRegistered }

func (e ParticipantRegistered) Event() *types.Event {
	return &types.Event{
		Type: TypeParticipantRegistered,
		Attributes: map[string]string{
			"id":   e.ID,
			"name": e.Name,
			"role": string(e.Role),
		},
	}
}
