package events

import (
	"strconv"

	"blocktrack/core/types"
)

const (
	TypePaymentCreated   = "payment.created"
	TypePaymentCompleted = "payment.completed"
)

// PaymentCreated is emitted when a balance-checked payment lands on the
// ledger.
type PaymentCreated struct {
	ID        string
	From      string
	To        string
	Amount    string
	ProductID string
	Timestamp int64
}

func (PaymentCreated) EventType() string { return TypePaymentCreated }

func (e PaymentCreated) Event() *types.Event {
	return &types.Event{
		Type: TypePaymentCreated,
		Attributes: map[string]string{
			"id":        e.ID,
			"from":      e.From,
			"to":        e.To,
			"amount":    e.Amount,
			"productId": e.ProductID,
			"timestamp": strconv.FormatInt(e.Timestamp, 10),
		},
	}
}

// PaymentCompleted is emitted when a payment is (re-)marked complete.
type PaymentCompleted struct {
	ID string
}

func (PaymentCompleted) EventType() string { return TypePaymentCompleted }

func (e PaymentCompleted) Event() *types.Event {
	return &types.Event{
		Type:       TypePaymentCompleted,
		Attributes: map[string]string{"id": e.ID},
	}
}
