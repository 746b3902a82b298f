package types

import (
	"fmt"
	"strings"
)

// ProductStatus tracks where a product sits in the supply chain.
type ProductStatus string

const (
	StatusManufactured ProductStatus = "manufactured"
	StatusShipped      ProductStatus = "shipped"
	StatusInTransit    ProductStatus = "in-transit"
	StatusDelivered    ProductStatus = "delivered"
	StatusSold         ProductStatus = "sold"
)

// Valid reports whether the status value is within the supported range.
func (s ProductStatus) Valid() bool {
	switch s {
	case StatusManufactured, StatusShipped, StatusInTransit, StatusDelivered, StatusSold:
		return true
	default:
		return false
	}
}

// NormalizeStatus canonicalises a status string to its lowercase form and
// rejects values outside the supported set.
func NormalizeStatus(raw string) (ProductStatus, error) {
	status := ProductStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", fmt.Errorf("unsupported product status: %s", raw)
	}
	return status, nil
}

// ParticipantRole identifies the function an organisation performs in the
// supply chain.
type ParticipantRole string

const (
	RoleManufacturer ParticipantRole = "manufacturer"
	RoleSupplier     ParticipantRole = "supplier"
	RoleDistributor  ParticipantRole = "distributor"
	RoleRetailer     ParticipantRole = "retailer"
)

// Valid reports whether the role value is within the supported range.
func (r ParticipantRole) Valid() bool {
	switch r {
	case RoleManufacturer, RoleSupplier, RoleDistributor, RoleRetailer:
		return true
	default:
		return false
	}
}

// NormalizeRole canonicalises a role string to its lowercase form and rejects
// values outside the supported set.
func NormalizeRole(raw string) (ParticipantRole, error) {
	role := ParticipantRole(strings.ToLower(strings.TrimSpace(raw)))
	if !role.Valid() {
		return "", fmt.Errorf("unsupported participant role: %s", raw)
	}
	return role, nil
}

// GeoPoint is a named coordinate pair describing a product's current
// position.
type GeoPoint struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Address is a participant's registered site.
type Address struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Product is a tracked physical item with a unique scannable RFID tag.
// Timestamp is a millisecond epoch instant and is non-decreasing across
// mutations of the same product.
type Product struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	RFIDTag         string        `json:"rfidTag"`
	Manufacturer    string        `json:"manufacturer"`
	CurrentLocation GeoPoint      `json:"currentLocation"`
	Status          ProductStatus `json:"status"`
	Timestamp       int64         `json:"timestamp"`
	Temperature     *float64      `json:"temperature,omitempty"`
	Humidity        *float64      `json:"humidity,omitempty"`
}

// Clone returns a deep copy of the product so callers can safely mutate the
// copy without affecting the stored instance.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	clone := *p
	if p.Temperature != nil {
		t := *p.Temperature
		clone.Temperature = &t
	}
	if p.Humidity != nil {
		h := *p.Humidity
		clone.Humidity = &h
	}
	return &clone
}

// Participant is an organisation node in the supply chain. Products holds the
// ids of products currently attributed to the participant; a product id
// appears in at most one participant's set at a time.
type Participant struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Role          ParticipantRole `json:"role"`
	Location      Address         `json:"location"`
	Products      []string        `json:"products"`
	WalletAddress string          `json:"walletAddress"`
	// WalletBalance is informational only; the authoritative balance comes
	// from the remote chain.
	WalletBalance float64 `json:"walletBalance"`
}

// Clone returns a deep copy of the participant.
func (p *Participant) Clone() *Participant {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Products = append([]string(nil), p.Products...)
	return &clone
}

// HasProduct reports whether the given product id is attributed to the
// participant.
func (p *Participant) HasProduct(productID string) bool {
	for _, id := range p.Products {
		if id == productID {
			return true
		}
	}
	return false
}

// Payment is a settled transfer recorded on the local ledger. Once Completed
// is true the payment is immutable apart from idempotent re-completion.
type Payment struct {
	ID        string `json:"id"`
	From      string `json:"from"`
	To        string `json:"to"`
	Amount    string `json:"amount"`
	ProductID string `json:"productId"`
	Timestamp int64  `json:"timestamp"`
	Completed bool   `json:"completed"`
}

// Clone returns a copy of the payment.
func (p *Payment) Clone() *Payment {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

// SanitizeProduct validates and normalises the supplied product draft,
// returning a cloned instance with canonical status casing. The function does
// not mutate the original value.
func SanitizeProduct(p *Product) (*Product, error) {
	if p == nil {
		return nil, fmt.Errorf("nil product")
	}
	clone := p.Clone()
	if strings.TrimSpace(clone.Name) == "" {
		return nil, fmt.Errorf("product name required")
	}
	if strings.TrimSpace(clone.RFIDTag) == "" {
		return nil, fmt.Errorf("product rfid tag required")
	}
	status, err := NormalizeStatus(string(clone.Status))
	if err != nil {
		return nil, err
	}
	clone.Status = status
	return clone, nil
}

// SanitizeParticipant validates and normalises the supplied participant
// draft without mutating the original value.
func SanitizeParticipant(p *Participant) (*Participant, error) {
	if p == nil {
		return nil, fmt.Errorf("nil participant")
	}
	clone := p.Clone()
	if strings.TrimSpace(clone.Name) == "" {
		return nil, fmt.Errorf("participant name required")
	}
	role, err := NormalizeRole(string(clone.Role))
	if err != nil {
		return nil, err
	}
	clone.Role = role
	if clone.Products == nil {
		clone.Products = []string{}
	}
	return clone, nil
}
