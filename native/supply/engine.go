package supply

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"blocktrack/core/events"
	"blocktrack/core/types"
	"blocktrack/observability/metrics"
)

var (
	// ErrNotFound is returned when a product or participant id does not
	// resolve. Mutations never silently ignore unknown ids.
	ErrNotFound = errors.New("supply engine: entity not found")
	errNilStore = errors.New("supply engine: store not configured")
)

// Store is the slice of the repository the engine needs. Reads never fail;
// writes are best-effort.
type Store interface {
	LoadEntities() ([]*types.Product, []*types.Participant)
	SaveEntities(products []*types.Product, participants []*types.Participant)
}

// Engine owns the authoritative product and participant records and drives
// every lifecycle mutation. It is created once at process start and persists
// through the store after each successful mutation.
type Engine struct {
	mu           sync.Mutex
	store        Store
	products     []*types.Product
	participants []*types.Participant
	emitter      events.Emitter
	nowFn        func() int64
}

// NewEngine loads the entity records from the store and returns a ready
// engine.
func NewEngine(store Store) (*Engine, error) {
	if store == nil {
		return nil, errNilStore
	}
	products, participants := store.LoadEntities()
	return &Engine{
		store:        store,
		products:     products,
		participants: participants,
		emitter:      events.NoopEmitter{},
		nowFn:        nowMillis,
	}, nil
}

func nowMillis() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}

// SetEmitter configures the event emitter used by the engine. Passing nil
// resets the emitter to a no-op implementation.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		e.emitter = events.NoopEmitter{}
		return
	}
	e.emitter = emitter
}

// SetNowFunc overrides the time source used by the engine. Primarily intended
// for tests to provide deterministic timestamps.
func (e *Engine) SetNowFunc(now func() int64) {
	if now == nil {
		e.nowFn = nowMillis
		return
	}
	e.nowFn = now
}

func (e *Engine) emit(evt events.Event) {
	if e.emitter != nil && evt != nil {
		e.emitter.Emit(evt)
	}
}

// stamp returns the mutation instant for a product, clamped so the product
// timestamp never decreases even if the wall clock does.
func (e *Engine) stamp(previous int64) int64 {
	now := e.nowFn()
	if now < previous {
		return previous
	}
	return now
}

func (e *Engine) persist() {
	e.store.SaveEntities(e.products, e.participants)
}

func (e *Engine) findProduct(id string) *types.Product {
	for _, p := range e.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (e *Engine) findParticipant(id string) *types.Participant {
	for _, p := range e.participants {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// AddProduct assigns the next sequential product id, stamps the draft and
// appends it to the ledger. When the draft's manufacturer matches a
// participant name the new id is attributed to that participant; an
// unmatched manufacturer leaves the product unattributed without error.
func (e *Engine) AddProduct(draft *types.Product) (*types.Product, error) {
	sanitized, err := types.SanitizeProduct(draft)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, p := range e.products {
		if p.RFIDTag == sanitized.RFIDTag {
			return nil, fmt.Errorf("duplicate rfid tag: %s", sanitized.RFIDTag)
		}
	}

	sanitized.ID = fmt.Sprintf("prod-%03d", len(e.products)+1)
	sanitized.Timestamp = e.nowFn()
	e.products = append(e.products, sanitized)

	for _, participant := range e.participants {
		if participant.Name == sanitized.Manufacturer {
			participant.Products = append(participant.Products, sanitized.ID)
			break
		}
	}

	e.persist()
	metrics.Supply().ProductRegistered()
	e.emit(events.ProductRegistered{
		ID:           sanitized.ID,
		Name:         sanitized.Name,
		RFIDTag:      sanitized.RFIDTag,
		Manufacturer: sanitized.Manufacturer,
		Timestamp:    sanitized.Timestamp,
	})
	return sanitized.Clone(), nil
}

// AddParticipant assigns the next sequential participant id and registers the
// participant with an empty product set.
func (e *Engine) AddParticipant(draft *types.Participant) (*types.Participant, error) {
	sanitized, err := types.SanitizeParticipant(draft)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	sanitized.ID = fmt.Sprintf("part-%03d", len(e.participants)+1)
	sanitized.Products = []string{}
	e.participants = append(e.participants, sanitized)

	e.persist()
	metrics.Supply().ParticipantRegistered()
	e.emit(events.ParticipantRegistered{ID: sanitized.ID, Name: sanitized.Name, Role: sanitized.Role})
	return sanitized.Clone(), nil
}

// UpdateProductStatus sets the product status and refreshes its timestamp.
// Any supported status may be set at any time; there is no forward-only
// transition constraint, so manual overrides (e.g. returns, re-shipping)
// remain possible.
func (e *Engine) UpdateProductStatus(productID string, raw string) error {
	status, err := types.NormalizeStatus(raw)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	product := e.findProduct(productID)
	if product == nil {
		return fmt.Errorf("%w: product %s", ErrNotFound, productID)
	}
	product.Status = status
	product.Timestamp = e.stamp(product.Timestamp)

	e.persist()
	e.emit(events.ProductStatusUpdated{ID: product.ID, Status: status, Timestamp: product.Timestamp})
	return nil
}

// TransferProduct reassigns custody of a product between participants. The
// product relocates to the destination's site and derives its new status from
// the destination role: distributor moves it in-transit, retailer marks it
// delivered, any other role leaves the status unchanged. Membership updates
// and the product mutation happen together or not at all.
func (e *Engine) TransferProduct(productID, fromID, toID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	product := e.findProduct(productID)
	if product == nil {
		return fmt.Errorf("%w: product %s", ErrNotFound, productID)
	}
	from := e.findParticipant(fromID)
	if from == nil {
		return fmt.Errorf("%w: participant %s", ErrNotFound, fromID)
	}
	to := e.findParticipant(toID)
	if to == nil {
		return fmt.Errorf("%w: participant %s", ErrNotFound, toID)
	}

	switch to.Role {
	case types.RoleDistributor:
		product.Status = types.StatusInTransit
	case types.RoleRetailer:
		product.Status = types.StatusDelivered
	}
	product.CurrentLocation = types.GeoPoint{
		Name:      to.Name,
		Latitude:  to.Location.Latitude,
		Longitude: to.Location.Longitude,
	}
	product.Timestamp = e.stamp(product.Timestamp)

	filtered := from.Products[:0]
	for _, id := range from.Products {
		if id != productID {
			filtered = append(filtered, id)
		}
	}
	from.Products = filtered
	if !to.HasProduct(productID) {
		to.Products = append(to.Products, productID)
	}

	e.persist()
	metrics.Supply().ProductTransferred()
	e.emit(events.ProductTransferred{
		ProductID: productID,
		From:      fromID,
		To:        toID,
		Status:    product.Status,
		Location:  product.CurrentLocation.Name,
		Timestamp: product.Timestamp,
	})
	return nil
}

// TrackProduct performs an exact-match lookup by RFID tag. A miss is an
// explicit negative result, never an error.
func (e *Engine) TrackProduct(rfidTag string) (*types.Product, bool) {
	tag := strings.TrimSpace(rfidTag)

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, p := range e.products {
		if p.RFIDTag == tag {
			return p.Clone(), true
		}
	}
	return nil, false
}

// GetProduct returns a copy of the product with the given id.
func (e *Engine) GetProduct(id string) (*types.Product, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if p := e.findProduct(id); p != nil {
		return p.Clone(), true
	}
	return nil, false
}

// GetParticipant returns a copy of the participant with the given id.
func (e *Engine) GetParticipant(id string) (*types.Participant, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if p := e.findParticipant(id); p != nil {
		return p.Clone(), true
	}
	return nil, false
}

// Lookup resolves an id to either entity kind, returning a tagged union so
// callers branch on an explicit discriminant rather than field presence.
func (e *Engine) Lookup(id string) (types.Entity, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if p := e.findProduct(id); p != nil {
		return types.ProductEntity(p.Clone()), true
	}
	if p := e.findParticipant(id); p != nil {
		return types.ParticipantEntity(p.Clone()), true
	}
	return types.Entity{}, false
}

// Products returns a copy of the product records.
func (e *Engine) Products() []*types.Product {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]*types.Product, len(e.products))
	for i, p := range e.products {
		out[i] = p.Clone()
	}
	return out
}

// Participants returns a copy of the participant records.
func (e *Engine) Participants() []*types.Participant {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]*types.Participant, len(e.participants))
	for i, p := range e.participants {
		out[i] = p.Clone()
	}
	return out
}
