package supply

import (
	"errors"
	"testing"

	"blocktrack/core/events"
	"blocktrack/core/types"
	"blocktrack/storage"
)

type memStore struct {
	products     []*types.Product
	participants []*types.Participant
	saves        int
}

func (s *memStore) LoadEntities() ([]*types.Product, []*types.Participant) {
	return s.products, s.participants
}

func (s *memStore) SaveEntities(products []*types.Product, participants []*types.Participant) {
	s.products = products
	s.participants = participants
	s.saves++
}

type recordingEmitter struct {
	events []events.Event
}

func (r *recordingEmitter) Emit(evt events.Event) {
	r.events = append(r.events, evt)
}

func fixtureStore() *memStore {
	return &memStore{
		products: []*types.Product{
			{
				ID:           "prod-001",
				Name:         "Laptop Pro 15",
				RFIDTag:      "0x1234ABCD5678EFGH",
				Manufacturer: "TechCorp",
				CurrentLocation: types.GeoPoint{
					Name: "TechCorp Manufacturing", Latitude: 37.7749, Longitude: -122.4194,
				},
				Status:    types.StatusManufactured,
				Timestamp: 1000,
			},
		},
		participants: []*types.Participant{
			{
				ID:       "part-001",
				Name:     "TechCorp",
				Role:     types.RoleManufacturer,
				Location: types.Address{Address: "123 Tech St", Latitude: 37.7749, Longitude: -122.4194},
				Products: []string{"prod-001"},
			},
			{
				ID:       "part-002",
				Name:     "Global Shipping Inc.",
				Role:     types.RoleDistributor,
				Location: types.Address{Address: "789 Shipping Ave", Latitude: 41.8781, Longitude: -87.6298},
				Products: []string{},
			},
			{
				ID:       "part-003",
				Name:     "ElectroMart",
				Role:     types.RoleRetailer,
				Location: types.Address{Address: "101 Retail Dr", Latitude: 40.7128, Longitude: -74.0060},
				Products: []string{},
			},
		},
	}
}

func newTestEngine(t *testing.T, store *memStore) *Engine {
	t.Helper()
	engine, err := NewEngine(store)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	engine.SetNowFunc(func() int64 { return 5000 })
	return engine
}

func TestNewEngineRequiresStore(t *testing.T) {
	if _, err := NewEngine(nil); err == nil {
		t.Fatalf("expected error for nil store")
	}
}

func TestAddProductAssignsSequentialIDs(t *testing.T) {
	store := fixtureStore()
	engine := newTestEngine(t, store)

	first, err := engine.AddProduct(&types.Product{Name: "Widget", RFIDTag: "0xAAA", Status: "manufactured"})
	if err != nil {
		t.Fatalf("add product: %v", err)
	}
	if first.ID != "prod-002" {
		t.Fatalf("expected prod-002, got %s", first.ID)
	}
	if first.Timestamp != 5000 {
		t.Fatalf("expected stamped timestamp 5000, got %d", first.Timestamp)
	}

	second, err := engine.AddProduct(&types.Product{Name: "Gadget", RFIDTag: "0xBBB", Status: "manufactured"})
	if err != nil {
		t.Fatalf("add product: %v", err)
	}
	if second.ID != "prod-003" {
		t.Fatalf("expected prod-003, got %s", second.ID)
	}
	if store.saves != 2 {
		t.Fatalf("expected 2 persisted saves, got %d", store.saves)
	}
}

func TestAddProductRejectsDuplicateRFID(t *testing.T) {
	engine := newTestEngine(t, fixtureStore())
	_, err := engine.AddProduct(&types.Product{Name: "Clone", RFIDTag: "0x1234ABCD5678EFGH", Status: "manufactured"})
	if err == nil {
		t.Fatalf("expected duplicate rfid rejection")
	}
}

func TestAddProductAttributesManufacturer(t *testing.T) {
	engine := newTestEngine(t, fixtureStore())
	product, err := engine.AddProduct(&types.Product{
		Name: "Widget", RFIDTag: "0xAAA", Manufacturer: "TechCorp", Status: "manufactured",
	})
	if err != nil {
		t.Fatalf("add product: %v", err)
	}
	owner, ok := engine.GetParticipant("part-001")
	if !ok {
		t.Fatalf("participant part-001 missing")
	}
	if !owner.HasProduct(product.ID) {
		t.Fatalf("expected %s attributed to part-001, got %v", product.ID, owner.Products)
	}
}

func TestAddProductUnknownManufacturerUnattributed(t *testing.T) {
	engine := newTestEngine(t, fixtureStore())
	product, err := engine.AddProduct(&types.Product{
		Name: "Widget", RFIDTag: "0xAAA", Manufacturer: "NoSuchCorp", Status: "manufactured",
	})
	if err != nil {
		t.Fatalf("add product: %v", err)
	}
	for _, participant := range engine.Participants() {
		if participant.HasProduct(product.ID) {
			t.Fatalf("product unexpectedly attributed to %s", participant.ID)
		}
	}
}

func TestAddParticipantAssignsSequentialIDs(t *testing.T) {
	engine := newTestEngine(t, fixtureStore())
	participant, err := engine.AddParticipant(&types.Participant{Name: "NewCo", Role: "supplier"})
	if err != nil {
		t.Fatalf("add participant: %v", err)
	}
	if participant.ID != "part-004" {
		t.Fatalf("expected part-004, got %s", participant.ID)
	}
	if participant.Products == nil || len(participant.Products) != 0 {
		t.Fatalf("expected empty product set, got %v", participant.Products)
	}
}

func TestUpdateProductStatus(t *testing.T) {
	engine := newTestEngine(t, fixtureStore())
	if err := engine.UpdateProductStatus("prod-001", "Shipped"); err != nil {
		t.Fatalf("update status: %v", err)
	}
	product, _ := engine.GetProduct("prod-001")
	if product.Status != types.StatusShipped {
		t.Fatalf("expected shipped, got %s", product.Status)
	}
	if product.Timestamp != 5000 {
		t.Fatalf("expected refreshed timestamp, got %d", product.Timestamp)
	}

	if err := engine.UpdateProductStatus("prod-099", "shipped"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := engine.UpdateProductStatus("prod-001", "teleported"); err == nil {
		t.Fatalf("expected unsupported status rejection")
	}
}

func TestTimestampNeverDecreases(t *testing.T) {
	engine := newTestEngine(t, fixtureStore())
	engine.SetNowFunc(func() int64 { return 9000 })
	if err := engine.UpdateProductStatus("prod-001", "shipped"); err != nil {
		t.Fatalf("update status: %v", err)
	}
	// Clock goes backwards; the stored timestamp must not.
	engine.SetNowFunc(func() int64 { return 4000 })
	if err := engine.UpdateProductStatus("prod-001", "in-transit"); err != nil {
		t.Fatalf("update status: %v", err)
	}
	product, _ := engine.GetProduct("prod-001")
	if product.Timestamp != 9000 {
		t.Fatalf("timestamp regressed: %d", product.Timestamp)
	}
}

func TestTransferToDistributorMovesInTransit(t *testing.T) {
	engine := newTestEngine(t, fixtureStore())
	if err := engine.TransferProduct("prod-001", "part-001", "part-002"); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	product, _ := engine.GetProduct("prod-001")
	if product.Status != types.StatusInTransit {
		t.Fatalf("expected in-transit, got %s", product.Status)
	}
	if product.CurrentLocation.Name != "Global Shipping Inc." {
		t.Fatalf("expected relocation to destination, got %s", product.CurrentLocation.Name)
	}
	if product.CurrentLocation.Latitude != 41.8781 {
		t.Fatalf("expected destination latitude, got %v", product.CurrentLocation.Latitude)
	}

	from, _ := engine.GetParticipant("part-001")
	to, _ := engine.GetParticipant("part-002")
	if from.HasProduct("prod-001") {
		t.Fatalf("source still holds prod-001 after transfer")
	}
	if !to.HasProduct("prod-001") {
		t.Fatalf("destination missing prod-001 after transfer")
	}
}

func TestTransferToRetailerMarksDelivered(t *testing.T) {
	engine := newTestEngine(t, fixtureStore())
	if err := engine.TransferProduct("prod-001", "part-001", "part-003"); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	product, _ := engine.GetProduct("prod-001")
	if product.Status != types.StatusDelivered {
		t.Fatalf("expected delivered, got %s", product.Status)
	}
}

func TestTransferToManufacturerKeepsStatus(t *testing.T) {
	store := fixtureStore()
	store.participants = append(store.participants, &types.Participant{
		ID: "part-004", Name: "OtherCorp", Role: types.RoleManufacturer, Products: []string{},
	})
	engine := newTestEngine(t, store)
	if err := engine.TransferProduct("prod-001", "part-001", "part-004"); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	product, _ := engine.GetProduct("prod-001")
	if product.Status != types.StatusManufactured {
		t.Fatalf("expected status unchanged, got %s", product.Status)
	}
}

func TestTransferUnknownIDs(t *testing.T) {
	engine := newTestEngine(t, fixtureStore())
	if err := engine.TransferProduct("prod-099", "part-001", "part-002"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for product, got %v", err)
	}
	if err := engine.TransferProduct("prod-001", "part-099", "part-002"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for source, got %v", err)
	}
	if err := engine.TransferProduct("prod-001", "part-001", "part-099"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for destination, got %v", err)
	}
	// A failed transfer must not move anything.
	from, _ := engine.GetParticipant("part-001")
	if !from.HasProduct("prod-001") {
		t.Fatalf("failed transfer mutated membership")
	}
}

func TestTrackProduct(t *testing.T) {
	engine := newTestEngine(t, fixtureStore())
	product, found := engine.TrackProduct("  0x1234ABCD5678EFGH ")
	if !found {
		t.Fatalf("expected tag hit")
	}
	if product.ID != "prod-001" {
		t.Fatalf("expected prod-001, got %s", product.ID)
	}
	if _, found := engine.TrackProduct("0xDEADBEEF"); found {
		t.Fatalf("unexpected hit for unknown tag")
	}
}

func TestLookupReturnsTaggedEntity(t *testing.T) {
	engine := newTestEngine(t, fixtureStore())

	entity, ok := engine.Lookup("prod-001")
	if !ok || entity.Kind != types.KindProduct || entity.Product == nil {
		t.Fatalf("expected product entity, got %+v", entity)
	}
	entity, ok = engine.Lookup("part-002")
	if !ok || entity.Kind != types.KindParticipant || entity.Participant == nil {
		t.Fatalf("expected participant entity, got %+v", entity)
	}
	if _, ok := engine.Lookup("nothing"); ok {
		t.Fatalf("unexpected hit for unknown id")
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	engine := newTestEngine(t, fixtureStore())
	product, _ := engine.GetProduct("prod-001")
	product.Status = types.StatusSold

	fresh, _ := engine.GetProduct("prod-001")
	if fresh.Status == types.StatusSold {
		t.Fatalf("external mutation leaked into engine state")
	}

	participants := engine.Participants()
	participants[0].Products = append(participants[0].Products, "prod-777")
	fresh2, _ := engine.GetParticipant(participants[0].ID)
	if fresh2.HasProduct("prod-777") {
		t.Fatalf("external membership mutation leaked into engine state")
	}
}

func TestTransferEmitsEvent(t *testing.T) {
	engine := newTestEngine(t, fixtureStore())
	rec := &recordingEmitter{}
	engine.SetEmitter(rec)

	if err := engine.TransferProduct("prod-001", "part-001", "part-002"); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if len(rec.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(rec.events))
	}
	evt, ok := rec.events[0].(events.ProductTransferred)
	if !ok {
		t.Fatalf("unexpected event type %T", rec.events[0])
	}
	if evt.ProductID != "prod-001" || evt.From != "part-001" || evt.To != "part-002" {
		t.Fatalf("unexpected event payload: %+v", evt)
	}
}

// The seed data ships prod-002 attributed to both part-001 and part-003. The
// first transfer over that pre-state must converge on a single holder rather
// than duplicating the destination's membership.
func TestSeedLaptopShipmentTransfer(t *testing.T) {
	store := &memStore{
		products:     storage.SeedProducts(),
		participants: storage.SeedParticipants(),
	}
	engine := newTestEngine(t, store)

	if err := engine.TransferProduct("prod-002", "part-001", "part-003"); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	product, ok := engine.GetProduct("prod-002")
	if !ok {
		t.Fatalf("prod-002 missing after transfer")
	}
	if product.Status != types.StatusInTransit {
		t.Fatalf("expected in-transit at the distributor, got %s", product.Status)
	}
	if product.CurrentLocation.Name != "Global Shipping Inc." {
		t.Fatalf("expected relocation to Global Shipping Inc., got %s", product.CurrentLocation.Name)
	}
	if product.CurrentLocation.Latitude != 41.8781 || product.CurrentLocation.Longitude != -87.6298 {
		t.Fatalf("expected Global Shipping coordinates, got %+v", product.CurrentLocation)
	}

	holders := 0
	for _, participant := range engine.Participants() {
		if participant.HasProduct("prod-002") {
			holders++
			if participant.ID != "part-003" {
				t.Fatalf("unexpected holder %s", participant.ID)
			}
			// The destination already listed prod-002; it must not be
			// duplicated within its own set either.
			count := 0
			for _, id := range participant.Products {
				if id == "prod-002" {
					count++
				}
			}
			if count != 1 {
				t.Fatalf("prod-002 listed %d times by %s", count, participant.ID)
			}
		}
	}
	if holders != 1 {
		t.Fatalf("expected exactly one holder of prod-002, got %d", holders)
	}
}

func TestStats(t *testing.T) {
	store := fixtureStore()
	store.products = append(store.products,
		&types.Product{ID: "prod-002", Name: "A", RFIDTag: "0xA1", Status: types.StatusInTransit},
		&types.Product{ID: "prod-003", Name: "B", RFIDTag: "0xA2", Status: types.StatusDelivered},
		&types.Product{ID: "prod-004", Name: "C", RFIDTag: "0xA3", Status: types.StatusSold},
	)
	engine := newTestEngine(t, store)

	stats := engine.Stats()
	if stats.TotalProducts != 4 {
		t.Fatalf("expected 4 products, got %d", stats.TotalProducts)
	}
	if stats.InTransitProducts != 1 {
		t.Fatalf("expected 1 in-transit, got %d", stats.InTransitProducts)
	}
	if stats.DeliveredProducts != 2 {
		t.Fatalf("expected 2 delivered (incl. sold), got %d", stats.DeliveredProducts)
	}
	if stats.Manufacturers != 1 || stats.Distributors != 1 || stats.Retailers != 1 || stats.Suppliers != 0 {
		t.Fatalf("unexpected role counts: %+v", stats)
	}
	if stats.AverageShippingTime != 3.5 {
		t.Fatalf("unexpected average shipping time: %v", stats.AverageShippingTime)
	}
}
