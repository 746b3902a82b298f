package types

import "testing"

func TestNormalizeStatus(t *testing.T) {
	status, err := NormalizeStatus("  In-Transit ")
	if err != nil {
		t.Fatalf("normalize status: %v", err)
	}
	if status != StatusInTransit {
		t.Fatalf("expected %s, got %s", StatusInTransit, status)
	}
	if _, err := NormalizeStatus("teleported"); err == nil {
		t.Fatalf("expected error for unsupported status")
	}
}

func TestNormalizeRole(t *testing.T) {
	role, err := NormalizeRole("Distributor")
	if err != nil {
		t.Fatalf("normalize role: %v", err)
	}
	if role != RoleDistributor {
		t.Fatalf("expected %s, got %s", RoleDistributor, role)
	}
	if _, err := NormalizeRole("wholesaler"); err == nil {
		t.Fatalf("expected error for unsupported role")
	}
}

func TestProductCloneIndependence(t *testing.T) {
	temp := 21.5
	original := &Product{
		ID:          "prod-001",
		Name:        "Widget",
		RFIDTag:     "0xAA",
		Status:      StatusManufactured,
		Temperature: &temp,
	}
	clone := original.Clone()
	*clone.Temperature = 30
	clone.Status = StatusSold
	if *original.Temperature != 21.5 {
		t.Fatalf("clone mutation leaked into original temperature: %v", *original.Temperature)
	}
	if original.Status != StatusManufactured {
		t.Fatalf("clone mutation leaked into original status: %s", original.Status)
	}
}

func TestParticipantCloneIndependence(t *testing.T) {
	original := &Participant{
		ID:       "part-001",
		Name:     "TechCorp",
		Role:     RoleManufacturer,
		Products: []string{"prod-001"},
	}
	clone := original.Clone()
	clone.Products = append(clone.Products, "prod-002")
	clone.Products[0] = "prod-099"
	if len(original.Products) != 1 || original.Products[0] != "prod-001" {
		t.Fatalf("clone mutation leaked into original products: %v", original.Products)
	}
}

func TestSanitizeProduct(t *testing.T) {
	draft := &Product{Name: "Widget", RFIDTag: "0xAA", Status: "Manufactured"}
	sanitized, err := SanitizeProduct(draft)
	if err != nil {
		t.Fatalf("sanitize product: %v", err)
	}
	if sanitized.Status != StatusManufactured {
		t.Fatalf("expected canonical status, got %s", sanitized.Status)
	}
	if draft.Status != "Manufactured" {
		t.Fatalf("sanitize mutated the draft: %s", draft.Status)
	}

	if _, err := SanitizeProduct(&Product{RFIDTag: "0xAA", Status: "manufactured"}); err == nil {
		t.Fatalf("expected error for missing name")
	}
	if _, err := SanitizeProduct(&Product{Name: "Widget", Status: "manufactured"}); err == nil {
		t.Fatalf("expected error for missing rfid tag")
	}
	if _, err := SanitizeProduct(nil); err == nil {
		t.Fatalf("expected error for nil product")
	}
}

func TestSanitizeParticipant(t *testing.T) {
	draft := &Participant{Name: "TechCorp", Role: "Manufacturer"}
	sanitized, err := SanitizeParticipant(draft)
	if err != nil {
		t.Fatalf("sanitize participant: %v", err)
	}
	if sanitized.Role != RoleManufacturer {
		t.Fatalf("expected canonical role, got %s", sanitized.Role)
	}
	if sanitized.Products == nil {
		t.Fatalf("expected non-nil product set")
	}
	if _, err := SanitizeParticipant(&Participant{Role: "manufacturer"}); err == nil {
		t.Fatalf("expected error for missing name")
	}
}

func TestHasProduct(t *testing.T) {
	p := &Participant{Products: []string{"prod-001", "prod-002"}}
	if !p.HasProduct("prod-002") {
		t.Fatalf("expected membership for prod-002")
	}
	if p.HasProduct("prod-003") {
		t.Fatalf("unexpected membership for prod-003")
	}
}
