package storage

import (
	"strings"
	"time"

	"blocktrack/core/types"
)

// Seed data backs the repository when nothing has been persisted yet, so the
// ids used here (prod-NNN, part-NNN) are load-bearing for callers that
// bootstrap from an empty store.
//
// prod-002 is deliberately listed by both part-001 and part-003: the demo
// dataset captures a shipment mid-handover, and the first transfer of
// prod-002 converges it on a single holder.

func daysAgo(days int) int64 {
	return time.Now().Add(-time.Duration(days)*24*time.Hour).UnixNano() / int64(time.Millisecond)
}

func hoursAgo(hours int) int64 {
	return time.Now().Add(-time.Duration(hours)*time.Hour).UnixNano() / int64(time.Millisecond)
}

func floatPtr(v float64) *float64 { return &v }

// SeedProducts returns the built-in demo product set.
func SeedProducts() []*types.Product {
	return []*types.Product{
		{
			ID:              "prod-001",
			Name:            "Smartphone Model X",
			RFIDTag:         "0xABCD1234EFGH5678",
			Manufacturer:    "TechCorp",
			CurrentLocation: types.GeoPoint{Name: "TechCorp Manufacturing", Latitude: 37.7749, Longitude: -122.4194},
			Status:          types.StatusManufactured,
			Timestamp:       daysAgo(15),
		},
		{
			ID:              "prod-002",
			Name:            "Laptop Pro 15",
			RFIDTag:         "0x1234ABCD5678EFGH",
			Manufacturer:    "TechCorp",
			CurrentLocation: types.GeoPoint{Name: "Global Shipping Inc.", Latitude: 34.0522, Longitude: -118.2437},
			Status:          types.StatusInTransit,
			Timestamp:       daysAgo(10),
			Temperature:     floatPtr(22),
			Humidity:        floatPtr(45),
		},
		{
			ID:              "prod-003",
			Name:            `Smart TV 55"`,
			RFIDTag:         "0xEFGH5678ABCD1234",
			Manufacturer:    "ElectroVision",
			CurrentLocation: types.GeoPoint{Name: "ElectroMart", Latitude: 40.7128, Longitude: -74.0060},
			Status:          types.StatusDelivered,
			Timestamp:       daysAgo(5),
		},
		{
			ID:              "prod-004",
			Name:            "Wireless Headphones",
			RFIDTag:         "0x5678EFGH1234ABCD",
			Manufacturer:    "SoundWave",
			CurrentLocation: types.GeoPoint{Name: "TechRetail", Latitude: 41.8781, Longitude: -87.6298},
			Status:          types.StatusSold,
			Timestamp:       daysAgo(2),
		},
		{
			ID:              "prod-005",
			Name:            "Gaming Console Pro",
			RFIDTag:         "0x9012IJKL3456MNOP",
			Manufacturer:    "GameTech",
			CurrentLocation: types.GeoPoint{Name: "GameTech Factory", Latitude: 35.6762, Longitude: 139.6503},
			Status:          types.StatusManufactured,
			Timestamp:       daysAgo(8),
			Temperature:     floatPtr(21),
			Humidity:        floatPtr(40),
		},
		{
			ID:              "prod-006",
			Name:            "Smart Watch Series 5",
			RFIDTag:         "0xQRST7890UVWX1234",
			Manufacturer:    "TechCorp",
			CurrentLocation: types.GeoPoint{Name: "Asia Distribution Center", Latitude: 1.3521, Longitude: 103.8198},
			Status:          types.StatusInTransit,
			Timestamp:       daysAgo(6),
			Temperature:     floatPtr(23),
			Humidity:        floatPtr(50),
		},
		{
			ID:              "prod-007",
			Name:            "Tablet Pro 12.9",
			RFIDTag:         "0xYZAB2345CDEF6789",
			Manufacturer:    "TechVision",
			CurrentLocation: types.GeoPoint{Name: "European Logistics Hub", Latitude: 52.3676, Longitude: 4.9041},
			Status:          types.StatusInTransit,
			Timestamp:       daysAgo(4),
			Temperature:     floatPtr(20),
			Humidity:        floatPtr(42),
		},
		{
			ID:              "prod-008",
			Name:            "Smart Home Hub",
			RFIDTag:         "0xGHIJ3456KLMN7890",
			Manufacturer:    "HomeConnect",
			CurrentLocation: types.GeoPoint{Name: "Smart Living Store", Latitude: 48.8566, Longitude: 2.3522},
			Status:          types.StatusDelivered,
			Timestamp:       daysAgo(3),
		},
		{
			ID:              "prod-009",
			Name:            "Professional Camera",
			RFIDTag:         "0xPQRS4567TUVW8901",
			Manufacturer:    "OptiTech",
			CurrentLocation: types.GeoPoint{Name: "Photo Pro Store", Latitude: 51.5074, Longitude: -0.1278},
			Status:          types.StatusSold,
			Timestamp:       daysAgo(1),
		},
		{
			ID:              "prod-010",
			Name:            "Electric Vehicle Model Y",
			RFIDTag:         "0xXYZA5678BCDE9012",
			Manufacturer:    "EcoMotors",
			CurrentLocation: types.GeoPoint{Name: "EcoMotors Factory", Latitude: 37.3382, Longitude: -121.8863},
			Status:          types.StatusManufactured,
			Timestamp:       daysAgo(12),
			Temperature:     floatPtr(19),
			Humidity:        floatPtr(38),
		},
	}
}

// SeedParticipants returns the built-in demo participant set.
func SeedParticipants() []*types.Participant {
	return []*types.Participant{
		{
			ID:            "part-001",
			Name:          "TechCorp",
			Role:          types.RoleManufacturer,
			Location:      types.Address{Address: "123 Tech St, San Francisco, CA", Latitude: 37.7749, Longitude: -122.4194},
			Products:      []string{"prod-001", "prod-002", "prod-006"},
			WalletAddress: "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266",
			WalletBalance: 10.5,
		},
		{
			ID:            "part-002",
			Name:          "ElectroVision",
			Role:          types.RoleManufacturer,
			Location:      types.Address{Address: "456 Vision Blvd, Los Angeles, CA", Latitude: 34.0522, Longitude: -118.2437},
			Products:      []string{"prod-003"},
			WalletAddress: "0x2345678901234567890123456789012345678901",
			WalletBalance: 8.2,
		},
		{
			ID:            "part-003",
			Name:          "Global Shipping Inc.",
			Role:          types.RoleDistributor,
			Location:      types.Address{Address: "789 Shipping Ave, Chicago, IL", Latitude: 41.8781, Longitude: -87.6298},
			Products:      []string{"prod-002"},
			WalletAddress: "0x3456789012345678901234567890123456789012",
			WalletBalance: 15.0,
		},
		{
			ID:            "part-004",
			Name:          "ElectroMart",
			Role:          types.RoleRetailer,
			Location:      types.Address{Address: "101 Retail Dr, New York, NY", Latitude: 40.7128, Longitude: -74.0060},
			Products:      []string{"prod-003"},
			WalletAddress: "0x4567890123456789012345678901234567890123",
			WalletBalance: 5.8,
		},
		{
			ID:            "part-005",
			Name:          "TechRetail",
			Role:          types.RoleRetailer,
			Location:      types.Address{Address: "202 Market St, Chicago, IL", Latitude: 41.8781, Longitude: -87.6298},
			Products:      []string{"prod-004"},
			WalletAddress: "0x5678901234567890123456789012345678901234",
			WalletBalance: 7.3,
		},
		{
			ID:            "part-006",
			Name:          "ComponentSupply",
			Role:          types.RoleSupplier,
			Location:      types.Address{Address: "303 Supply Rd, Boston, MA", Latitude: 42.3601, Longitude: -71.0589},
			Products:      []string{},
			WalletAddress: "0x6789012345678901234567890123456789012345",
			WalletBalance: 12.1,
		},
		{
			ID:            "part-007",
			Name:          "GameTech",
			Role:          types.RoleManufacturer,
			Location:      types.Address{Address: "404 Gaming Ave, Tokyo, Japan", Latitude: 35.6762, Longitude: 139.6503},
			Products:      []string{"prod-005"},
			WalletAddress: "0x7890123456789012345678901234567890123456",
			WalletBalance: 9.4,
		},
		{
			ID:            "part-008",
			Name:          "Asia Distribution Center",
			Role:          types.RoleDistributor,
			Location:      types.Address{Address: "505 Port Way, Singapore", Latitude: 1.3521, Longitude: 103.8198},
			Products:      []string{"prod-006"},
			WalletAddress: "0x8901234567890123456789012345678901234567",
			WalletBalance: 11.7,
		},
		{
			ID:            "part-009",
			Name:          "European Logistics Hub",
			Role:          types.RoleDistributor,
			Location:      types.Address{Address: "606 Canal St, Amsterdam, Netherlands", Latitude: 52.3676, Longitude: 4.9041},
			Products:      []string{"prod-007"},
			WalletAddress: "0x9012345678901234567890123456789012345678",
			WalletBalance: 14.2,
		},
		{
			ID:            "part-010",
			Name:          "Smart Living Store",
			Role:          types.RoleRetailer,
			Location:      types.Address{Address: "707 Smart Rd, Paris, France", Latitude: 48.8566, Longitude: 2.3522},
			Products:      []string{"prod-008"},
			WalletAddress: "0xa123456789012345678901234567890123456789",
			WalletBalance: 6.9,
		},
		{
			ID:            "part-011",
			Name:          "Photo Pro Store",
			Role:          types.RoleRetailer,
			Location:      types.Address{Address: "808 Camera Lane, London, UK", Latitude: 51.5074, Longitude: -0.1278},
			Products:      []string{"prod-009"},
			WalletAddress: "0xb234567890123456789012345678901234567890",
			WalletBalance: 8.5,
		},
		{
			ID:            "part-012",
			Name:          "EcoMotors",
			Role:          types.RoleManufacturer,
			Location:      types.Address{Address: "909 Electric Ave, San Jose, CA", Latitude: 37.3382, Longitude: -121.8863},
			Products:      []string{"prod-010"},
			WalletAddress: "0xc345678901234567890123456789012345678901",
			WalletBalance: 13.6,
		},
	}
}

// SeedPayments returns the built-in demo ledger, most recent first.
func SeedPayments() []*types.Payment {
	return []*types.Payment{
		{
			ID:        "0x" + strings.Repeat("3", 64),
			From:      "0x15d34aaf54267db7d7c367839aaf71a00a2c6a65",
			To:        "0x9965507d1a55bcc2695c58ba16fb37d819b0a4dc",
			Amount:    "1.2",
			ProductID: "prod-003",
			Timestamp: hoursAgo(6),
			Completed: false,
		},
		{
			ID:        "0x" + strings.Repeat("2", 64),
			From:      "0x3c44cdddb6a900fa2b585dd299e03d12fa4293bc",
			To:        "0x90f79bf6eb2c4f870365e785982e1f101e93b906",
			Amount:    "0.75",
			ProductID: "prod-002",
			Timestamp: hoursAgo(12),
			Completed: true,
		},
		{
			ID:        "0x" + strings.Repeat("1", 64),
			From:      "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266",
			To:        "0x70997970c51812dc3a010c7d01b50e0d17dc79c8",
			Amount:    "0.5",
			ProductID: "prod-001",
			Timestamp: hoursAgo(24),
			Completed: true,
		},
	}
}
