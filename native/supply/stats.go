package supply

import "blocktrack/core/types"

// averageShippingDays is a fixed dashboard figure; shipment durations are
// not yet measured.
const averageShippingDays = 3.5

// Stats summarises the ledger for dashboard consumers.
type Stats struct {
	TotalProducts       int     `json:"totalProducts"`
	InTransitProducts   int     `json:"inTransitProducts"`
	DeliveredProducts   int     `json:"deliveredProducts"`
	AverageShippingTime float64 `json:"averageShippingTime"`
	Suppliers           int     `json:"suppliers"`
	Manufacturers       int     `json:"manufacturers"`
	Distributors        int     `json:"distributors"`
	Retailers           int     `json:"retailers"`
}

// Stats computes the current ledger summary. Sold products count as
// delivered.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	stats := Stats{
		TotalProducts:       len(e.products),
		AverageShippingTime: averageShippingDays,
	}
	for _, p := range e.products {
		switch p.Status {
		case types.StatusInTransit:
			stats.InTransitProducts++
		case types.StatusDelivered, types.StatusSold:
			stats.DeliveredProducts++
		}
	}
	for _, p := range e.participants {
		switch p.Role {
		case types.RoleSupplier:
			stats.Suppliers++
		case types.RoleManufacturer:
			stats.Manufacturers++
		case types.RoleDistributor:
			stats.Distributors++
		case types.RoleRetailer:
			stats.Retailers++
		}
	}
	return stats
}
