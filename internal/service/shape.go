package service

import (
	"strings"

	"github.com/siteflow/orderbot/internal/domain"
)

// ShapeOrder turns a validated extraction into a persistable order, or nil
// when the extraction is missing the site, the delivery slot, or any named
// material. Materials keep empty quantity/unit once a name exists.
func ShapeOrder(e domain.Extraction, sender string) *domain.Order {
	if strings.TrimSpace(e.Site) == "" || e.Delivery.Date == "" || e.Delivery.Time == "" {
		return nil
	}

	var materials []domain.Material
	for _, m := range e.Materials {
		name := strings.TrimSpace(m.Name)
		if name == "" {
			continue
		}
		materials = append(materials, domain.Material{
			Name:     name,
			Quantity: m.Quantity,
			Unit:     m.Unit,
		})
	}
	if len(materials) == 0 {
		return nil
	}

	status := domain.StatusPending
	if e.Confirmed {
		status = domain.StatusConfirmed
	}

	return &domain.Order{
		Sender:       sender,
		Site:         strings.TrimSpace(e.Site),
		Materials:    materials,
		DeliveryDate: e.Delivery.Date,
		DeliveryTime: e.Delivery.Time,
		Status:       status,
		Completeness: e.Completeness,
	}
}
