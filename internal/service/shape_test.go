package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siteflow/orderbot/internal/domain"
)

func completeExtraction() domain.Extraction {
	return domain.Extraction{
		Site:         "Site A",
		Materials:    []domain.Material{{Name: "concrete", Quantity: "10", Unit: "m3"}},
		Delivery:     domain.Delivery{Date: "15/01/2025", Time: "14:00"},
		Completeness: 1.0,
		Confirmed:    true,
	}
}

func TestShapeOrderConfirmed(t *testing.T) {
	order := ShapeOrder(completeExtraction(), "+33600000001")
	require.NotNil(t, order)
	require.Equal(t, "+33600000001", order.Sender)
	require.Equal(t, "Site A", order.Site)
	require.Len(t, order.Materials, 1)
	require.Equal(t, domain.StatusConfirmed, order.Status)
	require.Equal(t, 1.0, order.Completeness)
}

func TestShapeOrderPendingWhenNotConfirmed(t *testing.T) {
	e := completeExtraction()
	e.Confirmed = false
	order := ShapeOrder(e, "+33600000001")
	require.NotNil(t, order)
	require.Equal(t, domain.StatusPending, order.Status)
}

func TestShapeOrderNilWithoutSite(t *testing.T) {
	e := completeExtraction()
	e.Site = ""
	require.Nil(t, ShapeOrder(e, "+33600000001"))
}

func TestShapeOrderNilWithoutDelivery(t *testing.T) {
	e := completeExtraction()
	e.Delivery.Date = ""
	require.Nil(t, ShapeOrder(e, "+33600000001"))

	e = completeExtraction()
	e.Delivery.Time = ""
	require.Nil(t, ShapeOrder(e, "+33600000001"))
}

func TestShapeOrderNilWhenNoNamedMaterialSurvives(t *testing.T) {
	e := completeExtraction()
	e.Materials = []domain.Material{{Name: "", Quantity: "5", Unit: "kg"}}
	require.Nil(t, ShapeOrder(e, "+33600000001"))
}

func TestShapeOrderKeepsPartialMaterials(t *testing.T) {
	e := completeExtraction()
	e.Materials = []domain.Material{
		{Name: "  rebar  "},
		{Name: "", Quantity: "1", Unit: "kg"},
	}
	order := ShapeOrder(e, "+33600000001")
	require.NotNil(t, order)
	require.Len(t, order.Materials, 1)
	require.Equal(t, domain.Material{Name: "rebar"}, order.Materials[0])
}
