package agent

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siteflow/orderbot/internal/domain"
)

func TestValidDate(t *testing.T) {
	require.True(t, ValidDate("15/01/2025"))
	require.True(t, ValidDate("1/2/2024"))
	require.False(t, ValidDate("32/13/2025"))
	require.False(t, ValidDate("29/02/2025")) // not a leap year
	require.False(t, ValidDate("15/01/2023")) // before accepted range
	require.False(t, ValidDate("15/01/2031")) // after accepted range
	require.False(t, ValidDate("2025-01-15"))
	require.False(t, ValidDate(""))
}

func TestValidTime(t *testing.T) {
	require.True(t, ValidTime("14:00"))
	require.True(t, ValidTime("0:59"))
	require.True(t, ValidTime("23:59"))
	require.False(t, ValidTime("25:99"))
	require.False(t, ValidTime("14h00"))
	require.False(t, ValidTime(""))
}

func TestParseQuantity(t *testing.T) {
	q, ok := ParseQuantity("10")
	require.True(t, ok)
	require.Equal(t, "10", q)

	q, ok = ParseQuantity("10,5")
	require.True(t, ok)
	require.Equal(t, "10,5", q)

	_, ok = ParseQuantity("-5")
	require.False(t, ok)
	_, ok = ParseQuantity("0")
	require.False(t, ok)
	_, ok = ParseQuantity("a few")
	require.False(t, ok)
}

func TestNormalizeUnit(t *testing.T) {
	require.Equal(t, "m3", NormalizeUnit("m³"))
	require.Equal(t, "m2", NormalizeUnit(" M² "))
	require.Equal(t, "tons", NormalizeUnit("ton"))
	require.Equal(t, "tons", NormalizeUnit("tonnes"))
	require.Equal(t, "l", NormalizeUnit("litres"))
	require.Equal(t, "kg", NormalizeUnit("kg"))
}

func TestValidateExtractionHappyPath(t *testing.T) {
	payload := map[string]any{
		"site": "Site A",
		"materials": []any{
			map[string]any{"name": "concrete", "quantity": "10", "unit": "m3"},
		},
		"delivery":     map[string]any{"date": "15/01/2025", "time": "14:00"},
		"completeness": 1.0,
		"confirmed":    true,
	}

	got, errs := ValidateExtraction(payload)
	require.Empty(t, errs)
	require.Equal(t, "Site A", got.Site)
	require.Len(t, got.Materials, 1)
	require.Equal(t, domain.Material{Name: "concrete", Quantity: "10", Unit: "m3"}, got.Materials[0])
	require.Equal(t, "15/01/2025", got.Delivery.Date)
	require.Equal(t, "14:00", got.Delivery.Time)
	require.Equal(t, 1.0, got.Completeness)
	require.True(t, got.Confirmed)
}

func TestValidateExtractionDropsBadFields(t *testing.T) {
	payload := map[string]any{
		"site": "Site A",
		"materials": []any{
			map[string]any{"name": "concrete", "quantity": "-5", "unit": "bags-of-nothing"},
			map[string]any{"name": "", "quantity": "3", "unit": "kg"},
		},
		"delivery":     map[string]any{"date": "32/13/2025", "time": "25:99"},
		"completeness": 0.9,
		"confirmed":    false,
	}

	got, errs := ValidateExtraction(payload)
	require.Len(t, errs, 4)

	// Named material survives with the bad fields nulled out.
	require.Len(t, got.Materials, 1)
	require.Equal(t, domain.Material{Name: "concrete"}, got.Materials[0])
	require.Empty(t, got.Delivery.Date)
	require.Empty(t, got.Delivery.Time)
}

func TestValidateExtractionRecomputesOutOfRangeCompleteness(t *testing.T) {
	payload := map[string]any{
		"site": "Site A",
		"materials": []any{
			map[string]any{"name": "concrete", "quantity": "10", "unit": "m3"},
		},
		"delivery":     map[string]any{"date": "15/01/2025", "time": "14:00"},
		"completeness": 999.0,
	}

	got, errs := ValidateExtraction(payload)
	require.Empty(t, errs)
	require.Equal(t, 1.0, got.Completeness)
}

func TestValidateExtractionNumericQuantity(t *testing.T) {
	payload := map[string]any{
		"materials": []any{
			map[string]any{"name": "sand", "quantity": 2.5, "unit": "tons"},
		},
	}

	got, errs := ValidateExtraction(payload)
	require.Empty(t, errs)
	require.Equal(t, "2.5", got.Materials[0].Quantity)
}

func TestComputeCompletenessPartial(t *testing.T) {
	e := domain.Extraction{
		Site:      "Site A",
		Materials: []domain.Material{{Name: "concrete", Quantity: "10"}},
	}
	// site 0.2 + named material 0.2 + all quantities 0.2
	require.Equal(t, 0.6, ComputeCompleteness(e))

	require.Equal(t, 0.0, ComputeCompleteness(domain.Extraction{}))
}
