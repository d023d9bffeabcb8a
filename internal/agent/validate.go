package agent

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/siteflow/orderbot/internal/config"
	"github.com/siteflow/orderbot/internal/domain"
)

var (
	dateRe = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)
	timeRe = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
)

// NormalizeUnit lowercases a unit and maps known synonyms to the canonical
// token (m³ -> m3, ton -> tons, ...).
func NormalizeUnit(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	if canon, ok := config.UnitSynonyms[u]; ok {
		return canon
	}
	return u
}

func validUnit(unit string) bool {
	for _, u := range config.ValidUnits {
		if u == unit {
			return true
		}
	}
	return false
}

// ValidDate reports whether s is a real DD/MM/YYYY calendar date within the
// accepted delivery year range.
func ValidDate(s string) bool {
	if !dateRe.MatchString(s) {
		return false
	}
	parts := strings.Split(s, "/")
	day, _ := strconv.Atoi(parts[0])
	month, _ := strconv.Atoi(parts[1])
	year, _ := strconv.Atoi(parts[2])

	if year < config.MinDeliveryYear || year > config.MaxDeliveryYear {
		return false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return d.Year() == year && int(d.Month()) == month && d.Day() == day
}

// ValidTime reports whether s is a valid 24-hour HH:MM time.
func ValidTime(s string) bool {
	if !timeRe.MatchString(s) {
		return false
	}
	parts := strings.Split(s, ":")
	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])
	return hours >= 0 && hours <= 23 && minutes >= 0 && minutes <= 59
}

// ParseQuantity accepts a positive decimal quantity, tolerating a comma as
// the decimal separator.
func ParseQuantity(s string) (string, bool) {
	s = strings.TrimSpace(s)
	q, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil || !q.IsPositive() {
		return "", false
	}
	return s, true
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// ComputeCompleteness scores an extraction from field presence alone:
// site +0.2, at least one named material +0.2, all quantities +0.2,
// all units +0.2, date +0.1, time +0.1.
func ComputeCompleteness(e domain.Extraction) float64 {
	score := 0.0
	if e.Site != "" {
		score += 0.2
	}
	if len(e.Materials) > 0 {
		score += 0.2
		allQty, allUnit := true, true
		for _, m := range e.Materials {
			if m.Quantity == "" {
				allQty = false
			}
			if m.Unit == "" {
				allUnit = false
			}
		}
		if allQty {
			score += 0.2
		}
		if allUnit {
			score += 0.2
		}
	}
	if e.Delivery.Date != "" {
		score += 0.1
	}
	if e.Delivery.Time != "" {
		score += 0.1
	}
	return round2(score)
}

func stringField(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func quantityField(v any) string {
	switch q := v.(type) {
	case string:
		return strings.TrimSpace(q)
	case float64:
		return strconv.FormatFloat(q, 'f', -1, 64)
	default:
		return ""
	}
}

// ValidateExtraction turns the extractor's untrusted payload into a clean
// Extraction. Unparseable fields are dropped and recorded as errors, never
// fatal to the result as a whole.
func ValidateExtraction(payload map[string]any) (domain.Extraction, []string) {
	var errs []string
	result := domain.Extraction{}

	if site := stringField(payload["site"]); site != "" && !strings.EqualFold(site, "null") {
		result.Site = site
	}

	if materials, ok := payload["materials"].([]any); ok {
		for _, raw := range materials {
			m, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			name := stringField(m["name"])
			if name == "" {
				continue
			}
			clean := domain.Material{Name: name}

			if rawQty := quantityField(m["quantity"]); rawQty != "" {
				if qty, ok := ParseQuantity(rawQty); ok {
					clean.Quantity = qty
				} else {
					errs = append(errs, fmt.Sprintf("invalid quantity for %s: %s", name, rawQty))
				}
			}

			if rawUnit := stringField(m["unit"]); rawUnit != "" {
				if unit := NormalizeUnit(rawUnit); validUnit(unit) {
					clean.Unit = unit
				} else {
					errs = append(errs, fmt.Sprintf("invalid unit for %s: %s", name, rawUnit))
				}
			}

			result.Materials = append(result.Materials, clean)
		}
	}

	if delivery, ok := payload["delivery"].(map[string]any); ok {
		if date := stringField(delivery["date"]); date != "" && !strings.EqualFold(date, "null") {
			if ValidDate(date) {
				result.Delivery.Date = date
			} else {
				errs = append(errs, fmt.Sprintf("invalid date format: %s", date))
			}
		}
		if t := stringField(delivery["time"]); t != "" && !strings.EqualFold(t, "null") {
			if ValidTime(t) {
				result.Delivery.Time = t
			} else {
				errs = append(errs, fmt.Sprintf("invalid time format: %s", t))
			}
		}
	}

	if completeness, ok := payload["completeness"].(float64); ok && completeness >= 0 && completeness <= 1 {
		result.Completeness = round2(completeness)
	} else {
		result.Completeness = ComputeCompleteness(result)
	}

	confirmed, _ := payload["confirmed"].(bool)
	result.Confirmed = confirmed

	return result, errs
}
