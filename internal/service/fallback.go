package service

import (
	"regexp"
	"strings"

	"github.com/siteflow/orderbot/internal/agent"
	"github.com/siteflow/orderbot/internal/config"
)

// ParsedOrder is the regex approximation of the structured fields, built
// from the legacy reply when the dual-agent path is unavailable.
type ParsedOrder struct {
	Site     string
	Material string
	Quantity string
	Unit     string
	Date     string
	Time     string

	Confirmed bool
	Complete  bool
}

const unitAlternatives = `m³|m3|m²|m2|kg|tonnes?|tons?|bags?|pallets?|litres?|liters?|l|cm|m`

// Summary-structured patterns: label-prefixed lines as produced by the
// legacy prompt's summary block.
var (
	summarySiteRe     = regexp.MustCompile(`(?i)site\s*:\s*([^\n]+)`)
	summaryMaterialRe = regexp.MustCompile(`(?m)^\s*[-•]\s*([^:\n]+?)\s*$`)
	summaryQuantityRe = regexp.MustCompile(`(?i)quantity[^:\n]*:\s*([\d]+(?:[.,]\d+)?)`)
	// A plain \b misfires after m³/m², so the unit must be followed by
	// whitespace, punctuation, or the end of the text.
	summaryUnitRe = regexp.MustCompile(`(?i)quantity[^:\n]*:\s*[\d]+(?:[.,]\d+)?\s*(` + unitAlternatives + `)(?:[\s.,!?)]|$)`)
	summaryDateRe = regexp.MustCompile(`(?i)needed for[^\n]*?(\d{1,2}/\d{1,2}/\d{4})`)
	summaryTimeRe = regexp.MustCompile(`(?i)needed for[^\n]*?(\d{1,2}:\d{2})`)
)

// Looser "keyword anywhere" patterns, tried per-field when the summary
// patterns come up empty.
var (
	looseSiteRe     = regexp.MustCompile(`(?i)(?:site|location)\s*:?\s+([^\n.,!?]+)`)
	looseMaterialRe = regexp.MustCompile(`(?i)(?:material|product)\s*:?\s+([^\n.,!?]+)`)
	looseAmountRe   = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(` + unitAlternatives + `)(?:[\s.,!?)]|$)`)
	looseDateRe     = regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{4})\b`)
	looseTimeRe     = regexp.MustCompile(`\b(\d{1,2}:\d{2})\b`)
)

func firstGroup(re *regexp.Regexp, text string) string {
	if m := re.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func summaryExtract(text string) ParsedOrder {
	return ParsedOrder{
		Site:     firstGroup(summarySiteRe, text),
		Material: firstGroup(summaryMaterialRe, text),
		Quantity: firstGroup(summaryQuantityRe, text),
		Unit:     firstGroup(summaryUnitRe, text),
		Date:     firstGroup(summaryDateRe, text),
		Time:     firstGroup(summaryTimeRe, text),
	}
}

func looseExtract(text string) ParsedOrder {
	out := ParsedOrder{
		Site:     firstGroup(looseSiteRe, text),
		Material: firstGroup(looseMaterialRe, text),
		Date:     firstGroup(looseDateRe, text),
		Time:     firstGroup(looseTimeRe, text),
	}
	if m := looseAmountRe.FindStringSubmatch(text); m != nil {
		out.Quantity = strings.TrimSpace(m[1])
		out.Unit = strings.TrimSpace(m[2])
	}
	return out
}

// strategies are tried in order; the first non-empty value wins per field.
var strategies = []func(string) ParsedOrder{summaryExtract, looseExtract}

func merge(dst *ParsedOrder, src ParsedOrder) {
	if dst.Site == "" {
		dst.Site = src.Site
	}
	if dst.Material == "" {
		dst.Material = src.Material
	}
	if dst.Quantity == "" {
		dst.Quantity = src.Quantity
	}
	if dst.Unit == "" {
		dst.Unit = src.Unit
	}
	if dst.Date == "" {
		dst.Date = src.Date
	}
	if dst.Time == "" {
		dst.Time = src.Time
	}
}

func stripMarkdown(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "*", ""))
}

var affirmationWordRe = regexp.MustCompile(`[a-z']+`)

// ContainsAffirmation reports whether the user's message contains an
// explicit confirmation word.
func ContainsAffirmation(userMessage string) bool {
	words := affirmationWordRe.FindAllString(strings.ToLower(userMessage), -1)
	for _, w := range words {
		for _, a := range config.Affirmations {
			if w == a {
				return true
			}
		}
	}
	return false
}

// ParseOrderFromReply approximates the structured order fields from the
// legacy assistant reply; confirmation is detected from the user's own
// message, independently of the reply text.
func ParseOrderFromReply(reply, userMessage string) ParsedOrder {
	clean := stripMarkdown(reply)

	var out ParsedOrder
	for _, strat := range strategies {
		merge(&out, strat(clean))
	}
	if out.Unit != "" {
		out.Unit = agent.NormalizeUnit(out.Unit)
	}

	out.Confirmed = ContainsAffirmation(userMessage)
	out.Complete = out.Site != "" && out.Material != "" && out.Quantity != "" &&
		out.Unit != "" && out.Date != "" && out.Time != ""
	return out
}
