package plans

import "strings"

// Tier is the effective subscription level of a caller.
type Tier string

const (
	TierFree  Tier = "free"
	TierPro   Tier = "pro"
	TierElite Tier = "elite"
)

// TierConfig describes what a tier is allowed to see in the live pairing feed.
type TierConfig struct {
	VisibleRowLimit  int
	ShowInvestorName bool
	ShowReason       bool
	ShowConfidence   bool
	UpgradeCTA       string
}

// tierTable is the single source of truth for tier limits. Every tier must
// have a complete entry here; Config falls back to the free entry for
// anything it does not recognize.
var tierTable = map[Tier]TierConfig{
	TierFree: {
		VisibleRowLimit:  3,
		ShowInvestorName: false,
		ShowReason:       false,
		ShowConfidence:   false,
		UpgradeCTA:       "Unlock investor names with Pro",
	},
	TierPro: {
		VisibleRowLimit:  25,
		ShowInvestorName: true,
		ShowReason:       true,
		ShowConfidence:   false,
		UpgradeCTA:       "See confidence scores with Elite",
	},
	TierElite: {
		VisibleRowLimit:  100,
		ShowInvestorName: true,
		ShowReason:       true,
		ShowConfidence:   true,
		UpgradeCTA:       "",
	},
}

// ResolveTier normalizes a stored plan value to a known tier.
// Unknown or empty values resolve to free, never to a paid tier.
func ResolveTier(raw string) Tier {
	switch Tier(strings.ToLower(strings.TrimSpace(raw))) {
	case TierPro:
		return TierPro
	case TierElite:
		return TierElite
	default:
		return TierFree
	}
}

// Config returns the limits for a tier. Total over the tier domain: values
// that did not come from ResolveTier are treated as free.
func Config(t Tier) TierConfig {
	if cfg, ok := tierTable[t]; ok {
		return cfg
	}
	return tierTable[TierFree]
}

// Rank orders tiers for comparisons (upgrade prompts, entitlement checks).
func Rank(t Tier) int {
	switch ResolveTier(string(t)) {
	case TierElite:
		return 2
	case TierPro:
		return 1
	default:
		return 0
	}
}

// All lists every known tier, lowest first.
func All() []Tier {
	return []Tier{TierFree, TierPro, TierElite}
}
