package visibility

import (
	"fmt"

	"github.com/pythh/hotmatch/app/models"
	"github.com/pythh/hotmatch/internal/pkg/plans"
)

// Redacted is the fixed placeholder substituted for every gated field. It is
// never derived from the real value, so neither length nor shape can leak.
const Redacted = "•••"

// LockedFields flags which fields of a masked pairing were redacted, so a
// consumer can render an upgrade affordance in their place.
type LockedFields struct {
	InvestorName bool `json:"investor_name"`
	Reason       bool `json:"reason"`
	Confidence   bool `json:"confidence"`
}

// MaskedPairing is the client-safe projection of a pairing for one tier.
// The startup's own name is never gated. Confidence is formatted as a string
// so the redaction placeholder fits the same slot; a hidden score is fully
// redacted, never rounded into a teaser.
type MaskedPairing struct {
	StartupID    string       `json:"startup_id"`
	StartupName  string       `json:"startup_name"`
	InvestorID   string       `json:"investor_id"`
	InvestorName string       `json:"investor_name"`
	Reason       string       `json:"reason"`
	Confidence   string       `json:"confidence"`
	Locked       LockedFields `json:"locked"`
	ShowUpgrade  bool         `json:"show_upgrade"`
}

// Project masks a pairing for the given tier. It never fails: a missing
// confidence is treated as 0 before formatting.
func Project(row *models.Pairing, tier plans.Tier) MaskedPairing {
	cfg := plans.Config(tier)

	masked := MaskedPairing{
		StartupID:   row.StartupID,
		StartupName: row.StartupName,
		ShowUpgrade: cfg.UpgradeCTA != "",
	}

	if cfg.ShowInvestorName {
		masked.InvestorID = row.InvestorID
		masked.InvestorName = row.InvestorName
	} else {
		// The investor id resolves to the same identity as the name, so it
		// is gated by the same flag.
		masked.InvestorID = Redacted
		masked.InvestorName = Redacted
		masked.Locked.InvestorName = true
	}

	if cfg.ShowReason {
		masked.Reason = row.Reason
	} else {
		masked.Reason = Redacted
		masked.Locked.Reason = true
	}

	if cfg.ShowConfidence {
		masked.Confidence = fmt.Sprintf("%.2f", row.ConfidenceValue())
	} else {
		masked.Confidence = Redacted
		masked.Locked.Confidence = true
	}

	return masked
}

// ProjectAll masks a slice of pairings, capped at the tier's row limit.
func ProjectAll(rows []models.Pairing, tier plans.Tier) []MaskedPairing {
	limit := plans.Config(tier).VisibleRowLimit
	if len(rows) > limit {
		rows = rows[:limit]
	}

	masked := make([]MaskedPairing, 0, len(rows))
	for i := range rows {
		masked = append(masked, Project(&rows[i], tier))
	}
	return masked
}
