package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Share types enumerate the content kinds a link can expose.
const (
	ShareTypeDashboard = "dashboard"
	ShareTypePipeline  = "pipeline"
	ShareTypeScorecard = "scorecard"
)

var shareTypes = map[string]struct{}{
	ShareTypeDashboard: {},
	ShareTypePipeline:  {},
	ShareTypeScorecard: {},
}

// IsValidShareType reports whether t names a known share type.
func IsValidShareType(t string) bool {
	_, ok := shareTypes[t]
	return ok
}

// SharePayload is the frozen snapshot a share link exposes. It is a tagged
// union: exactly one variant matching Type is populated. The snapshot is
// taken at creation time; later changes to the underlying data never leak
// through an existing link.
type SharePayload struct {
	Type      string            `json:"type"`
	Dashboard *DashboardSummary `json:"dashboard,omitempty"`
	Pipeline  *PipelineSummary  `json:"pipeline,omitempty"`
	Scorecard *ScorecardEntry   `json:"scorecard,omitempty"`
}

// DashboardSummary is the shareable snapshot of a founder dashboard.
type DashboardSummary struct {
	StartupName  string   `json:"startup_name"`
	SignalScore  float64  `json:"signal_score"`
	MatchCount   int      `json:"match_count"`
	TopSectors   []string `json:"top_sectors,omitempty"`
	PeriodLabel  string   `json:"period_label,omitempty"`
	HeadlineNote string   `json:"headline_note,omitempty"`
}

// PipelineSummary is the shareable snapshot of an investor pipeline.
type PipelineSummary struct {
	InvestorName string   `json:"investor_name"`
	StageCounts  map[string]int `json:"stage_counts"`
	StartupNames []string `json:"startup_names,omitempty"`
}

// ScorecardEntry is the shareable snapshot of a single scorecard item.
type ScorecardEntry struct {
	StartupName string  `json:"startup_name"`
	Criterion   string  `json:"criterion"`
	Score       float64 `json:"score"`
	Notes       string  `json:"notes,omitempty"`
}

// ParseSharePayload decodes and validates a raw payload document against the
// declared share type.
func ParseSharePayload(shareType string, raw json.RawMessage) (*SharePayload, error) {
	if !IsValidShareType(shareType) {
		return nil, fmt.Errorf("unknown share type %q", shareType)
	}
	if len(raw) == 0 {
		return nil, errors.New("share payload is empty")
	}

	p := &SharePayload{Type: shareType}
	var err error
	switch shareType {
	case ShareTypeDashboard:
		p.Dashboard = &DashboardSummary{}
		err = json.Unmarshal(raw, p.Dashboard)
	case ShareTypePipeline:
		p.Pipeline = &PipelineSummary{}
		err = json.Unmarshal(raw, p.Pipeline)
	case ShareTypeScorecard:
		p.Scorecard = &ScorecardEntry{}
		err = json.Unmarshal(raw, p.Scorecard)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid %s payload: %w", shareType, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks that exactly the variant matching Type is populated and
// carries its required fields.
func (p *SharePayload) Validate() error {
	switch p.Type {
	case ShareTypeDashboard:
		if p.Dashboard == nil || p.Dashboard.StartupName == "" {
			return errors.New("dashboard payload requires a startup name")
		}
	case ShareTypePipeline:
		if p.Pipeline == nil || p.Pipeline.InvestorName == "" {
			return errors.New("pipeline payload requires an investor name")
		}
	case ShareTypeScorecard:
		if p.Scorecard == nil || p.Scorecard.StartupName == "" || p.Scorecard.Criterion == "" {
			return errors.New("scorecard payload requires a startup name and criterion")
		}
	default:
		return fmt.Errorf("unknown share type %q", p.Type)
	}
	return nil
}

// Summary renders a one-line human description of the snapshot for list
// views and page titles. The switch is exhaustive over the share types.
func (p *SharePayload) Summary() string {
	switch p.Type {
	case ShareTypeDashboard:
		return fmt.Sprintf("%s — signal dashboard (%d matches)", p.Dashboard.StartupName, p.Dashboard.MatchCount)
	case ShareTypePipeline:
		total := 0
		for _, n := range p.Pipeline.StageCounts {
			total += n
		}
		return fmt.Sprintf("%s — pipeline (%d startups)", p.Pipeline.InvestorName, total)
	case ShareTypeScorecard:
		return fmt.Sprintf("%s — %s scorecard", p.Scorecard.StartupName, p.Scorecard.Criterion)
	default:
		return "shared content"
	}
}

// UnmarshalStored decodes a payload previously written by Raw.
func (p *SharePayload) UnmarshalStored(raw JSON) error {
	if err := json.Unmarshal(raw, p); err != nil {
		return err
	}
	return p.Validate()
}

// Raw re-encodes the payload for storage.
func (p *SharePayload) Raw() (JSON, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return JSON(b), nil
}
