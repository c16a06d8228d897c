// Package taxrules loads the versioned jurisdiction rule tables the tax
// calculator dispatches on. The tables are static data compiled into the
// binary; a Store is immutable once constructed and injected into the
// engine, so rate revisions ship as data changes only.
package taxrules

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/openbooks/retail_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

//go:embed rules.json
var defaultRules []byte

type ruleComponentDoc struct {
	Name         string          `json:"name"`
	Rate         decimal.Decimal `json:"rate"`
	VariableRate bool            `json:"variableRate"`
}

type ruleDoc struct {
	JurisdictionCode      string             `json:"jurisdictionCode"`
	Name                  string             `json:"name"`
	Regime                string             `json:"regime"`
	StandardRate          decimal.Decimal    `json:"standardRate"`
	IntraComponentNames   [2]string          `json:"intraComponentNames"`
	InterComponentName    string             `json:"interComponentName"`
	ComponentName         string             `json:"componentName"`
	Components            []ruleComponentDoc `json:"components"`
	RegistrationThreshold decimal.Decimal    `json:"registrationThreshold"`
	FilingCadence         string             `json:"filingCadence"`
	ExemptCategories      []string           `json:"exemptCategories"`
}

type rulesDoc struct {
	Version string    `json:"version"`
	Rules   []ruleDoc `json:"rules"`
}

// Store is an immutable, versioned lookup of jurisdiction tax rules.
type Store struct {
	version string
	rules   map[string]domain.JurisdictionRule
}

// NewStore parses a rule table from raw JSON.
func NewStore(data []byte) (*Store, error) {
	var doc rulesDoc
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse tax rule table: %w", err)
	}
	if doc.Version == "" {
		return nil, fmt.Errorf("tax rule table has no version")
	}

	rules := make(map[string]domain.JurisdictionRule, len(doc.Rules))
	for _, r := range doc.Rules {
		if r.JurisdictionCode == "" {
			return nil, fmt.Errorf("tax rule table contains a rule with no jurisdiction code")
		}
		if _, exists := rules[r.JurisdictionCode]; exists {
			return nil, fmt.Errorf("duplicate jurisdiction code %s in tax rule table", r.JurisdictionCode)
		}
		regime := domain.TaxRegime(r.Regime)
		switch regime {
		case domain.RegimeGST:
			if r.IntraComponentNames[0] == "" || r.IntraComponentNames[1] == "" {
				return nil, fmt.Errorf("GST rule for jurisdiction %s must name both intra components", r.JurisdictionCode)
			}
			if r.InterComponentName == "" {
				return nil, fmt.Errorf("GST rule for jurisdiction %s must name its inter component", r.JurisdictionCode)
			}
		case domain.RegimeVAT, domain.RegimeSalesTax, domain.RegimeGeneric:
		default:
			return nil, fmt.Errorf("unknown tax regime %q for jurisdiction %s", r.Regime, r.JurisdictionCode)
		}

		components := make([]domain.RuleComponent, len(r.Components))
		for i, c := range r.Components {
			components[i] = domain.RuleComponent{
				Name:         c.Name,
				Rate:         c.Rate,
				VariableRate: c.VariableRate,
			}
		}

		rules[r.JurisdictionCode] = domain.JurisdictionRule{
			JurisdictionCode:      r.JurisdictionCode,
			Name:                  r.Name,
			Regime:                regime,
			StandardRate:          r.StandardRate,
			IntraComponentNames:   r.IntraComponentNames,
			InterComponentName:    r.InterComponentName,
			ComponentName:         r.ComponentName,
			Components:            components,
			RegistrationThreshold: r.RegistrationThreshold,
			FilingCadence:         domain.FilingCadence(r.FilingCadence),
			ExemptCategories:      r.ExemptCategories,
		}
	}

	return &Store{version: doc.Version, rules: rules}, nil
}

// NewDefaultStore loads the rule table shipped with the binary.
func NewDefaultStore() (*Store, error) {
	return NewStore(defaultRules)
}

// Version returns the rule table version, e.g. "2026-04".
func (s *Store) Version() string {
	return s.version
}

// Lookup returns the rule for a jurisdiction code; found is false when the
// jurisdiction is not in the table.
func (s *Store) Lookup(jurisdictionCode string) (domain.JurisdictionRule, bool) {
	rule, ok := s.rules[jurisdictionCode]
	return rule, ok
}

// Jurisdictions lists the codes present in the table.
func (s *Store) Jurisdictions() []string {
	codes := make([]string, 0, len(s.rules))
	for code := range s.rules {
		codes = append(codes, code)
	}
	return codes
}
