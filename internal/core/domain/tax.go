package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxRegime is the declared tax type of a jurisdiction, selecting the
// calculation strategy once per business rather than per call.
type TaxRegime string

const (
	RegimeGST      TaxRegime = "GST"       // Rate split into intra-state components or a single inter-state one
	RegimeVAT      TaxRegime = "VAT"       // Flat single-component tax
	RegimeSalesTax TaxRegime = "SALES_TAX" // Nexus-based; rate supplied by the caller per transaction
	RegimeGeneric  TaxRegime = "GENERIC"   // Declared component list, summed
)

// TransactionDirection distinguishes output tax (sales) from input tax (purchases).
type TransactionDirection string

const (
	DirectionSale     TransactionDirection = "SALE"
	DirectionPurchase TransactionDirection = "PURCHASE"
)

// RuleComponent is one named piece of a GENERIC regime's tax, e.g. an
// employer/employee split of a social levy. VariableRate components have
// no fixed percentage and are skipped by the calculator.
type RuleComponent struct {
	Name         string          `json:"name"`
	Rate         decimal.Decimal `json:"rate"` // Percentage
	VariableRate bool            `json:"variableRate,omitempty"`
}

// FilingCadence is how often a jurisdiction expects tax returns.
type FilingCadence string

const (
	FilingMonthly   FilingCadence = "MONTHLY"
	FilingQuarterly FilingCadence = "QUARTERLY"
	FilingAnnual    FilingCadence = "ANNUAL"
)

// JurisdictionRule is one versioned row of the rate/rule store: everything
// the engine needs to know about a jurisdiction's tax regime. Immutable
// after load.
type JurisdictionRule struct {
	JurisdictionCode      string          `json:"jurisdictionCode"` // e.g. "IN", "GB", "US-CA"
	Name                  string          `json:"name"`
	Regime                TaxRegime       `json:"regime"`
	StandardRate          decimal.Decimal `json:"standardRate"` // Percentage
	IntraComponentNames   [2]string       `json:"intraComponentNames"`   // GST only: the even-split pair, e.g. CGST/SGST
	InterComponentName    string          `json:"interComponentName"`    // GST only: the single cross-jurisdiction component
	ComponentName         string          `json:"componentName"`         // VAT/SALES_TAX: the single component label
	Components            []RuleComponent `json:"components,omitempty"`  // GENERIC only
	RegistrationThreshold decimal.Decimal `json:"registrationThreshold"` // Turnover above which registration is mandatory
	FilingCadence         FilingCadence   `json:"filingCadence"`
	ExemptCategories      []string        `json:"exemptCategories,omitempty"` // Product categories taxed at zero
}

// TaxContext is the input to one tax calculation.
type TaxContext struct {
	Amount               decimal.Decimal
	Direction            TransactionDirection
	BusinessJurisdiction string
	CounterpartLocation  string
	ExplicitRate         *decimal.Decimal // Per-line override; mandatory for SALES_TAX
	ProductCategory      string
}

// TaxResult is the output of one tax calculation. Components always sum to
// TaxAmount within rounding tolerance.
type TaxResult struct {
	TaxableAmount   decimal.Decimal
	TaxAmount       decimal.Decimal
	TaxRate         decimal.Decimal
	Components      map[string]decimal.Decimal
	ExemptionReason string // Non-empty only when the product category is exempt
}

// TaxTransaction records the tax liability produced by one voucher,
// linked 1:1 to it. Its component map must sum to TaxAmount.
type TaxTransaction struct {
	TaxTransactionID string                     `json:"taxTransactionID"` // Primary Key (e.g., UUID)
	BusinessID       string                     `json:"businessID"`       // FK -> Business.businessID (Not Null)
	VoucherID        string                     `json:"voucherID"`        // FK -> Voucher.voucherID, unique
	CustomerID       string                     `json:"customerID"`       // Counterparty, when known
	Regime           TaxRegime                  `json:"regime"`
	Direction        TransactionDirection       `json:"direction"`
	TaxRate          decimal.Decimal            `json:"taxRate"`
	TaxableAmount    decimal.Decimal            `json:"taxableAmount"`
	TaxAmount        decimal.Decimal            `json:"taxAmount"`
	Components       map[string]decimal.Decimal `json:"components"`
	AuditFields
}

// TaxFilingPeriod tracks one filing window for a business, used by the
// readiness scorer to flag late filings.
type TaxFilingPeriod struct {
	FilingPeriodID string     `json:"filingPeriodID"` // Primary Key (e.g., UUID)
	BusinessID     string     `json:"businessID"`
	PeriodLabel    string     `json:"periodLabel"` // e.g. "2026-07" or "2026-Q1"
	DueDate        time.Time  `json:"dueDate"`
	Filed          bool       `json:"filed"`
	FiledOn        *time.Time `json:"filedOn,omitempty"`
}
