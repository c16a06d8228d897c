package domain

import "time"

// IssueType classifies a compliance gap detected by the readiness scorer.
type IssueType string

const (
	IssueMissingInvoice        IssueType = "MISSING_INVOICE"
	IssueTaxMismatch           IssueType = "TAX_MISMATCH"
	IssueUnverifiedInputCredit IssueType = "UNVERIFIED_INPUT_CREDIT"
	IssueLateFiling            IssueType = "LATE_FILING"
	IssueUnregistered          IssueType = "UNREGISTERED_OVER_THRESHOLD"
)

// IssuePriority orders recommendations for the compliance screen.
type IssuePriority string

const (
	PriorityCritical IssuePriority = "CRITICAL"
	PriorityHigh     IssuePriority = "HIGH"
	PriorityMedium   IssuePriority = "MEDIUM"
)

// ReadinessIssue is a single detected compliance gap.
type ReadinessIssue struct {
	IssueType   IssueType `json:"issueType"`
	Reference   string    `json:"reference"` // Voucher/filing-period ID the issue points at
	Description string    `json:"description"`
	Deduction   int       `json:"deduction"` // Points subtracted for this occurrence
}

// ReadinessRecommendation is a prioritized remediation for one nonempty
// issue class.
type ReadinessRecommendation struct {
	IssueType IssueType     `json:"issueType"`
	Priority  IssuePriority `json:"priority"`
	Action    string        `json:"action"`
	Impact    string        `json:"impact"`
}

// ReadinessReport is the output of one scoring run: a 0-100 compliance
// health metric with the issues and recommendations behind it. Scoring the
// same unchanged period twice yields an identical report.
type ReadinessReport struct {
	BusinessID      string                    `json:"businessID"`
	PeriodStart     time.Time                 `json:"periodStart"`
	PeriodEnd       time.Time                 `json:"periodEnd"`
	Score           int                       `json:"score"` // 0-100
	Grade           string                    `json:"grade"` // A-F
	FilingReady     bool                      `json:"filingReady"`
	Issues          []ReadinessIssue          `json:"issues"`
	Recommendations []ReadinessRecommendation `json:"recommendations"`
	GeneratedAt     time.Time                 `json:"generatedAt"`
}
