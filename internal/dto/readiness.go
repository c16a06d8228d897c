package dto

import (
	"time"

	"github.com/openbooks/retail_ledger_app/internal/core/domain"
)

// ReadinessPeriodParams holds the query parameters of a readiness scoring run.
type ReadinessPeriodParams struct {
	From time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To   time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
}

// ReadinessIssueResponse is the API shape of one detected compliance gap.
type ReadinessIssueResponse struct {
	IssueType   string `json:"issueType"`
	Reference   string `json:"reference,omitempty"`
	Description string `json:"description"`
	Deduction   int    `json:"deduction"`
}

// ReadinessRecommendationResponse is the API shape of one remediation.
type ReadinessRecommendationResponse struct {
	IssueType string `json:"issueType"`
	Priority  string `json:"priority"`
	Action    string `json:"action"`
	Impact    string `json:"impact"`
}

// ReadinessReportResponse is the API shape of a scoring run, consumed by
// the compliance screen.
type ReadinessReportResponse struct {
	BusinessID      string                            `json:"businessID"`
	PeriodStart     time.Time                         `json:"periodStart"`
	PeriodEnd       time.Time                         `json:"periodEnd"`
	Score           int                               `json:"score"`
	Grade           string                            `json:"grade"`
	FilingReady     bool                              `json:"filingReady"`
	Issues          []ReadinessIssueResponse          `json:"issues"`
	Recommendations []ReadinessRecommendationResponse `json:"recommendations"`
	GeneratedAt     time.Time                         `json:"generatedAt"`
}

// ToReadinessReportResponse converts a domain.ReadinessReport to its DTO.
func ToReadinessReportResponse(r *domain.ReadinessReport) ReadinessReportResponse {
	issues := make([]ReadinessIssueResponse, len(r.Issues))
	for i, issue := range r.Issues {
		issues[i] = ReadinessIssueResponse{
			IssueType:   string(issue.IssueType),
			Reference:   issue.Reference,
			Description: issue.Description,
			Deduction:   issue.Deduction,
		}
	}
	recs := make([]ReadinessRecommendationResponse, len(r.Recommendations))
	for i, rec := range r.Recommendations {
		recs[i] = ReadinessRecommendationResponse{
			IssueType: string(rec.IssueType),
			Priority:  string(rec.Priority),
			Action:    rec.Action,
			Impact:    rec.Impact,
		}
	}
	return ReadinessReportResponse{
		BusinessID:      r.BusinessID,
		PeriodStart:     r.PeriodStart,
		PeriodEnd:       r.PeriodEnd,
		Score:           r.Score,
		Grade:           r.Grade,
		FilingReady:     r.FilingReady,
		Issues:          issues,
		Recommendations: recs,
		GeneratedAt:     r.GeneratedAt,
	}
}
