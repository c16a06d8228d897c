package services

import (
	"context"
	"time"

	"github.com/openbooks/retail_ledger_app/internal/core/domain"
)

// ReadinessSvc defines the tax readiness scoring contract. Scoring is
// read-only and idempotent: the same unchanged period yields an identical
// report.
type ReadinessSvc interface {
	// Score analyzes posted transactions for the period and produces a
	// compliance score, issue list and prioritized recommendations.
	Score(ctx context.Context, businessID string, from, to time.Time) (*domain.ReadinessReport, error)
}
